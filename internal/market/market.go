// Package market simulates the token board the entity feeds on. Prices drift
// on a timer, and every trade converts its value into energy.
package market

import (
	"fmt"
	"math"

	"pumpalien/assets"
	"pumpalien/internal/rng"

	"github.com/google/uuid"
)

// Drift and launch parameters.
const (
	priceSwing  = 0.1 // a drift moves a price by at most ±5%
	changeSwing = 2.0 // and its 24h change by at most ±1 point
	volumeDrift = 10000
	energyScale = 100 // energy per dollar traded

	mintNameMax   = 1000
	mintSymbolMax = 100
	mintPriceMax  = 0.01
	mintChangeMax = 100.0
	mintVolumeMax = 1000000
	mintEnergyMax = 50
)

// Side is the direction of a trade. Both feed the entity.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "Sold"
	}
	return "Bought"
}

// Token is one listing with its current quote.
type Token struct {
	ID     string
	Name   string
	Symbol string
	Price  float64
	Change float64
	Volume float64
	Energy int
}

// Trade is the outcome of one executed order.
type Trade struct {
	Token  Token
	Side   Side
	Amount float64
	Value  float64
	Energy int
}

// Market is the board of one session. It is not safe for concurrent use.
type Market struct {
	listings []assets.TokenDef
	src      *rng.Source
	tokens   []Token
	selected int
}

// New lists defs in order and selects the first one.
func New(defs []assets.TokenDef, src *rng.Source) *Market {
	m := &Market{listings: append([]assets.TokenDef(nil), defs...), src: src}
	m.Reset()
	return m
}

// Reset restores the initial listings and selection.
func (m *Market) Reset() {
	m.tokens = m.tokens[:0]
	for _, d := range m.listings {
		m.tokens = append(m.tokens, Token{
			ID:     uuid.NewString(),
			Name:   d.Name,
			Symbol: d.Symbol,
			Price:  d.Price,
			Change: d.Change,
			Volume: d.Volume,
			Energy: d.Energy,
		})
	}
	m.selected = 0
}

// Len returns the number of listed tokens.
func (m *Market) Len() int { return len(m.tokens) }

// Tokens returns a copy of the board.
func (m *Market) Tokens() []Token { return append([]Token(nil), m.tokens...) }

// Selected returns the token the next trade will use.
func (m *Market) Selected() (Token, bool) {
	if len(m.tokens) == 0 {
		return Token{}, false
	}
	return m.tokens[m.selected], true
}

// SelectedIndex returns the position of the selected token.
func (m *Market) SelectedIndex() int { return m.selected }

// SelectNext moves the selection one listing down, wrapping at the end.
func (m *Market) SelectNext() int {
	if len(m.tokens) > 0 {
		m.selected = (m.selected + 1) % len(m.tokens)
	}
	return m.selected
}

// Drift re-quotes every token: a small random walk on price and change and
// some fresh volume. Prices stay positive.
func (m *Market) Drift() {
	for i := range m.tokens {
		t := &m.tokens[i]
		t.Price *= 1 + (m.src.Float64()-0.5)*priceSwing
		t.Change += (m.src.Float64() - 0.5) * changeSwing
		t.Volume += float64(m.src.Intn(volumeDrift))
	}
}

// Trade executes amount units of the selected token. The energy gained is the
// traded value in cents, rounded down.
func (m *Market) Trade(side Side, amount float64) (Trade, bool) {
	if len(m.tokens) == 0 || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Trade{}, false
	}
	t := &m.tokens[m.selected]
	value := amount * t.Price
	t.Volume += value
	return Trade{
		Token:  *t,
		Side:   side,
		Amount: amount,
		Value:  value,
		Energy: int(math.Floor(value * energyScale)),
	}, true
}

// Mint lists a freshly launched token at the end of the board.
func (m *Market) Mint() Token {
	t := Token{
		ID:     uuid.NewString(),
		Name:   fmt.Sprintf("Token%d", m.src.Intn(mintNameMax)),
		Symbol: fmt.Sprintf("TKN%d", m.src.Intn(mintSymbolMax)),
		Price:  m.src.Float64() * mintPriceMax,
		Change: (m.src.Float64() - 0.5) * mintChangeMax,
		Volume: float64(m.src.Intn(mintVolumeMax)),
		Energy: m.src.Intn(mintEnergyMax),
	}
	m.tokens = append(m.tokens, t)
	return t
}

// TotalEnergy sums the appetite of every listed token.
func (m *Market) TotalEnergy() int {
	n := 0
	for _, t := range m.tokens {
		n += t.Energy
	}
	return n
}

// TotalVolume sums the volume of every listed token.
func (m *Market) TotalVolume() float64 {
	v := 0.0
	for _, t := range m.tokens {
		v += t.Volume
	}
	return v
}
