package narrative

import (
	"fmt"
	"math"

	"pumpalien/assets"
	"pumpalien/internal/energy"
	"pumpalien/internal/market"
)

const (
	// tradeMin and tradeMax bound the units moved by one trade.
	tradeMin = 20
	tradeMax = 100
	// analyzeMax bounds the energy an analysis can add.
	analyzeMax = 30.0
)

func (s *State) registerEffects() {
	s.effects.MustRegister(assets.ActionContact, func() {
		s.say(assets.ContactLine)
		s.effects.Dispatch(EffectBurst)
	})
	s.effects.MustRegister(assets.ActionScan, func() { s.say(assets.ScanLine) })
	s.effects.MustRegister(assets.ActionAnalyze, s.analyzeEnergy)
	s.effects.MustRegister(assets.ActionTransmit, func() {
		s.say(assets.TransmitLine)
		s.messages.SimulateReply(s.clock, s.src, s.cfg.ReplyMin, s.cfg.ReplyMax, s.story.Replies)
	})
	s.effects.MustRegister(assets.ActionTrade, s.trade)
	s.effects.MustRegister(assets.ActionMint, func() {
		tok := s.market.Mint()
		s.say(fmt.Sprintf(assets.MintLine, tok.Symbol, tok.Name, tok.Price))
		s.effects.Dispatch(EffectBurst)
	})
	s.effects.MustRegister(assets.ActionBoost, func() {
		s.say(fmt.Sprintf(assets.BoostLine, s.cfg.BoostAmount))
		s.BoostEnergy(s.cfg.BoostAmount)
	})
	s.effects.MustRegister(assets.ActionDecode, func() {
		s.say(fmt.Sprintf(assets.DecodeLine, s.src.Pick(assets.DecodeFragments)))
	})
	s.effects.MustRegister(EffectClassified, func() {
		s.classified = !s.classified
		if s.classified {
			s.printLine(assets.ClassifiedOn)
			return
		}
		s.printLine(assets.ClassifiedOff)
	})
	s.effects.MustRegister(EffectRevelation, s.stepRevelation)
}

// trade buys or sells a random amount of the selected token and feeds the
// traded value to the entity.
func (s *State) trade() {
	side := market.Sell
	if s.src.Chance(0.5) {
		side = market.Buy
	}
	tr, ok := s.market.Trade(side, float64(s.src.IntRange(tradeMin, tradeMax)))
	if !ok {
		s.say(assets.MarketEmpty)
		return
	}
	s.say(fmt.Sprintf(assets.TradeLine, tr.Side, int(tr.Amount), tr.Token.Symbol, tr.Token.Price, tr.Energy))
	s.BoostEnergy(float64(tr.Energy))
	s.logger.Debug("trade", "token", tr.Token.Symbol, "side", tr.Side.String(), "value", tr.Value, "energy", tr.Energy)
}

// analyzeEnergy feeds a random amount of energy and reports the resulting band.
func (s *State) analyzeEnergy() {
	gain := s.src.Range(0, analyzeMax)
	level := math.Min(energy.Max, s.energy.Level()+gain)
	switch {
	case level > 80:
		s.say(assets.AnalyzeCritical)
	case level > 50:
		s.say(assets.AnalyzeModerate)
	default:
		s.say(assets.AnalyzeLow)
	}
	s.BoostEnergy(gain)
}

// stepRevelation shows the next revelation, then the final truth.
func (s *State) stepRevelation() {
	if !s.truthRevealed || s.finalShown {
		return
	}
	s.revelation++
	if s.revelation < len(s.story.Revelations) {
		r := s.story.Revelations[s.revelation]
		s.say(assets.RevealPrefix + r.Title)
		return
	}
	s.finalShown = true
	s.clock.Cancel(s.reveal)
	if s.story.FinalTruth != "" {
		s.say(assets.RevealPrefix + s.story.FinalTruth)
	}
	s.effects.Dispatch(EffectChime)
}
