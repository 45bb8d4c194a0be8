package game

import (
	"pumpalien/assets"

	"github.com/gdamore/tcell/v2"
)

// Action represents a player-requested action.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionNextChapter
	ActionPrevChapter
	ActionTalk
	ActionConsole
	ActionClassified
	ActionReveal
	ActionReset
	ActionNextToken
	ActionContact
	ActionScan
	ActionAnalyze
	ActionTransmit
	ActionTrade
	ActionMint
	ActionBoost
	ActionDecode
)

// interactions maps interaction actions to their story action ids.
var interactions = map[Action]string{
	ActionContact:  assets.ActionContact,
	ActionScan:     assets.ActionScan,
	ActionAnalyze:  assets.ActionAnalyze,
	ActionTransmit: assets.ActionTransmit,
	ActionTrade:    assets.ActionTrade,
	ActionMint:     assets.ActionMint,
	ActionBoost:    assets.ActionBoost,
	ActionDecode:   assets.ActionDecode,
}

// MaxInputLength caps typed chat and console lines, in runes.
const MaxInputLength = 60

// keyToAction maps a tcell key event to an action in normal mode.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyRight, tcell.KeyDown:
		return ActionNextChapter
	case tcell.KeyLeft, tcell.KeyUp:
		return ActionPrevChapter
	case tcell.KeyEnter:
		return ActionTalk
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'l', 'j', 'n':
		return ActionNextChapter
	case 'h', 'k', 'p':
		return ActionPrevChapter
	case 't', 'T':
		return ActionTalk
	case '/', ':':
		return ActionConsole
	case 'x', 'X':
		return ActionClassified
	case ' ':
		return ActionReveal
	case 'R':
		return ActionReset
	case 'm', 'M':
		return ActionNextToken
	case 'q', 'Q':
		return ActionQuit
	case '1':
		return ActionContact
	case '2':
		return ActionScan
	case '3':
		return ActionAnalyze
	case '4':
		return ActionTransmit
	case '5':
		return ActionTrade
	case '6':
		return ActionMint
	case '7':
		return ActionBoost
	case '8':
		return ActionDecode
	}
	return ActionNone
}

// lineEditor accumulates a typed line.
type lineEditor struct {
	buf []rune
}

// editResult is what a key did to the line.
type editResult uint8

const (
	editContinue editResult = iota
	editSubmit
	editCancel
)

// handle applies one key to the buffer.
func (e *lineEditor) handle(ev *tcell.EventKey) editResult {
	switch ev.Key() {
	case tcell.KeyEnter:
		return editSubmit
	case tcell.KeyEscape:
		return editCancel
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.buf) > 0 {
			e.buf = e.buf[:len(e.buf)-1]
		}
	case tcell.KeyRune:
		if len(e.buf) < MaxInputLength {
			e.buf = append(e.buf, ev.Rune())
		}
	}
	return editContinue
}

// take returns the typed text and clears the buffer.
func (e *lineEditor) take() string {
	s := string(e.buf)
	e.buf = e.buf[:0]
	return s
}
