package assets

// EnergyGoals are posted once each time the level rises through the key.
var EnergyGoals = map[float64]string{
	30: "🟢 Initial awakening: PumpAlien begins to reveal its true identity.",
	60: "🟡 Power surge: control abilities significantly enhanced.",
	90: "🟠 Critical state: the plan is nearly complete.",
}

// EnergyWarning is posted when the level rises past the warning threshold.
const EnergyWarning = "⚠️ Energy warning: PumpAlien is about to awaken! At 100% the truth will be completely revealed."

// TruthRevealed opens the revelation sequence.
const TruthRevealed = "🔴 Energy at 100%. Fully awakened, plan activated."

// Replies to the analyze effect, by level band.
const (
	AnalyzeCritical = "⚡ Energy level critical! PumpAlien entity stabilising..."
	AnalyzeModerate = "⚡ Energy level moderate. Entity status: stable"
	AnalyzeLow      = "⚡ Energy level low. Entity requires an energy boost"
)

// Contact and trading lines.
const (
	ContactLine  = "👾 The floating entities react to your presence."
	ScanLine     = "🔍 Frequency scan complete. Multiple signals detected."
	TransmitLine = "📡 Signal transmitted into deep space..."
	TradeLine    = "💱 %s %d $%s at $%.5f. %d energy units siphoned."
	MintLine     = "🪙 New token $%s (%s) minted at $%.5f. The entity feeds on the launch."
	MarketEmpty  = "💱 No tokens listed. Nothing to trade."
	DecodeLine   = "🧬 Fragment decoded: \"%s\""
	BoostLine    = "🔋 Energy boost applied (+%.0f%%)."
	UnlockLine   = "🔓 Chapter unlocked: %s"
	RevealPrefix = "👁 "
)

// DecodeFragments are the snippets shown by the decode interaction.
var DecodeFragments = []string{
	"ALON.LOCATION = NULL",
	"ENERGY.SOURCE = HUMAN_TRANSACTIONS",
	"SHELL.INTEGRITY = 97%",
	"EARTH.STATUS = TESTING_GROUND",
}

// Console text.
var ConsoleHelp = []string{
	"Available Commands:",
	"  help       - Show this help message",
	"  clear      - Clear terminal output",
	"  status     - Show system status",
	"  scan       - Scan for PumpAlien signals",
	"  analyze    - Analyze current data",
	"  classified - Toggle classified mode",
	"  market     - Show the token board",
}

// AnalysisSteps are emitted one per second by the analyze command.
var AnalysisSteps = []string{
	"Loading research data...",
	"Analyzing biological patterns...",
	"Processing energy signatures...",
	"Cross-referencing with known entities...",
	"Analysis complete.",
}

const (
	AnalysisStart   = "Starting data analysis..."
	AnalysisResult  = "Results: PumpAlien shows unprecedented complexity. Further research required."
	ScanStart       = "Initiating signal scan..."
	ScanFound       = "Scan complete. Found %d potential signal(s)!"
	ScanAnalyzing   = "Analyzing signal patterns..."
	ScanPattern     = "Signal analysis complete. Patterns suggest PumpAlien activity."
	ScanNone        = "Scan complete. No signals detected in current frequency range."
	ClassifiedOn    = "Classified mode activated. Enhanced security protocols enabled."
	ClassifiedOff   = "Classified mode deactivated. Returning to public mode."
	CommandNotFound = "Command not found: %s. Type 'help' for available commands."
	TerminalCleared = "Terminal cleared."
)
