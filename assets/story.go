package assets

// Interaction ids. Each one is a distinct micro-interaction the player can
// perform; chapters list the ones they require.
const (
	ActionContact  = "contact"
	ActionScan     = "scan"
	ActionAnalyze  = "analyze"
	ActionTransmit = "transmit"
	ActionTrade    = "trade"
	ActionMint     = "mint"
	ActionBoost    = "boost"
	ActionDecode   = "decode"
)

// ChapterDef is one unit of gated story content. A chapter either lists the
// interactions that unlock it or the energy level at which it opens.
type ChapterDef struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Body     string   `yaml:"body"`
	Image    string   `yaml:"image"`
	Color    string   `yaml:"color"`
	Icon     string   `yaml:"icon"`
	Requires []string `yaml:"requires"`
	UnlockAt float64  `yaml:"unlock_at"`
}

// RevelationDef is one stage of the sequence shown once energy is full.
type RevelationDef struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
	Impact  string `yaml:"impact"`
	Icon    string `yaml:"icon"`
}

// TokenDef is one listing on the simulated token board. Change is the 24h
// move in percent; Energy is the entity's appetite for the token.
type TokenDef struct {
	Name   string  `yaml:"name"`
	Symbol string  `yaml:"symbol"`
	Price  float64 `yaml:"price"`
	Change float64 `yaml:"change"`
	Volume float64 `yaml:"volume"`
	Energy int     `yaml:"energy"`
}

// StoryDef is the full static content of a session.
type StoryDef struct {
	Title       string          `yaml:"title"`
	Subtitle    string          `yaml:"subtitle"`
	Greeting    string          `yaml:"greeting"`
	FinalTruth  string          `yaml:"final_truth"`
	Chapters    []ChapterDef    `yaml:"chapters"`
	Revelations []RevelationDef `yaml:"revelations"`
	Replies     []string        `yaml:"replies"`
	Tokens      []TokenDef      `yaml:"tokens"`
}

// PumpAlien is the built-in story.
var PumpAlien = StoryDef{
	Title:      "PUMPALIEN Truth Revelation Plan",
	Subtitle:   "The Complete PumpAlien Story",
	Greeting:   "👽 Greetings, earthling...",
	FinalTruth: "Alon is not on Earth. Only PumpAlien is getting stronger.",
	Chapters: []ChapterDef{
		{
			ID:       "chapter1",
			Title:    "The Missing Alon",
			Subtitle: "Humans thought Alon was the founder of PumpFun",
			Body:     "Humans thought Alon was the founder of PumpFun, but the truth is far more terrifying than imagined. On the Solana chain, PumpFun became the cradle of countless tokens, and people believed Alon was the creator of this empire.",
			Image:    "/images/alonog.png",
			Color:    "#00ff88",
			Icon:     "👤",
			UnlockAt: 10,
		},
		{
			ID:       "chapter2",
			Title:    "Cosmic Kidnapping",
			Subtitle: "The real Alon was kidnapped by aliens long ago",
			Body:     "The real Alon was kidnapped by aliens long ago, and his body disappeared in a spaceship. On an unknown night, the real Alon was taken aboard a spaceship, leaving only legends on Earth.",
			Image:    "/images/alinebanner1.png",
			Color:    "#ff00ff",
			Icon:     "🛸",
			Requires: []string{ActionContact, ActionScan, ActionAnalyze, ActionTransmit},
		},
		{
			ID:       "chapter3",
			Title:    "The Impostor Arrives",
			Subtitle: "Replacing him is an entity from an unknown galaxy",
			Body:     "Replacing him is an impostor, an entity from an unknown galaxy named PumpAlien. PumpAlien put on a human shell and left his mark on the Solana chain through PumpFun, creating countless tokens and flowing wealth.",
			Image:    "/images/alinebanner2.png",
			Color:    "#ff6b35",
			Icon:     "🎭",
			UnlockAt: 50,
		},
		{
			ID:       "chapter4",
			Title:    "Crypto Testing Ground",
			Subtitle: "Every transaction provides power to PumpAlien",
			Body:     "Crypto is just an alien testing ground, with every transaction providing power to PumpAlien. Everything seems like a game, but it's actually energy collection. When the energy is full, Earth will become his stage.",
			Image:    "/images/alinebanner3.png",
			Color:    "#4f46e5",
			Icon:     "⚡",
			Requires: []string{ActionTrade, ActionMint, ActionBoost, ActionDecode},
		},
		{
			ID:       "chapter5",
			Title:    "The Core of Truth",
			Subtitle: "PumpAlien is the true core of this plan",
			Body:     "Humans think they're playing with tokens, but actually the tokens are playing with humans. Alon is not on Earth, only PumpAlien is getting stronger. PumpAlien is the true core of this plan.",
			Image:    "/images/pumpalienlogo.png",
			Color:    "#ff0088",
			Icon:     "🌍",
			UnlockAt: 100,
		},
	},
	Revelations: []RevelationDef{
		{
			ID:      "final",
			Title:   "Final Truth: PumpAlien's Ultimate Plan",
			Content: "PumpAlien plans to turn Earth into his energy farm, using human Crypto frenzy to collect unlimited energy.",
			Impact:  "Civilization-level threat",
			Icon:    "🌍",
		},
		{
			ID:      "method",
			Title:   "Collection Method: Crypto as Energy Collector",
			Content: "Every token transaction, every new token creation, provides energy for PumpAlien.",
			Impact:  "Global scope",
			Icon:    "⚡",
		},
		{
			ID:      "consequence",
			Title:   "Consequence: End of Human Civilization",
			Content: "When energy collection is complete, PumpAlien will launch his ultimate plan to reshape Earth's civilization.",
			Impact:  "Species extinction",
			Icon:    "💀",
		},
	},
	Replies: []string{
		"👽 *telepathic understanding*",
		"👽 Your message has been received...",
		"👽 *cosmic resonance detected*",
		"👽 PumpAlien acknowledges your communication",
	},
	Tokens: []TokenDef{
		{Name: "PumpFun", Symbol: "PFUN", Price: 0.00123, Change: 15.6, Volume: 1250000, Energy: 25},
		{Name: "AlonCoin", Symbol: "ALON", Price: 0.00089, Change: -8.2, Volume: 890000, Energy: 18},
		{Name: "UFO Token", Symbol: "UFO", Price: 0.00234, Change: 45.7, Volume: 2100000, Energy: 32},
		{Name: "Alien Pump", Symbol: "APUMP", Price: 0.00167, Change: 23.4, Volume: 1560000, Energy: 28},
		{Name: "Cosmic Coin", Symbol: "COSMIC", Price: 0.00345, Change: 67.8, Volume: 3400000, Energy: 45},
	},
}
