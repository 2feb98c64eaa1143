package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	AnkiURL       string
	QuestionField string
	Delay         time.Duration
	Language      string
	ListDecks     bool
	ListModels    bool

	// Audio provider flags
	AudioProvider    string
	FallbackProvider string

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Google Cloud TTS flags
	GoogleVoice string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		AnkiURL:       "http://localhost:8765",
		QuestionField: "Front",
		Delay:         100 * time.Millisecond,
		Language:      "en",
		AudioProvider: "openai",
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAIVoice:   "alloy",
		OpenAISpeed:   1.0,
	}
}
