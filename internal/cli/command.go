package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ankivoice/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ankivoice [deck]",
		Short: "Anki deck audio annotator",
		Long: `ankivoice attaches synthesized speech audio to the question field of
every card in an Anki deck, without disturbing the cards' review
schedule. It talks to a locally running AnkiConnect instance.

Examples:
  ankivoice                  # List decks and prompt for one
  ankivoice Spanish          # Annotate the "Spanish" deck
  ankivoice --list-decks     # Only list decks and exit`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.ankivoice.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.AnkiURL, "anki-url", flags.AnkiURL, "AnkiConnect URL")
	cmd.Flags().StringVar(&flags.QuestionField, "question-field", flags.QuestionField, "Note field to annotate with audio")
	cmd.Flags().DurationVar(&flags.Delay, "delay", flags.Delay, "Pause between cards")
	cmd.Flags().StringVar(&flags.Language, "language", flags.Language, "Language code of the deck content")
	cmd.Flags().BoolVar(&flags.ListDecks, "list-decks", false, "List available decks and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI TTS models for the current API key")

	// Audio provider flags
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "TTS provider: openai or googletts")
	cmd.Flags().StringVar(&flags.FallbackProvider, "fallback-provider", "", "Secondary TTS provider tried when the primary fails")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model")

	// Google Cloud TTS flags
	cmd.Flags().StringVar(&flags.GoogleVoice, "google-voice", "", "Google Cloud TTS voice name (default picked by the API)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("anki.url", cmd.Flags().Lookup("anki-url"))
	viper.BindPFlag("anki.question_field", cmd.Flags().Lookup("question-field"))
	viper.BindPFlag("anki.delay", cmd.Flags().Lookup("delay"))
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("audio-provider"))
	viper.BindPFlag("audio.fallback_provider", cmd.Flags().Lookup("fallback-provider"))
	viper.BindPFlag("audio.language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("audio.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
	viper.BindPFlag("audio.google_voice", cmd.Flags().Lookup("google-voice"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".ankivoice" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ankivoice")
	}

	// Environment variables
	viper.SetEnvPrefix("ANKIVOICE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("audio.openai_key")
}
