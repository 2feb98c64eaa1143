package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ankivoice/internal/anki"
	"codeberg.org/snonux/ankivoice/internal/audio"
	"codeberg.org/snonux/ankivoice/internal/cli"
	"codeberg.org/snonux/ankivoice/internal/models"
	"codeberg.org/snonux/ankivoice/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListTTSModels()
	}

	ctx := context.Background()
	client := anki.NewClient(flags.AnkiURL)

	// A failing deck listing aborts the run before anything is mutated
	decks, err := client.DeckNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}

	fmt.Println("Available decks:")
	for _, deck := range decks {
		fmt.Printf("- %s\n", deck)
	}

	if flags.ListDecks {
		return nil
	}

	deckName, err := selectDeck(args, decks)
	if err != nil {
		return err
	}
	if deckName == "" {
		fmt.Println("No deck name entered. Exiting.")
		return nil
	}

	provider, err := buildSynthesizer(flags)
	if err != nil {
		return err
	}
	if err := provider.IsAvailable(); err != nil {
		return fmt.Errorf("audio provider not available: %w", err)
	}

	preserver := processor.NewPreserver(client)
	planner := processor.NewPlanner(client, client, provider, preserver, flags.QuestionField)
	proc := processor.New(client, planner, flags.Delay)

	result, err := proc.Run(ctx, deckName)
	if err != nil {
		return err
	}

	result.PrintSummary()
	return nil
}

// selectDeck takes the deck from the positional argument or the
// interactive prompt, and validates it against the listing.
func selectDeck(args []string, decks []string) (string, error) {
	var deckName string
	if len(args) > 0 {
		deckName = args[0]
	} else {
		var err error
		deckName, err = cli.PromptDeckName(decks)
		if err != nil {
			return "", err
		}
	}
	if deckName == "" {
		return "", nil
	}

	for _, deck := range decks {
		if deck == deckName {
			return deckName, nil
		}
	}
	return "", fmt.Errorf("deck %q not found, please check the deck name", deckName)
}

// buildSynthesizer assembles the TTS provider chain from flags and
// config file values.
func buildSynthesizer(flags *cli.Flags) (audio.Provider, error) {
	primary, err := audio.NewProvider(providerConfig(flags, flags.AudioProvider))
	if err != nil {
		return nil, err
	}

	if flags.FallbackProvider == "" || flags.FallbackProvider == flags.AudioProvider {
		return primary, nil
	}

	fallback, err := audio.NewProvider(providerConfig(flags, flags.FallbackProvider))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: fallback provider unavailable: %v\n", err)
		return primary, nil
	}
	return audio.NewProviderWithFallback(primary, fallback), nil
}

func providerConfig(flags *cli.Flags, name string) *audio.Config {
	config := &audio.Config{
		Provider: name,
		Language: flags.Language,

		OpenAIKey:         cli.GetOpenAIKey(),
		OpenAIModel:       flags.OpenAIModel,
		OpenAIVoice:       flags.OpenAIVoice,
		OpenAISpeed:       flags.OpenAISpeed,
		OpenAIInstruction: flags.OpenAIInstruction,

		GoogleVoice: flags.GoogleVoice,
	}

	// Config file values apply when flags kept their defaults
	if config.OpenAIInstruction == "" && viper.IsSet("audio.openai_instruction") {
		config.OpenAIInstruction = viper.GetString("audio.openai_instruction")
	}
	if config.GoogleVoice == "" && viper.IsSet("audio.google_voice") {
		config.GoogleVoice = viper.GetString("audio.google_voice")
	}

	return config
}
