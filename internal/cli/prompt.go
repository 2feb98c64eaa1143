package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// PromptDeckName asks the user which deck to process. The names are
// offered as tab completions. Returns an empty string if the user
// aborts (EOF or interrupt) or enters nothing.
func PromptDeckName(decks []string) (string, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(decks))
	for _, deck := range decks {
		items = append(items, readline.PcItem(deck))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "Deck to process: ",
		AutoComplete: readline.NewPrefixCompleter(items...),
	})
	if err != nil {
		return "", fmt.Errorf("failed to set up prompt: %w", err)
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", nil
		}
		return "", err
	}

	return strings.TrimSpace(line), nil
}
