package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ListTTSModels prints the OpenAI models usable for speech synthesis
func (l *Lister) ListTTSModels() error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .ankivoice.yaml")
	}

	ctx := context.Background()
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	var ttsModels []string
	for _, model := range models.Models {
		if strings.Contains(model.ID, "tts") || strings.Contains(model.ID, "audio") {
			ttsModels = append(ttsModels, model.ID)
		}
	}
	sort.Strings(ttsModels)

	fmt.Println("Available OpenAI TTS models:")
	if len(ttsModels) == 0 {
		fmt.Println("  No TTS models found")
		return nil
	}
	for _, model := range ttsModels {
		fmt.Printf("  %s\n", model)
	}

	return nil
}
