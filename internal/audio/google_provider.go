package audio

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// GoogleProvider implements Provider interface for Google Cloud TTS.
// Credentials are picked up from GOOGLE_APPLICATION_CREDENTIALS.
type GoogleProvider struct {
	client *texttospeech.Client
	config *Config
}

// NewGoogleProvider creates a new Google Cloud TTS provider
func NewGoogleProvider(config *Config) (Provider, error) {
	client, err := texttospeech.NewClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	return &GoogleProvider{
		client: client,
		config: config,
	}, nil
}

// Synthesize generates MP3 audio bytes using Google Cloud TTS
func (p *GoogleProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("nothing to synthesize: text is empty")
	}

	voice := &texttospeechpb.VoiceSelectionParams{
		LanguageCode: p.languageCode(),
	}
	if p.config.GoogleVoice != "" {
		voice.Name = p.config.GoogleVoice
	}

	resp, err := p.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: voice,
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Google TTS API error: %w", err)
	}
	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("no audio data received from Google TTS")
	}

	return resp.AudioContent, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "googletts"
}

// IsAvailable checks if the Google TTS client was created
func (p *GoogleProvider) IsAvailable() error {
	if p.client == nil {
		return fmt.Errorf("Google TTS client not initialized")
	}
	return nil
}

// languageCode widens a bare language tag into the BCP-47 form the API
// expects, e.g. "en" becomes "en-US".
func (p *GoogleProvider) languageCode() string {
	lang := p.config.Language
	if lang == "" {
		return "en-US"
	}
	if strings.Contains(lang, "-") {
		return lang
	}
	switch lang {
	case "en":
		return "en-US"
	case "es":
		return "es-ES"
	case "de":
		return "de-DE"
	case "fr":
		return "fr-FR"
	default:
		return lang
	}
}
