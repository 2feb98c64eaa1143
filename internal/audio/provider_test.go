package audio

import (
	"context"
	"errors"
	"testing"
)

// stubProvider is a minimal Provider for wrapper tests
type stubProvider struct {
	name string
	data []byte
	err  error
}

func (s *stubProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return s.data, s.err
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) IsAvailable() error { return s.err }

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "openai without API key",
			config: &Config{
				Provider: "openai",
			},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name: "openai with API key",
			config: &Config{
				Provider:  "openai",
				OpenAIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: &Config{
				Provider: "festival",
			},
			wantErr: true,
			errMsg:  "unknown audio provider: festival",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && err.Error() != tt.errMsg {
				t.Errorf("NewProvider() error = %v, want %v", err.Error(), tt.errMsg)
			}
			if !tt.wantErr && provider == nil {
				t.Errorf("NewProvider() returned nil provider without error")
			}
		})
	}
}

func TestDefaultProviderConfig(t *testing.T) {
	config := DefaultProviderConfig()

	if config.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", config.Provider)
	}
	if config.Language != "en" {
		t.Errorf("Language = %q, want en", config.Language)
	}
	if config.OpenAIModel != "gpt-4o-mini-tts" {
		t.Errorf("OpenAIModel = %q, want gpt-4o-mini-tts", config.OpenAIModel)
	}
}

func TestProviderWithFallback(t *testing.T) {
	tests := []struct {
		name     string
		primary  *stubProvider
		fallback *stubProvider
		wantData string
		wantErr  bool
	}{
		{
			name:     "primary succeeds",
			primary:  &stubProvider{name: "a", data: []byte("primary audio")},
			fallback: &stubProvider{name: "b", data: []byte("fallback audio")},
			wantData: "primary audio",
		},
		{
			name:     "primary fails, fallback succeeds",
			primary:  &stubProvider{name: "a", err: errors.New("boom")},
			fallback: &stubProvider{name: "b", data: []byte("fallback audio")},
			wantData: "fallback audio",
		},
		{
			name:     "both fail",
			primary:  &stubProvider{name: "a", err: errors.New("boom")},
			fallback: &stubProvider{name: "b", err: errors.New("also boom")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewProviderWithFallback(tt.primary, tt.fallback)

			data, err := provider.Synthesize(context.Background(), "hola")
			if (err != nil) != tt.wantErr {
				t.Errorf("Synthesize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != tt.wantData {
				t.Errorf("Synthesize() = %q, want %q", data, tt.wantData)
			}
		})
	}
}

func TestProviderWithFallbackIsAvailable(t *testing.T) {
	healthy := &stubProvider{name: "ok"}
	broken := &stubProvider{name: "broken", err: errors.New("not configured")}

	if err := NewProviderWithFallback(broken, healthy).IsAvailable(); err != nil {
		t.Errorf("IsAvailable() = %v, want nil when fallback is healthy", err)
	}
	if err := NewProviderWithFallback(broken, broken).IsAvailable(); err == nil {
		t.Errorf("IsAvailable() = nil, want error when both are broken")
	}
}

func TestOpenAIProviderRejectsEmptyText(t *testing.T) {
	provider, err := NewOpenAIProvider(&Config{OpenAIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	if _, err := provider.Synthesize(context.Background(), "   "); err == nil {
		t.Errorf("Synthesize() error = nil for blank text")
	}
}

func TestOpenAIProviderIsAvailable(t *testing.T) {
	provider := &OpenAIProvider{config: &Config{OpenAIKey: "test-key"}}
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() error = %v, want nil", err)
	}

	provider = &OpenAIProvider{config: &Config{}}
	if err := provider.IsAvailable(); err == nil {
		t.Errorf("IsAvailable() error = nil without API key")
	}
}
