package models

import "testing"

func TestNewLister(t *testing.T) {
	lister := NewLister("test-key")
	if lister == nil {
		t.Fatal("NewLister() returned nil")
	}
	if lister.apiKey != "test-key" {
		t.Errorf("apiKey = %q, want test-key", lister.apiKey)
	}
}

func TestListTTSModelsRequiresKey(t *testing.T) {
	lister := NewLister("")
	if err := lister.ListTTSModels(); err == nil {
		t.Errorf("ListTTSModels() error = nil without API key")
	}
}
