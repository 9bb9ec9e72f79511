package llm

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestPickHTTPClientHonorsCustomClient(t *testing.T) {
	custom := &http.Client{Timeout: 42 * time.Second}
	if got := pickHTTPClient(custom, time.Second); got != custom {
		t.Fatalf("expected custom client to be returned")
	}
}

func TestPickHTTPClientUsesLongerTimeout(t *testing.T) {
	client := pickHTTPClient(nil, 0)
	if client.Timeout != defaultLLMHTTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultLLMHTTPTimeout, client.Timeout)
	}
	client = pickHTTPClient(nil, 5*time.Second)
	if client.Timeout != 5*time.Second {
		t.Fatalf("expected configured timeout, got %s", client.Timeout)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	cases := []struct {
		name     string
		cfg      Config
		wantName string
		wantErr  bool
	}{
		{name: "default is gemini", cfg: Config{APIKey: "k"}, wantName: "Gemini (gemini-1.5-flash)"},
		{name: "gemini needs key", cfg: Config{Provider: "gemini"}, wantErr: true},
		{name: "openai", cfg: Config{Provider: "OpenAI", APIKey: "k", Model: "gpt-x"}, wantName: "OpenAI (gpt-x)"},
		{name: "openai needs key", cfg: Config{Provider: "openai"}, wantErr: true},
		{name: "ollama without key", cfg: Config{Provider: "ollama"}, wantName: "Ollama (ministral-3:latest)"},
		{name: "unknown", cfg: Config{Provider: "carrier-pigeon"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := New(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got client %v", client.Name())
				}
				if client != nil {
					t.Fatalf("failed New must return a nil Client, got %T", client)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.Name() != tc.wantName {
				t.Fatalf("name mismatch: got %q want %q", client.Name(), tc.wantName)
			}
		})
	}
}

func TestFinishWrapsFailures(t *testing.T) {
	if _, err := finish("p", "   ", nil); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
	var genErr *GenerationError
	if _, err := finish("p", "", errors.New("boom")); !errors.As(err, &genErr) || genErr.Provider != "p" {
		t.Fatalf("expected GenerationError from provider p, got %v", err)
	}
	text, err := finish("p", "  <p>ok</p>\n", nil)
	if err != nil || text != "<p>ok</p>" {
		t.Fatalf("unexpected result %q (%v)", text, err)
	}
}
