package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

const (
	defaultGeminiModel    = "gemini-1.5-flash"
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultOllamaModel    = "ministral-3:latest"
	defaultOllamaHost     = "http://localhost:11434"
)

const defaultLLMHTTPTimeout = 3 * time.Minute

// Config describes how to build an LLM client.
type Config struct {
	Provider   string
	Model      string
	Endpoint   string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client submits a prompt to a text-generation backend and waits for the
// complete response. Failures are reported as *GenerationError.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// New builds the client for cfg.Provider. An empty provider selects Gemini.
func New(cfg Config) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	httpClient := pickHTTPClient(cfg.HTTPClient, cfg.Timeout)
	switch provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini api key missing; set GOOGLE_API_KEY")
		}
		return &geminiClient{
			endpoint: orDefault(strings.TrimRight(cfg.Endpoint, "/"), defaultGeminiEndpoint),
			model:    orDefault(cfg.Model, defaultGeminiModel),
			apiKey:   cfg.APIKey,
			client:   httpClient,
		}, nil
	case ProviderOpenAI:
		client, err := newOpenAIClient(cfg, httpClient)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOllama:
		return &ollamaClient{
			host:   orDefault(strings.TrimRight(cfg.Endpoint, "/"), defaultOllamaHost),
			model:  orDefault(cfg.Model, defaultOllamaModel),
			client: httpClient,
		}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultLLMHTTPTimeout
	}
	// Generations routinely take tens of seconds; the caller's context still cancels earlier.
	return &http.Client{Timeout: timeout}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// finish normalizes a backend result into the adapter contract.
func finish(provider, text string, err error) (string, error) {
	if err != nil {
		return "", &GenerationError{Provider: provider, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &GenerationError{Provider: provider, Err: ErrEmptyResponse}
	}
	return text, nil
}
