package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type geminiClient struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

func (c *geminiClient) Name() string {
	return fmt.Sprintf("Gemini (%s)", c.model)
}

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := c.generateContent(ctx, prompt)
	return finish(c.Name(), text, err)
}

func (c *geminiClient) generateContent(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{
				"role":  "user",
				"parts": []map[string]string{{"text": prompt}},
			},
		},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "encode gemini request")
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return "", errors.Wrap(err, "build gemini request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "gemini request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read gemini response")
	}
	if resp.StatusCode >= 400 {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", fmt.Errorf("gemini API error: %s (%s)", resp.Status, msg)
	}
	if !gjson.ValidBytes(body) {
		return "", errors.New("gemini returned a malformed response")
	}
	if reason := gjson.GetBytes(body, "promptFeedback.blockReason").String(); reason != "" {
		return "", fmt.Errorf("gemini blocked the prompt: %s", reason)
	}

	var b strings.Builder
	for _, part := range gjson.GetBytes(body, "candidates.0.content.parts.#.text").Array() {
		b.WriteString(part.String())
	}
	if b.Len() == 0 {
		if reason := gjson.GetBytes(body, "candidates.0.finishReason").String(); reason != "" && reason != "STOP" {
			return "", fmt.Errorf("gemini stopped without text: %s", reason)
		}
	}
	return b.String(), nil
}
