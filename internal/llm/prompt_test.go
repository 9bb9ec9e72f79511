package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildGenerationPromptEmbedsTitleAndTags(t *testing.T) {
	titles := []string{"Ocean Currents", `The "Quoted" Title`, "Über Käse & <Brot>", "  padded  "}
	for _, title := range titles {
		prompt, err := BuildGenerationPrompt(title)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", title, err)
		}
		if !strings.Contains(prompt, title) {
			t.Fatalf("prompt missing title %q: %s", title, prompt)
		}
		for _, tag := range []string{"h1", "h2", "p", "ul", "li", "strong", "em"} {
			if !strings.Contains(prompt, "<"+tag+">") {
				t.Fatalf("prompt missing tag %s", tag)
			}
		}
		if !strings.Contains(prompt, "without additional modification") {
			t.Fatal("prompt should require output ready for direct integration")
		}
	}
}

func TestBuildGenerationPromptRejectsEmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\n\t"} {
		if _, err := BuildGenerationPrompt(title); !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("expected ErrEmptyTitle for %q, got %v", title, err)
		}
	}
}

func TestBuildOptimizationPromptEmbedsContent(t *testing.T) {
	content := "<h1>Draft</h1>\n<p>old text with <em>emphasis</em></p>"
	prompt, err := BuildOptimizationPrompt(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(prompt, content) {
		t.Fatalf("content should lead the prompt verbatim: %s", prompt)
	}
	if !strings.Contains(prompt, "without any markdown or code block symbols") {
		t.Fatalf("prompt missing markdown prohibition: %s", prompt)
	}
	if !strings.Contains(prompt, "keeping the original meaning intact") {
		t.Fatal("prompt should ask to preserve meaning")
	}
}

func TestBuildOptimizationPromptRejectsEmptyContent(t *testing.T) {
	_, err := BuildOptimizationPrompt("")
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if !IsValidation(err) {
		t.Fatal("empty content should be a validation error")
	}
	var v *ValidationError
	if !errors.As(err, &v) || v.Field != FieldContent {
		t.Fatalf("expected content field, got %v", err)
	}
}
