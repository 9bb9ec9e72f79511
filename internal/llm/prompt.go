package llm

import (
	"fmt"
	"strings"
)

// AllowedTags is the HTML whitelist both prompts ask the model to stay within.
var AllowedTags = []string{"h1", "h2", "p", "ul", "li", "strong", "em"}

func tagList() string {
	tags := make([]string, 0, len(AllowedTags))
	for _, tag := range AllowedTags {
		tags = append(tags, "<"+tag+">")
	}
	return strings.Join(tags, ", ")
}

// BuildGenerationPrompt asks for a complete HTML article about title.
func BuildGenerationPrompt(title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrEmptyTitle
	}
	return fmt.Sprintf(
		"Write a detailed, well-structured article on the topic: \"%s\". "+
			"The article should include an engaging introduction, multiple informative sections, and a concise conclusion, all written in a professional and informative tone. "+
			"Generate the content in clean, properly nested HTML format suitable for direct input into the embedded rich-text editor. "+
			"Use appropriate HTML tags such as %s for headings, subheadings, paragraphs, lists, bold, and italicized text. "+
			"Ensure that the output is ready for direct integration into the editor without additional modification.",
		title, tagList(),
	), nil
}

// BuildOptimizationPrompt asks the model to rewrite content in place.
func BuildOptimizationPrompt(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n\n")
	b.WriteString("Improve the following article by making it more engaging, professional, and well-structured. ")
	b.WriteString("Ensure that the output is in clean, properly nested HTML format compatible with the embedded rich-text editor. ")
	b.WriteString("Use appropriate HTML tags such as ")
	b.WriteString(tagList())
	b.WriteString(" for headings, subheadings, paragraphs, lists, bold, and italicized text. ")
	b.WriteString("Enhance clarity, grammar, and coherence while keeping the original meaning intact. ")
	b.WriteString("Output only the HTML content without any markdown or code block symbols.")
	return b.String(), nil
}
