package provider

import (
	"fmt"

	"github.com/ZaguanLabs/artran"
)

// systemPrompt instructs a chat model to translate one article field.
func systemPrompt(req TextRequest) string {
	source := "the detected source language"
	if req.SourceLang != "" {
		source = artran.LanguageName(req.SourceLang)
	}
	target := artran.LanguageName(req.TargetLang)

	return fmt.Sprintf(`# Role
You are an expert translator of scientific articles.

# Task
Translate the user's message from %s into %s.

# Style Guide
- Keep scientific terminology, species names, units and citations accurate.
- Do NOT translate URLs, email addresses or HTML tags; translate only the text between tags.
- Preserve line breaks.

# Format
Return only the translated text, with no quotes, notes or Markdown.`, source, target)
}
