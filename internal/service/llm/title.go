package llm

import (
	"strings"
	"unicode/utf8"

	"chatbackend/internal/config"
	llmModels "chatbackend/internal/domain/models/llm"
)

// CleanTitle normalizes a generated title: surrounding whitespace, then
// double quotes, then single quotes are stripped. Titles longer than
// config.MaxTitleSuggestionLength characters collapse to the default title.
func CleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"`)
	title = strings.Trim(title, `'`)

	if utf8.RuneCountInString(title) > config.MaxTitleSuggestionLength {
		return llmModels.DefaultChatTitle
	}
	return title
}
