package config

const (
	// MaxChatTitleLength is the maximum length for chat titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxChatTitleLength = 255

	// MaxTitleSuggestionLength caps generated titles. Longer suggestions
	// are replaced by the default title.
	MaxTitleSuggestionLength = 50

	// MaxListedChats bounds GET /chats.
	MaxListedChats = 1000

	// MaxListedMessages bounds the messages returned for a single chat.
	MaxListedMessages = 1000

	// PreviewLength is the number of characters of the latest message
	// shown in a chat summary.
	PreviewLength = 100
)
