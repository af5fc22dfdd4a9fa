// Package seed fills a store with sample conversations for local
// development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
)

// seedNamespace derives stable ids so reseeding finds existing rows
var seedNamespace = uuid.MustParse("6f1c5a3e-2b7d-4c1e-9a0f-3d2e8b7c6a51")

type sampleMessage struct {
	sender llmModels.Sender
	text   string
	offset time.Duration // after the chat's first message
}

type sampleChat struct {
	title    string
	age      time.Duration // time since last activity
	messages []sampleMessage
}

// Seeder writes sample chats through the repository interfaces, so it
// works against any store driver.
type Seeder struct {
	chats    llmRepo.ChatRepository
	messages llmRepo.MessageRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewSeeder creates a seeder
func NewSeeder(chats llmRepo.ChatRepository, messages llmRepo.MessageRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		chats:    chats,
		messages: messages,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SeedChats creates the sample chats. Chats that already exist are
// skipped. Returns the number of chats created.
func (s *Seeder) SeedChats(ctx context.Context) (int, error) {
	now := s.now()
	created := 0

	for _, sample := range sampleChats() {
		id := ChatID(sample.title)
		updatedAt := now.Add(-sample.age)
		first := updatedAt
		if n := len(sample.messages); n > 0 {
			first = updatedAt.Add(-sample.messages[n-1].offset)
		}

		chat := &llmModels.Chat{
			ID:           id,
			Title:        sample.title,
			CreatedAt:    first,
			UpdatedAt:    updatedAt,
			MessageCount: len(sample.messages),
		}
		if err := s.chats.Create(ctx, chat); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.logger.Info("sample chat exists, skipping", "title", sample.title)
				continue
			}
			return created, fmt.Errorf("seed chat %q: %w", sample.title, err)
		}

		for i, m := range sample.messages {
			msg := &llmModels.Message{
				ID:        uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%s/%d", id, i))).String(),
				ChatID:    id,
				Text:      m.text,
				Sender:    m.sender,
				Timestamp: first.Add(m.offset),
				Metadata:  map[string]interface{}{"seeded": true},
			}
			if err := s.messages.Create(ctx, msg); err != nil {
				return created, fmt.Errorf("seed message %d of %q: %w", i, sample.title, err)
			}
		}

		created++
		s.logger.Info("seeded chat", "id", id, "title", sample.title, "messages", len(sample.messages))
	}

	return created, nil
}

// ChatID is the stable id of the sample chat with the given title
func ChatID(title string) string {
	return uuid.NewSHA1(seedNamespace, []byte(title)).String()
}

func sampleChats() []sampleChat {
	const day = 24 * time.Hour

	// Single-question chats, answered with a short canned reply
	opener := func(title, question string, age time.Duration) sampleChat {
		return sampleChat{
			title: title,
			age:   age,
			messages: []sampleMessage{
				{sender: llmModels.SenderUser, text: question},
				{sender: llmModels.SenderAI, text: "Happy to help with that! Let's start with the basics.", offset: time.Minute},
			},
		}
	}

	return []sampleChat{
		{
			title: "Coding Poetry Discussion",
			age:   2 * time.Hour,
			messages: []sampleMessage{
				{sender: llmModels.SenderAI, text: "Hello! How can I help you today?"},
				{sender: llmModels.SenderUser, text: "Can you explain what you are and what you can do?", offset: time.Minute},
				{sender: llmModels.SenderAI, text: "I'm an AI assistant. I can help you with a wide variety of tasks including:\n\n" +
					"• Answering questions and providing explanations\n" +
					"• Writing and editing text\n" +
					"• Code assistance and programming help\n" +
					"• Creative writing and brainstorming\n" +
					"• Analysis and research\n\n" +
					"Feel free to ask me anything you'd like help with!", offset: time.Minute + 10*time.Second},
				{sender: llmModels.SenderUser, text: "That's amazing! Can you help me write a short poem about coding?", offset: 2 * time.Minute},
				{sender: llmModels.SenderAI, text: "Of course! Here's a short poem about coding:\n\n**Lines of Logic**\n\n" +
					"In screens that glow with endless light,\nWe weave our dreams in black and white.\n" +
					"With brackets, loops, and functions true,\nWe build the world anew.", offset: 2*time.Minute + 10*time.Second},
			},
		},
		opener("React Component Help", "How do I create a reusable button component in React?", day),
		opener("API Integration Guide", "Best practices for integrating third-party APIs", 2*day),
		opener("Database Design Tips", "Help me design a database schema for my project", 3*day),
		opener("CSS Grid Layout", "How to create responsive layouts with CSS Grid?", 7*day),
		opener("JavaScript Optimization", "Tips for optimizing JavaScript performance", 7*day+time.Hour),
		opener("Machine Learning Basics", "Explain machine learning concepts for beginners", 14*day),
		opener("Career Advice", "How to transition into a tech career?", 14*day+time.Hour),
	}
}
