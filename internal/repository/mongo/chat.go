package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
)

// MongoChatRepository implements ChatRepository on the chats collection
type MongoChatRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewChatRepository creates a new MongoChatRepository
func NewChatRepository(db *mongo.Database, logger *slog.Logger) llmRepo.ChatRepository {
	return &MongoChatRepository{coll: db.Collection(chatsCollection), logger: logger}
}

func (r *MongoChatRepository) Create(ctx context.Context, chat *llmModels.Chat) error {
	if _, err := r.coll.InsertOne(ctx, chat); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("chat %s: %w", chat.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert chat: %w", err)
	}
	return nil
}

func (r *MongoChatRepository) Get(ctx context.Context, chatID string) (*llmModels.Chat, error) {
	var chat llmModels.Chat
	if err := r.coll.FindOne(ctx, bson.M{"id": chatID}).Decode(&chat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find chat: %w", err)
	}
	return &chat, nil
}

func (r *MongoChatRepository) List(ctx context.Context, limit int) ([]llmModels.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find chats: %w", err)
	}
	defer cursor.Close(ctx)

	chats := make([]llmModels.Chat, 0)
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("decode chats: %w", err)
	}
	return chats, nil
}

func (r *MongoChatRepository) Update(ctx context.Context, chatID string, patch llmRepo.ChatPatch) error {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.MessageCount != nil {
		set["messageCount"] = *patch.MessageCount
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": chatID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update chat: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	return nil
}

func (r *MongoChatRepository) Delete(ctx context.Context, chatID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": chatID})
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	return nil
}
