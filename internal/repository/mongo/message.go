package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
)

// MongoMessageRepository implements MessageRepository on the messages
// collection. The driver-generated _id ObjectID increases with insertion
// and breaks ties between equal timestamps.
type MongoMessageRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMessageRepository creates a new MongoMessageRepository
func NewMessageRepository(db *mongo.Database, logger *slog.Logger) llmRepo.MessageRepository {
	return &MongoMessageRepository{coll: db.Collection(messagesCollection), logger: logger}
}

func (r *MongoMessageRepository) Create(ctx context.Context, msg *llmModels.Message) error {
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MongoMessageRepository) ListByChat(ctx context.Context, chatID string, limit int) ([]llmModels.Message, error) {
	return r.find(ctx, chatID, 1, limit)
}

func (r *MongoMessageRepository) ListRecent(ctx context.Context, chatID string, n int) ([]llmModels.Message, error) {
	return r.find(ctx, chatID, -1, n)
}

func (r *MongoMessageRepository) Latest(ctx context.Context, chatID string) (*llmModels.Message, error) {
	messages, err := r.find(ctx, chatID, -1, 1)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("latest message of chat %s: %w", chatID, domain.ErrNotFound)
	}
	return &messages[0], nil
}

func (r *MongoMessageRepository) Count(ctx context.Context, chatID string) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"chatId": chatID})
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return int(n), nil
}

func (r *MongoMessageRepository) DeleteByChat(ctx context.Context, chatID string) (int, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"chatId": chatID})
	if err != nil {
		return 0, fmt.Errorf("delete messages: %w", err)
	}
	return int(res.DeletedCount), nil
}

// find lists a chat's messages; direction 1 is oldest first, -1 newest first
func (r *MongoMessageRepository) find(ctx context.Context, chatID string, direction, limit int) ([]llmModels.Message, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "timestamp", Value: direction},
		{Key: "_id", Value: direction},
	})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := make([]llmModels.Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return messages, nil
}
