// Package mongo stores chats and messages as documents in MongoDB, one
// collection each.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"chatbackend/internal/domain/repositories"
)

const (
	chatsCollection    = "chats"
	messagesCollection = "messages"
)

// Connect opens a client, pings the server, and returns the database.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the lookup and ordering indexes both
// repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	_, err := db.Collection(chatsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "updatedAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create chat indexes: %w", err)
	}

	_, err = db.Collection(messagesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "chatId", Value: 1}, {Key: "timestamp", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create message indexes: %w", err)
	}

	logger.Debug("mongo indexes ensured", "database", db.Name())
	return nil
}

// ClearData deletes every message and chat document
func ClearData(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(messagesCollection).DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	if _, err := db.Collection(chatsCollection).DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear chats: %w", err)
	}
	return nil
}

// TransactionManager runs functions directly. Multi-document
// transactions need a replica set, which a standalone server lacks.
type TransactionManager struct{}

// NewTransactionManager creates a pass-through transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return TransactionManager{}
}

// ExecTx runs fn with ctx unchanged
func (TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
