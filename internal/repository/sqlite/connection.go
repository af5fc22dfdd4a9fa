// Package sqlite stores chats in an embedded SQLite database through gorm.
// The glebarez driver is pure Go, so no cgo toolchain is needed.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"chatbackend/internal/domain/repositories"
)

// chatRecord is the persisted row for a chat
type chatRecord struct {
	ID           string    `gorm:"primaryKey"`
	Title        string    `gorm:"size:255;not null"`
	MessageCount int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"index;autoUpdateTime:false"`
}

func (chatRecord) TableName() string { return "chats" }

// messageRecord is the persisted row for a message. Seq is the
// autoincrement key and breaks ties between equal timestamps.
type messageRecord struct {
	Seq       uint                   `gorm:"primaryKey;autoIncrement"`
	ID        string                 `gorm:"uniqueIndex;not null"`
	ChatID    string                 `gorm:"index:idx_messages_chat_ts,priority:1;not null"`
	Text      string                 `gorm:"not null"`
	Sender    string                 `gorm:"size:8;not null"`
	Timestamp time.Time              `gorm:"index:idx_messages_chat_ts,priority:2"`
	Metadata  map[string]interface{} `gorm:"serializer:json"`
}

func (messageRecord) TableName() string { return "messages" }

// Open opens (creating if needed) the database at path and migrates the schema.
func Open(path string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// SQLite allows a single writer; serializing connections avoids SQLITE_BUSY
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&chatRecord{}, &messageRecord{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}

	logger.Info("sqlite store ready", "path", path)
	return db, nil
}

// ClearData deletes every message and chat
func ClearData(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&messageRecord{}).Error; err != nil {
			return fmt.Errorf("clear messages: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&chatRecord{}).Error; err != nil {
			return fmt.Errorf("clear chats: %w", err)
		}
		return nil
	})
}

type txContextKey struct{}

// conn returns the transaction stored in ctx, or db bound to ctx
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// TransactionManager runs functions inside a gorm transaction
type TransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *gorm.DB) repositories.TransactionManager {
	return &TransactionManager{db: db}
}

// ExecTx executes fn within a transaction. Repositories pick the
// transaction up from the context.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}
