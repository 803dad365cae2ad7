package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
)

type sqliteChatRepository struct {
	db      *sql.DB
	maxSize int
}

// NewSQLiteChatRepository SQLite asosidagi chat repository
func NewSQLiteChatRepository(dbPath string, maxContextSize int) (repository.ChatRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path bo'sh bo'lmasligi kerak")
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("db papkasini yaratib bo'lmadi: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite ochilmadi: %w", err)
	}
	// :memory: bazasi har bir ulanishda alohida
	db.SetMaxOpenConns(1)

	if err := createChatSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteChatRepository{db: db, maxSize: maxContextSize}, nil
}

func createChatSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS assistant_messages (
	id TEXT PRIMARY KEY,
	shopper_id TEXT NOT NULL,
	username TEXT,
	text TEXT,
	response TEXT,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assistant_messages_shopper_ts ON assistant_messages (shopper_id, ts);
`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("schema yaratib bo'lmadi: %w", err)
	}
	return nil
}

// SaveMessage xabarni saqlash
func (s *sqliteChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO assistant_messages (id, shopper_id, username, text, response, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		message.ID, message.ShopperID, message.Username, message.Text, message.Response, message.Timestamp)
	if err != nil {
		tx.Rollback()
		return err
	}

	// Eski xabarlarni kesish
	if s.maxSize > 0 {
		_, err = tx.ExecContext(ctx, `
DELETE FROM assistant_messages
WHERE id IN (
  SELECT id FROM assistant_messages
  WHERE shopper_id = ?
  ORDER BY ts DESC
  LIMIT -1 OFFSET ?
)`, message.ShopperID, s.maxSize)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetHistory xaridor chat tarixini olish
func (s *sqliteChatRepository) GetHistory(ctx context.Context, shopperID string, limit int) ([]entity.Message, error) {
	query := `SELECT id, shopper_id, username, text, response, ts FROM assistant_messages WHERE shopper_id = ? ORDER BY ts DESC`
	args := []any{shopperID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}

	// eski -> yangi tartibga qaytarish
	slices.Reverse(history)
	return history, nil
}

// GetAllMessages barcha xabarlarni olish (admin ko'rishi uchun)
func (s *sqliteChatRepository) GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error) {
	query := `SELECT id, shopper_id, username, text, response, ts FROM assistant_messages ORDER BY ts DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]entity.Message, error) {
	var msgs []entity.Message
	for rows.Next() {
		var msg entity.Message
		var username, text, response sql.NullString
		var ts time.Time
		if err := rows.Scan(&msg.ID, &msg.ShopperID, &username, &text, &response, &ts); err != nil {
			return nil, err
		}
		msg.Username = username.String
		msg.Text = text.String
		msg.Response = response.String
		msg.Timestamp = ts
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// ClearHistory xaridor tarixini tozalash
func (s *sqliteChatRepository) ClearHistory(ctx context.Context, shopperID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM assistant_messages WHERE shopper_id = ?`, shopperID)
	return err
}

// ClearAll barcha chat tarixlarini tozalash
func (s *sqliteChatRepository) ClearAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM assistant_messages`)
	return err
}

// GetContext xaridor chat kontekstini olish
func (s *sqliteChatRepository) GetContext(ctx context.Context, shopperID string) (*entity.ChatContext, error) {
	history, err := s.GetHistory(ctx, shopperID, 0)
	if err != nil {
		return nil, err
	}
	return chatContextOf(shopperID, history)
}

// Close bazani yopish
func (s *sqliteChatRepository) Close() error {
	return s.db.Close()
}
