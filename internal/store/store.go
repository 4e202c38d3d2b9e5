// Package store is the local durable key-value fallback: the organizer
// emails seen on successful lookups, consulted only when the backend
// lookup fails unexpectedly.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"ticketly-gateway/internal/logger"
)

type OrganizerEmail struct {
	bun.BaseModel `bun:"table:organizer_emails"`

	Email   string    `bun:"email,pk"`
	AddedAt time.Time `bun:"added_at,notnull"`
}

type Store struct {
	db     *bun.DB
	logger *logger.Logger
}

// Open opens (or creates) the SQLite file at path. Use
// "file::memory:?cache=shared" in tests.
func Open(path string, log *logger.Logger) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.NewCreateTable().Model((*OrganizerEmail)(nil)).IfNotExists().Exec(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create organizer_emails table: %w", err)
	}

	return &Store{db: db, logger: log}, nil
}

// Remember records an email confirmed as an organizer by the backend.
func (s *Store) Remember(ctx context.Context, email string) error {
	entry := &OrganizerEmail{Email: email, AddedAt: time.Now()}
	_, err := s.db.NewInsert().
		Model(entry).
		On("CONFLICT (email) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remember organizer email: %w", err)
	}
	return nil
}

// Known reports whether the email was previously confirmed.
func (s *Store) Known(ctx context.Context, email string) (bool, error) {
	count, err := s.db.NewSelect().
		Model((*OrganizerEmail)(nil)).
		Where("email = ?", email).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to query organizer emails: %w", err)
	}
	return count > 0, nil
}

// Emails lists every remembered organizer email.
func (s *Store) Emails(ctx context.Context) ([]string, error) {
	var entries []OrganizerEmail
	if err := s.db.NewSelect().Model(&entries).Order("added_at").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list organizer emails: %w", err)
	}
	emails := make([]string, 0, len(entries))
	for _, entry := range entries {
		emails = append(emails, entry.Email)
	}
	return emails, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
