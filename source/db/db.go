// Package db provides a PostgreSQL message source over pgx. Translations
// live in a single table keyed by (category, message_key, language); the
// schema ships as an embedded goose migration.
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"

	"github.com/pgwireless/i18n"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Querier is the subset of pgxpool.Pool the source needs, kept narrow so
// tests can substitute a fake.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Source reads translations from the i18n_messages table.
type Source struct {
	q              Querier
	sourceLanguage string
	log            *slog.Logger
}

// Option configures the Source.
type Option func(*Source)

// WithLogger sets a logger for query failures, which are otherwise silent
// misses.
func WithLogger(log *slog.Logger) Option {
	return func(s *Source) {
		s.log = log
	}
}

// New creates a Source reading through q, typically a *pgxpool.Pool.
func New(q Querier, sourceLanguage string, opts ...Option) (*Source, error) {
	if q == nil {
		return nil, fmt.Errorf("db source requires a querier")
	}
	if sourceLanguage == "" {
		sourceLanguage = i18n.DefaultLanguage
	}
	s := &Source{
		q:              q,
		sourceLanguage: sourceLanguage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

const selectTranslation = `SELECT translation FROM i18n_messages WHERE category = $1 AND message_key = $2 AND language = $3`

// Translate implements i18n.Source. A missing row is a miss; a query
// failure is also reported as a miss so rendering degrades instead of
// breaking, with the failure logged when a logger is configured.
func (s *Source) Translate(ctx context.Context, category, key, language string) (string, bool) {
	var translation string
	err := s.q.QueryRow(ctx, selectTranslation, category, key, language).Scan(&translation)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) && s.log != nil {
			s.log.Error("translation query failed",
				slog.String("category", category),
				slog.String("key", key),
				slog.String("language", language),
				slog.Any("error", err),
			)
		}
		return "", false
	}
	return translation, true
}

// SourceLanguage implements i18n.Source.
func (s *Source) SourceLanguage() string {
	return s.sourceLanguage
}

// Migrate applies the embedded schema migrations. The caller supplies a
// database/sql handle (for pgx, via the stdlib adapter) because goose
// drives migrations through database/sql.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
