package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgwireless/i18n/source/db"
)

// fakeRow satisfies pgx.Row with a canned value or error.
type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

// fakeQuerier records the last query and serves rows from a table keyed by
// "category/key/language".
type fakeQuerier struct {
	rows     map[string]string
	queryErr error
	lastSQL  string
	lastArgs []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	q.lastArgs = args
	if q.queryErr != nil {
		return fakeRow{err: q.queryErr}
	}
	rowKey := args[0].(string) + "/" + args[1].(string) + "/" + args[2].(string)
	value, ok := q.rows[rowKey]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: value}
}

func TestSource(t *testing.T) {
	ctx := context.Background()

	t.Run("translates existing rows", func(t *testing.T) {
		q := &fakeQuerier{rows: map[string]string{"app/welcome/es": "Bienvenido"}}
		src, err := db.New(q, "en")
		require.NoError(t, err)

		msg, ok := src.Translate(ctx, "app", "welcome", "es")
		require.True(t, ok)
		assert.Equal(t, "Bienvenido", msg)
		assert.Equal(t, []any{"app", "welcome", "es"}, q.lastArgs)
		assert.Contains(t, q.lastSQL, "i18n_messages")
	})

	t.Run("no rows is a miss", func(t *testing.T) {
		src, err := db.New(&fakeQuerier{rows: map[string]string{}}, "en")
		require.NoError(t, err)

		_, ok := src.Translate(ctx, "app", "welcome", "es")
		assert.False(t, ok)
	})

	t.Run("query failure is a miss", func(t *testing.T) {
		q := &fakeQuerier{queryErr: errors.New("connection reset")}
		src, err := db.New(q, "en")
		require.NoError(t, err)

		_, ok := src.Translate(ctx, "app", "welcome", "es")
		assert.False(t, ok)
	})

	t.Run("requires a querier", func(t *testing.T) {
		_, err := db.New(nil, "en")
		assert.Error(t, err)
	})

	t.Run("empty source language defaults to en", func(t *testing.T) {
		src, err := db.New(&fakeQuerier{}, "")
		require.NoError(t, err)
		assert.Equal(t, "en", src.SourceLanguage())
	})
}
