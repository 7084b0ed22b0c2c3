// Package botparam stores the small runtime settings of the bot, one row per
// (module, key) pair. Values are read from storage on every use.
package botparam

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"iidxbot/internal/apperr"
	"iidxbot/internal/assert"
	"iidxbot/internal/db"
	"iidxbot/internal/telemetry"
)

const (
	report_db_query = "db.query"
	report_make_tx  = "make-tx"
)

const (
	ModuleOnMessage = "on_message"

	KeyCommentVolume      = "iidx_result_comment_volume"
	KeyFollowSuitLastSent = "follow_suit_last_sent_msg"
)

type Store struct {
	db     db.DBTX
	makeTx db.MakeTx
	tel    telemetry.API
}

func NewStore(database *sql.DB, tel telemetry.API) Store {
	assert.NotNil(database)
	assert.NotNil(tel)

	return Store{
		db:     database,
		makeTx: db.NewMakeTx(database),
		tel:    telemetry.NewScopedAPI("botparam", tel),
	}
}

func get(ctx context.Context, q db.DBTX, module, key string) (string, error) {
	var value string
	err := q.QueryRowContext(
		ctx,
		"SELECT value FROM bot_param WHERE module = ? AND key = ?",
		module, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func set(ctx context.Context, q db.DBTX, module, key, value string) error {
	_, err := q.ExecContext(
		ctx,
		"INSERT INTO bot_param (module, key, value) VALUES (?, ?, ?) "+
			"ON CONFLICT (module, key) DO UPDATE SET value = excluded.value",
		module, key, value,
	)
	return err
}

// Get returns the value of a parameter, an unset parameter is empty.
func (s Store) Get(ctx context.Context, module, key string) (string, error) {
	value, err := get(ctx, s.db, module, key)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "Get", module, key)
		return "", fmt.Errorf("%w: read %s.%s", apperr.ErrCatalog, module, key)
	}
	return value, nil
}

func (s Store) Set(ctx context.Context, module, key, value string) error {
	err := set(ctx, s.db, module, key, value)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "Set", module, key)
		return fmt.Errorf("%w: write %s.%s", apperr.ErrCatalog, module, key)
	}
	return nil
}

// Swap sets a parameter and returns its previous value, in one transaction.
func (s Store) Swap(ctx context.Context, module, key, value string) (string, error) {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		s.tel.ReportBroken(report_make_tx, err)
		return "", fmt.Errorf("%w: begin swap of %s.%s", apperr.ErrCatalog, module, key)
	}
	defer discard()

	previous, err := get(ctx, tx, module, key)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "Swap.Get", module, key)
		return "", fmt.Errorf("%w: read %s.%s", apperr.ErrCatalog, module, key)
	}
	err = set(ctx, tx, module, key, value)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "Swap.Set", module, key)
		return "", fmt.Errorf("%w: write %s.%s", apperr.ErrCatalog, module, key)
	}

	err = commit()
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "Swap.Commit", module, key)
		return "", fmt.Errorf("%w: commit swap of %s.%s", apperr.ErrCatalog, module, key)
	}
	return previous, nil
}

// Volume returns how often the bot comments on play results, out of the
// configured upper bound.
func (s Store) Volume(ctx context.Context) (int, error) {
	raw, err := s.Get(ctx, ModuleOnMessage, KeyCommentVolume)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	volume, err := strconv.Atoi(raw)
	if err != nil {
		s.tel.ReportBroken(report_db_query, fmt.Errorf("stored volume %q: %w", raw, err))
		return 0, fmt.Errorf("%w: stored volume is not a number", apperr.ErrCatalog)
	}
	return volume, nil
}

func (s Store) SetVolume(ctx context.Context, volume int) error {
	return s.Set(ctx, ModuleOnMessage, KeyCommentVolume, strconv.Itoa(volume))
}
