package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m3rciful/photobot/core/logger"
	"github.com/m3rciful/photobot/internal/phone"
)

const pgComponent = "store.pg"

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Postgres implements Store on the contact_records table. The serial id plays
// the role of the row index.
type Postgres struct {
	db    *sqlx.DB
	clock Clock
}

// NewPostgres wraps an open connection pool. A nil clock uses time.Now.
func NewPostgres(db *sqlx.DB, clock Clock) *Postgres {
	return &Postgres{db: db, clock: clock}
}

// Exists reports whether a row with exactly this phone is stored.
func (p *Postgres) Exists(ctx context.Context, ph string) (bool, error) {
	start := time.Now()
	var ok bool
	err := p.db.GetContext(ctx, &ok,
		`SELECT EXISTS (SELECT 1 FROM contact_records WHERE phone = $1)`, ph)
	p.observe(ctx, "exists", start, err, slog.String("phone", phone.Mask(ph)))
	if err != nil {
		return false, fmt.Errorf("pg exists: %w", err)
	}
	return ok, nil
}

// FindRow returns the id of the earliest row with this phone.
func (p *Postgres) FindRow(ctx context.Context, ph string) (int64, error) {
	start := time.Now()
	var id int64
	err := p.db.GetContext(ctx, &id,
		`SELECT id FROM contact_records WHERE phone = $1 ORDER BY id LIMIT 1`, ph)
	if errors.Is(err, sql.ErrNoRows) {
		p.observe(ctx, "find_row", start, nil, slog.String("phone", phone.Mask(ph)))
		return 0, ErrNotFound
	}
	p.observe(ctx, "find_row", start, err, slog.String("phone", phone.Mask(ph)))
	if err != nil {
		return 0, fmt.Errorf("pg find row: %w", err)
	}
	return id, nil
}

// ListPhonesForOwner returns the owner's phones in insertion order.
func (p *Postgres) ListPhonesForOwner(ctx context.Context, ownerID string) ([]string, error) {
	start := time.Now()
	var phones []string
	err := p.db.SelectContext(ctx, &phones,
		`SELECT phone FROM contact_records WHERE owner_id = $1 ORDER BY id`, ownerID)
	p.observe(ctx, "list_owner", start, err, slog.Int("count", len(phones)))
	if err != nil {
		return nil, fmt.Errorf("pg list owner: %w", err)
	}
	return phones, nil
}

// Append inserts a row with an empty comment. A phone collision maps to ErrDuplicate.
func (p *Postgres) Append(ctx context.Context, rec Record) error {
	start := time.Now()
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO contact_records (phone, owner_id, owner_handle, created_at, comment)
		 VALUES ($1, $2, $3, $4, '')`,
		rec.Phone, rec.OwnerID, rec.OwnerHandle, p.clock.now())
	p.observe(ctx, "append", start, err, slog.String("phone", phone.Mask(rec.Phone)))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("pg append: %w", err)
	}
	return nil
}

// UpdateComment overwrites the comment of row.
func (p *Postgres) UpdateComment(ctx context.Context, row int64, text string) error {
	start := time.Now()
	res, err := p.db.ExecContext(ctx,
		`UPDATE contact_records SET comment = $2 WHERE id = $1`, row, text)
	p.observe(ctx, "update_comment", start, err, slog.Int64("row", row))
	if err != nil {
		return fmt.Errorf("pg update comment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetComment reads the comment of row.
func (p *Postgres) GetComment(ctx context.Context, row int64) (string, error) {
	start := time.Now()
	var comment string
	err := p.db.GetContext(ctx, &comment,
		`SELECT comment FROM contact_records WHERE id = $1`, row)
	if errors.Is(err, sql.ErrNoRows) {
		p.observe(ctx, "get_comment", start, nil, slog.Int64("row", row))
		return "", ErrNotFound
	}
	p.observe(ctx, "get_comment", start, err, slog.Int64("row", row))
	if err != nil {
		return "", fmt.Errorf("pg get comment: %w", err)
	}
	return comment, nil
}

func (p *Postgres) observe(ctx context.Context, op string, start time.Time, err error, extra ...slog.Attr) {
	attrs := append([]slog.Attr{
		slog.String("op", op),
		slog.Duration("duration", logger.Took(start)),
	}, extra...)
	if err != nil {
		attrs = append(attrs, slog.String("status", "fail"), slog.String("err", err.Error()))
		logger.Warn(ctx, pgComponent, "db.query", attrs...)
		return
	}
	attrs = append(attrs, slog.String("status", "ok"))
	logger.Debug(ctx, pgComponent, "db.query", attrs...)
}
