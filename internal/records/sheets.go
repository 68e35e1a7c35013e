package records

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3rciful/photobot/core/logger"
	"github.com/m3rciful/photobot/internal/phone"
)

const sheetsComponent = "store.sheets"

// Grid is the cell-level view of one worksheet. Rows and columns are 1-based.
type Grid interface {
	Column(ctx context.Context, col int) ([]string, error)
	Cell(ctx context.Context, row int64, col int) (string, error)
	AppendRow(ctx context.Context, values []string) error
	SetCell(ctx context.Context, row int64, col int, value string) error
}

// Sheets implements Store on top of a spreadsheet worksheet. Each operation
// re-reads the columns it needs; nothing is cached between calls.
type Sheets struct {
	grid  Grid
	clock Clock
}

// NewSheets wraps grid. A nil clock uses time.Now.
func NewSheets(grid Grid, clock Clock) *Sheets {
	return &Sheets{grid: grid, clock: clock}
}

// Exists reports whether the phone column holds exactly this value.
func (s *Sheets) Exists(ctx context.Context, p string) (bool, error) {
	start := time.Now()
	phones, err := s.grid.Column(ctx, ColPhone)
	s.observe(ctx, "exists", start, err, slog.String("phone", phone.Mask(p)))
	if err != nil {
		return false, fmt.Errorf("sheets exists: %w", err)
	}
	for _, v := range phones {
		if v == p {
			return true, nil
		}
	}
	return false, nil
}

// FindRow scans the phone column top to bottom and returns the first match.
func (s *Sheets) FindRow(ctx context.Context, p string) (int64, error) {
	start := time.Now()
	phones, err := s.grid.Column(ctx, ColPhone)
	s.observe(ctx, "find_row", start, err, slog.String("phone", phone.Mask(p)))
	if err != nil {
		return 0, fmt.Errorf("sheets find row: %w", err)
	}
	for i, v := range phones {
		if v == p {
			return int64(i + 1), nil
		}
	}
	return 0, ErrNotFound
}

// ListPhonesForOwner walks the owner and phone columns in lock-step.
func (s *Sheets) ListPhonesForOwner(ctx context.Context, ownerID string) ([]string, error) {
	start := time.Now()
	owners, err := s.grid.Column(ctx, ColOwnerID)
	if err != nil {
		s.observe(ctx, "list_owner", start, err)
		return nil, fmt.Errorf("sheets list owner column: %w", err)
	}
	phones, err := s.grid.Column(ctx, ColPhone)
	if err != nil {
		s.observe(ctx, "list_owner", start, err)
		return nil, fmt.Errorf("sheets list phone column: %w", err)
	}

	n := len(owners)
	if len(phones) < n {
		n = len(phones)
	}
	var out []string
	for i := 0; i < n; i++ {
		if owners[i] == ownerID {
			out = append(out, phones[i])
		}
	}
	s.observe(ctx, "list_owner", start, nil, slog.Int("count", len(out)))
	return out, nil
}

// Append writes a new row with the current timestamp and an empty comment.
func (s *Sheets) Append(ctx context.Context, rec Record) error {
	start := time.Now()
	row := []string{
		rec.Phone,
		rec.OwnerID,
		rec.OwnerHandle,
		s.clock.now().Format(TimeLayout),
		"",
	}
	err := s.grid.AppendRow(ctx, row)
	s.observe(ctx, "append", start, err, slog.String("phone", phone.Mask(rec.Phone)))
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	return nil
}

// UpdateComment overwrites the comment cell of row.
func (s *Sheets) UpdateComment(ctx context.Context, row int64, text string) error {
	if row < 1 {
		return ErrNotFound
	}
	start := time.Now()
	err := s.grid.SetCell(ctx, row, ColComment, text)
	s.observe(ctx, "update_comment", start, err, slog.Int64("row", row))
	if err != nil {
		return fmt.Errorf("sheets update comment: %w", err)
	}
	return nil
}

// GetComment reads the comment cell of row; an unset cell yields "".
func (s *Sheets) GetComment(ctx context.Context, row int64) (string, error) {
	if row < 1 {
		return "", ErrNotFound
	}
	start := time.Now()
	v, err := s.grid.Cell(ctx, row, ColComment)
	s.observe(ctx, "get_comment", start, err, slog.Int64("row", row))
	if err != nil {
		return "", fmt.Errorf("sheets get comment: %w", err)
	}
	return v, nil
}

// EnsureHeader writes Header into row 1 when the phone column is empty.
func (s *Sheets) EnsureHeader(ctx context.Context) error {
	phones, err := s.grid.Column(ctx, ColPhone)
	if err != nil {
		return fmt.Errorf("sheets header probe: %w", err)
	}
	if len(phones) > 0 {
		logger.Debug(ctx, sheetsComponent, "header.skip",
			slog.String("status", "skip"),
			slog.Int("rows", len(phones)),
		)
		return nil
	}
	if err := s.grid.AppendRow(ctx, Header); err != nil {
		return fmt.Errorf("sheets header write: %w", err)
	}
	logger.Info(ctx, sheetsComponent, "header.written", slog.String("status", "ok"))
	return nil
}

func (s *Sheets) observe(ctx context.Context, op string, start time.Time, err error, extra ...slog.Attr) {
	attrs := []slog.Attr{
		slog.String("op", op),
		slog.Duration("duration", logger.Took(start)),
	}
	attrs = append(attrs, extra...)
	if err != nil {
		attrs = append(attrs, slog.String("status", "fail"), slog.String("err", err.Error()))
		logger.Warn(ctx, sheetsComponent, "sheets.call", attrs...)
		return
	}
	attrs = append(attrs, slog.String("status", "ok"))
	logger.Debug(ctx, sheetsComponent, "sheets.call", attrs...)
}
