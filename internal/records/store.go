// Package records persists phone/comment rows in the shared table.
//
// Every backend keeps the same fixed column order: phone, owner id, owner
// handle, creation timestamp, comment. Rows are addressed by a 1-based index
// returned from FindRow. Operations are not isolated from each other: a row
// index obtained by FindRow may be stale by the time UpdateComment runs if the
// table is edited concurrently.
package records

import (
	"context"
	"errors"
	"time"
)

// Column positions in the external table, 1-based.
const (
	ColPhone = iota + 1
	ColOwnerID
	ColOwnerHandle
	ColCreatedAt
	ColComment
)

// TimeLayout is the creation timestamp format written to the table.
const TimeLayout = "2006-01-02 15:04:05"

var (
	// ErrNotFound reports a phone or row that is not present in the table.
	ErrNotFound = errors.New("records: not found")
	// ErrDuplicate reports an append that collided with an existing phone.
	ErrDuplicate = errors.New("records: duplicate phone")
)

// Header is the optional first row written into an empty table. Its phone cell
// can never equal a canonical phone, so scans from row 1 skip it naturally.
var Header = []string{"phone", "owner_id", "owner_handle", "created_at", "comment"}

// Record is a single row of the table.
type Record struct {
	Phone       string
	OwnerID     string
	OwnerHandle string
	CreatedAt   time.Time
	Comment     string
}

// Store is the narrow surface the dialogue needs from the table.
type Store interface {
	Exists(ctx context.Context, phone string) (bool, error)
	FindRow(ctx context.Context, phone string) (int64, error)
	ListPhonesForOwner(ctx context.Context, ownerID string) ([]string, error)
	Append(ctx context.Context, rec Record) error
	UpdateComment(ctx context.Context, row int64, text string) error
	GetComment(ctx context.Context, row int64) (string, error)
}

// Clock returns the current time; adapters stamp CreatedAt with it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().Truncate(time.Second)
	}
	return c().Truncate(time.Second)
}
