package records

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresStore runs against a scratch database when PHOTOBOT_TEST_DSN is set.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("PHOTOBOT_TEST_DSN")
	if dsn == "" {
		t.Skip("PHOTOBOT_TEST_DSN not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../migrations/000001_contact_records.up.sql")
	require.NoError(t, err)

	reset := func() Store {
		_, err := db.Exec(`DROP TABLE IF EXISTS contact_records`)
		require.NoError(t, err)
		_, err = db.Exec(string(schema))
		require.NoError(t, err)
		return NewPostgres(db, fixedClock)
	}

	storeContract(t, reset)

	t.Run("duplicate phone", func(t *testing.T) {
		s := reset()
		ctx := context.Background()
		require.NoError(t, s.Append(ctx, Record{Phone: "+79991234567", OwnerID: "1"}))
		assert.ErrorIs(t, s.Append(ctx, Record{Phone: "+79991234567", OwnerID: "2"}), ErrDuplicate)
	})
}
