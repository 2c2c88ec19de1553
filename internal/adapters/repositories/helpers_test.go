package repositories

import (
	"context"
	"database/sql"
	"testing"

	"campus-market-service/internal/platform/db"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, url string) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}
