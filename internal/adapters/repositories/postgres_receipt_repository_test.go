package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"campus-market-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeeds(t *testing.T) {
	raw := []byte(`[
		{"id":"6f1c2f9e-8a7b-4a53-9d6e-2c1b8f0d4e11","email":" Ada@Stanford.edu ","market_id":"m1","side":"YES","stake":25,"remote_trade_id":"t-1","placed_at":"2026-10-21T10:00:00-07:00"},
		{"email":"grace@mit.edu","market_id":"m2","side":"no","stake":5,"placed_at":"2026-10-22T09:00:00Z"}
	]`)

	got, err := parseSeeds(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "6f1c2f9e-8a7b-4a53-9d6e-2c1b8f0d4e11", got[0].ID)
	assert.Equal(t, "ada@stanford.edu", got[0].Email)
	assert.Equal(t, domain.SideYes, got[0].Side)
	assert.Equal(t, time.Date(2026, 10, 21, 17, 0, 0, 0, time.UTC), got[0].PlacedAt)

	assert.Len(t, got[1].ID, 36)
	assert.Equal(t, domain.SideNo, got[1].Side)
}

func TestParseSeedsRejectsBadItems(t *testing.T) {
	tests := map[string]string{
		"bad json":   `{`,
		"bad id":     `[{"id":"nope","email":"a@b.edu","market_id":"m","side":"yes","stake":1,"placed_at":"2026-10-21T10:00:00Z"}]`,
		"bad email":  `[{"email":"nope","market_id":"m","side":"yes","stake":1,"placed_at":"2026-10-21T10:00:00Z"}]`,
		"no market":  `[{"email":"a@b.edu","market_id":" ","side":"yes","stake":1,"placed_at":"2026-10-21T10:00:00Z"}]`,
		"bad side":   `[{"email":"a@b.edu","market_id":"m","side":"maybe","stake":1,"placed_at":"2026-10-21T10:00:00Z"}]`,
		"zero stake": `[{"email":"a@b.edu","market_id":"m","side":"yes","stake":0,"placed_at":"2026-10-21T10:00:00Z"}]`,
		"no time":    `[{"email":"a@b.edu","market_id":"m","side":"yes","stake":1}]`,
	}

	for name, raw := range tests {
		_, err := parseSeeds([]byte(raw))
		assert.Error(t, err, name)
	}
}

func TestNilDB(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresReceiptRepository(nil)

	assert.Error(t, repo.SaveReceipt(ctx, &domain.TradeReceipt{}))
	_, err := repo.ListReceipts(ctx, "a@b.edu", 10)
	assert.Error(t, err)

	assert.Error(t, InitSchema(ctx, nil))
	assert.Error(t, SeedFromJSON(ctx, nil, "seed.json"))
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestPostgresReceiptRepository(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db := openTestDB(t, url)
	require.NoError(t, InitSchema(ctx, db))

	_, err := db.ExecContext(ctx, "DELETE FROM trade_receipts WHERE email = $1", "repo-test@campus.edu")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "receipts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"email":"repo-test@campus.edu","market_id":"m1","side":"yes","stake":10,"placed_at":"2026-10-20T10:00:00Z"}
	]`), 0o600))
	require.NoError(t, SeedFromJSON(ctx, db, path))

	repo := NewPostgresReceiptRepository(db)
	require.NoError(t, repo.SaveReceipt(ctx, &domain.TradeReceipt{
		ID:            "0b0e7c4e-2f4e-4a8a-9a53-5a3e9f0b6c21",
		Email:         "repo-test@campus.edu",
		MarketID:      "m2",
		Side:          domain.SideNo,
		Stake:         3,
		RemoteTradeID: "t-2",
		PlacedAt:      time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC),
	}))

	got, err := repo.ListReceipts(ctx, "repo-test@campus.edu", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m2", got[0].MarketID)
	assert.Equal(t, "m1", got[1].MarketID)

	got, err = repo.ListReceipts(ctx, "repo-test@campus.edu", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
