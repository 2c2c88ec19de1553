package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardServiceList(t *testing.T) {
	api := newTestAPI(t)
	svc := NewLeaderboardService(api)

	entries, err := svc.List(context.Background(), "ada-token", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Grace", entries[0].Name)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Ada", entries[1].Name)
	assert.Equal(t, 2, entries[1].Rank)

	top, err := svc.List(context.Background(), "ada-token", 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}
