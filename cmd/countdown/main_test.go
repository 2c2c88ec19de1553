package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"campus-market-service/internal/domain"
	"campus-market-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, ctx context.Context, clock services.Clock, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(clock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestCountdownOnce(t *testing.T) {
	loc, err := time.LoadLocation(domain.DefaultZone)
	require.NoError(t, err)
	now := services.ClockFunc(func() time.Time { return time.Date(2026, 10, 21, 10, 0, 0, 0, loc) })

	out, err := runCmd(t, context.Background(), now, "--once", "--zone", domain.DefaultZone)
	require.NoError(t, err)
	assert.Equal(t, "Fri Oct 23, 5:00 PM PDT  2d 07h 00m 00s\n", out)

	out, err = runCmd(t, context.Background(), now, "--once", "--zone", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "Fri Oct 23, 5:00 PM EDT  2d 04h 00m 00s\n", out)
}

func TestCountdownBadZone(t *testing.T) {
	_, err := runCmd(t, context.Background(), services.SystemClock{}, "--once", "--zone", "Mars/Olympus_Mons")
	assert.ErrorIs(t, err, domain.ErrZoneUnavailable)
}

func TestCountdownStreamsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	out, err := runCmd(t, ctx, services.SystemClock{}, "--interval", "5ms", "--zone", "UTC")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 2)
}
