package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("loud")
	assert.Error(t, err)
}

func TestTimeLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	ctx := WithRequestID(context.Background(), "req-1")

	func() (err error) {
		defer Time(ctx, logger, "test.ok")(&err)
		return nil
	}()

	func() (err error) {
		defer Time(ctx, logger, "test.fail")(&err)
		return errors.New("boom")
	}()

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "test.ok", entries[0].ContextMap()["op"])
	assert.Equal(t, "req-1", entries[0].ContextMap()["req_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestStreamOpened(t *testing.T) {
	before := testutil.ToFloat64(countdownStreams)

	done := StreamOpened()
	assert.Equal(t, before+1, testutil.ToFloat64(countdownStreams))

	done()
	assert.Equal(t, before, testutil.ToFloat64(countdownStreams))
}

func TestCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(cacheLookups.WithLabelValues("markets", "hit"))
	CacheLookup("markets", true)
	assert.Equal(t, hits+1, testutil.ToFloat64(cacheLookups.WithLabelValues("markets", "hit")))
}
