package database

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"campusboard/internal/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestQueryOperation(t *testing.T) {
	cases := map[string]string{
		`SELECT * FROM "posts"`:          "SELECT",
		`insert into reports values (1)`: "INSERT",
		`  UPDATE posts SET x = 1`:       "UPDATE",
		"":                               "OTHER",
	}
	for sql, want := range cases {
		assert.Equal(t, want, queryOperation(sql), "sql: %q", sql)
	}
}

func TestTraceObservesQueryDuration(t *testing.T) {
	l := &CustomGormLogger{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: logger.Config{LogLevel: logger.Warn},
	}

	before := testutil.CollectAndCount(observability.DBQueryDuration)
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return `VACUUM "posts"`, 0
	}, nil)
	after := testutil.CollectAndCount(observability.DBQueryDuration)

	require.Greater(t, after, before, "query latency must land in the histogram")
}
