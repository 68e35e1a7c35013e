package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, format logFormat, ctx context.Context, component string, level slog.Level, event string, attrs ...slog.Attr) string {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{
		level:    slog.LevelDebug,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	LogEvent(ctx, slog.New(h).With("component", component), level, event, attrs...)
	require.NoError(t, aw.Flush())
	require.NoError(t, aw.Close())
	return strings.TrimSpace(buf.String())
}

func TestKVLineStartsWithFixedKeys(t *testing.T) {
	ctx := WithUpdateMeta(WithRID(context.Background(), "rid-123"), 42, 7, 9)
	line := render(t, formatKV, ctx, "dialogue", slog.LevelInfo, "comment.saved",
		slog.String("status", "OK"),
		slog.String("phone", "+7******4567"),
		slog.Int64("row", 3),
	)

	tokens := strings.Split(line, " ")
	want := []string{"ts=", "level=INFO", "component=dialogue", "event=comment.saved", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9"}
	require.GreaterOrEqual(t, len(tokens), len(want), line)
	for i, prefix := range want {
		assert.True(t, strings.HasPrefix(tokens[i], prefix), "token %d = %s, want prefix %s", i, tokens[i], prefix)
	}
	assert.Contains(t, line, "phone=+7******4567 row=3")
}

func TestJSONLineKeepsOrder(t *testing.T) {
	ctx := WithRID(context.Background(), "rid-json")
	line := render(t, formatJSON, ctx, "store.sheets", slog.LevelError, "sheets.append",
		slog.String("status", "fail"),
		slog.String("err", "boom"),
		slog.String("err_code", "GOOGLEAPI_ERROR"),
	)

	require.True(t, strings.HasPrefix(line, "{"), line)
	pos := -1
	for _, part := range []string{`{"ts":`, `"level":"ERROR"`, `"component":"store.sheets"`, `"event":"sheets.append"`, `"status":"fail"`, `"rid":"rid-json"`, `"err":"boom"`} {
		idx := strings.Index(line, part)
		require.Greater(t, idx, pos, "%s out of order in %s", part, line)
		pos = idx
	}
	assert.Contains(t, line, `"ts_unix_nano"`)
}

func TestCompactRID(t *testing.T) {
	assert.Equal(t, "3f.co.lx", CompactRID("123:456:789"))
	assert.Equal(t, "rid-1", CompactRID(" rid-1 "))
	assert.Equal(t, "a:b:c", CompactRID("a:b:c"))

	kv := render(t, formatKV, WithRID(context.Background(), "123:456:789"), "tg", slog.LevelInfo, "rid.test")
	assert.Contains(t, kv, "rid=3f.co.lx")
	assert.NotContains(t, kv, "rid_full=")

	js := render(t, formatJSON, WithRID(context.Background(), "12:34:56"), "tg", slog.LevelInfo, "rid.test")
	assert.Contains(t, js, `"rid":"`+CompactRID("12:34:56")+`"`)
	assert.Contains(t, js, `"rid_full":"12:34:56"`)
}

func TestAttributeNormalization(t *testing.T) {
	line := render(t, formatKV, context.Background(), "", slog.LevelWarn, "",
		slog.Duration("duration", 1499*time.Microsecond),
		slog.Duration("backoff", 2*time.Second),
		slog.Any("err", errors.New("sheet gone")),
		slog.String("empty", ""),
		slog.String("outcome", "weird"),
		slog.Group("req", slog.String("op", "append")),
	)
	assert.Contains(t, line, "component=app")
	assert.Contains(t, line, "event=unknown")
	assert.Contains(t, line, "duration_ms=1")
	assert.Contains(t, line, "backoff_ms=2000")
	assert.Contains(t, line, `err="sheet gone"`)
	assert.Contains(t, line, "req.op=append")
	assert.NotContains(t, line, "empty=")
	assert.NotContains(t, line, "outcome=")
}

func TestLevelFilter(t *testing.T) {
	h := newStructuredHandler(handlerConfig{level: slog.LevelWarn, writer: newAsyncWriter(nil, 0)})
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(2, 5)
	var passed int
	for range 10 {
		if s.Allow() {
			passed++
		}
	}
	assert.Equal(t, 4, passed)

	s.Set(0, 0)
	assert.True(t, s.Allow())

	num, den := parseRatioSpec("20")
	assert.Equal(t, [2]int{1, 20}, [2]int{num, den})
	num, den = parseRatioSpec("x/y")
	assert.Equal(t, [2]int{0, 0}, [2]int{num, den})
}

func TestHelpersWithoutInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info(context.Background(), "dialogue", "noop", slog.String("status", "ok"))
		LogEvent(context.Background(), nil, slog.LevelInfo, "noop")
	})
	assert.Equal(t, "", SanitizeLimit("abc", 0))
	assert.Equal(t, "ab", SanitizeLimit("a\x00b​c", 2))
}
