package router

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/photobot/core/logger"
	tghelpers "github.com/m3rciful/photobot/core/telegram/helpers"
	"github.com/m3rciful/photobot/core/telegram/middleware"
)

// handleWithSummary runs fn and logs one handler.handled line for it.
func handleWithSummary(c tele.Context, handler string, fn func() error) error {
	start, ok := c.Get(middleware.StartKey).(time.Time)
	if !ok {
		start = time.Now()
	}
	tghelpers.WithHandler(c, handler)
	err := fn()
	logHandlerSummary(c, handler, start, "", err)
	return err
}

func logHandlerSummary(c tele.Context, handler string, start time.Time, status string, err error) {
	ctx := tghelpers.WithHandler(c, handler)
	msgs, kb := middleware.GetCounters(c)

	outcome := logger.Status(err)
	if status == "" {
		status = outcome
	}
	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("outcome", outcome),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("duration", logger.Took(start)),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", errorCode(err)),
		)
	}
	logger.LogEvent(ctx, logger.Component("tg"), slog.LevelInfo, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "/")))
	if name == "" {
		return "unknown"
	}
	return strings.ReplaceAll(name, " ", "_")
}

// errorCode names the error: a Code() found in the chain, else the type
// name of the innermost error in upper case.
func errorCode(err error) string {
	type coder interface{ Code() string }
	var c coder
	if errors.As(err, &c) {
		if code := strings.TrimSpace(c.Code()); code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}
	inner := err
	for u := errors.Unwrap(inner); u != nil; u = errors.Unwrap(inner) {
		inner = u
	}
	t := reflect.TypeOf(inner)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "UNKNOWN_ERROR"
	}
	return strings.ToUpper(t.Name())
}
