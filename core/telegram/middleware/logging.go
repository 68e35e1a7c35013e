package middleware

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/photobot/core/logger"
	tghelpers "github.com/m3rciful/photobot/core/telegram/helpers"
)

// StartKey holds the time the update entered the middleware chain.
const StartKey = "update_start"

// Redactor rewrites user text before it is logged.
type Redactor func(string) string

// UpdateLogger sets the RID and the logging context for the update and, for
// a sampled share of updates, logs one update.received line. Text passes
// through redact when it is set.
func UpdateLogger(redact Redactor) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			upd := c.Update()
			var chatID, userID int64
			chat, user := c.Chat(), c.Sender()
			if chat != nil {
				chatID = chat.ID
			}
			if user != nil {
				userID = user.ID
			}

			rid := logger.BuildRID(upd.ID, chatID, userID)
			c.Set(tghelpers.RIDKey, rid)
			c.Set(StartKey, time.Now())

			ctx := logger.WithRID(context.Background(), rid)
			ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
			ctx = logger.WithLogger(ctx, logger.Component("tg"))
			tghelpers.StoreContext(c, ctx)

			if logger.ShouldSampleDebug() {
				logger.LogEvent(ctx, logger.Component("tg"), slog.LevelDebug, "update.received",
					receivedAttrs(c, redact)...)
			}
			return next(c)
		}
	}
}

func receivedAttrs(c tele.Context, redact Redactor) []slog.Attr {
	attrs := []slog.Attr{slog.String("status", "ok"), slog.String("op", UpdateKind(c))}
	if chat := c.Chat(); chat != nil {
		attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
	}
	if user := c.Sender(); user != nil {
		if user.Username != "" {
			attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
		}
		if user.LanguageCode != "" {
			attrs = append(attrs, slog.String("lang", user.LanguageCode))
		}
	}
	if text := c.Text(); text != "" {
		if redact != nil {
			text = redact(text)
		}
		attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(text, 256)))
	}
	return attrs
}

// UpdateKind names the update for logging and rate limit exclusions:
// "contact", "message" or "other".
func UpdateKind(c tele.Context) string {
	msg := c.Message()
	switch {
	case msg == nil:
		return "other"
	case msg.Contact != nil:
		return "contact"
	}
	return "message"
}
