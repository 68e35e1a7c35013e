package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/photobot/core/logger"
	"github.com/m3rciful/photobot/core/telegram/sender"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher installs the dispatcher used by the send helpers; nil sends
// directly.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

// send runs the call through the dispatcher and waits for it, so replies
// keep their order and the caller sees the final error. A saturated or
// closed queue degrades to a direct call.
func send(c tele.Context, action, endpoint string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}
	ctx := BuildContext(c)
	err := disp.Do(ctx, action, endpoint, run)
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, "tg.sender", "queue.fallback",
			slog.String("op", action),
			slog.String("err", err.Error()),
		)
		return run()
	}
	return err
}

// SendText sends plain text (no parse mode) with an optional reply markup.
// A nil markup leaves the user's current keyboard in place.
func SendText(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	return send(c, "send.text", "sendMessage", func() error {
		if markup != nil {
			return c.Send(text, &tele.SendOptions{ReplyMarkup: markup})
		}
		return c.Send(text)
	})
}
