package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/photobot/core/telegram"
)

// TextOptions holds handlers for updates that are not commands.
type TextOptions struct {
	// Contact handles a shared contact card.
	Contact tele.HandlerFunc
}

// TextRoutes routes plain text to a command when it matches an alias and to
// the registry's text fallback otherwise, and shared contacts to
// opts.Contact. Unhandled updates are logged as skipped.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	text := func(c tele.Context) error {
		if reg != nil {
			if name, cmd, ok := reg.LookupCommand(c.Text()); ok {
				return handleWithSummary(c, normalizeHandlerName(name), func() error { return cmd.Handler(c) })
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "text", func() error { return fb(c) })
			}
		}
		logHandlerSummary(c, "text", time.Now(), "skip", nil)
		return nil
	}

	contact := func(c tele.Context) error {
		if opts.Contact == nil {
			logHandlerSummary(c, "contact", time.Now(), "skip", nil)
			return nil
		}
		return handleWithSummary(c, "contact", func() error { return opts.Contact(c) })
	}

	return []tg.Route{
		{Endpoint: tele.OnText, Handler: text},
		{Endpoint: tele.OnContact, Handler: contact},
	}
}
