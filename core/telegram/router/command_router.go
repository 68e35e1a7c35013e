package router

import (
	"context"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/photobot/core/logger"
	tg "github.com/m3rciful/photobot/core/telegram"
)

// CommandRoutes binds every registered command to its slash endpoint.
// Aliases are resolved by TextRoutes.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}
	routes := make([]tg.Route, 0, len(reg.Commands()))
	for name, def := range reg.Commands() {
		handler, run := normalizeHandlerName(name), def.Handler
		routes = append(routes, tg.Route{
			Endpoint: name,
			Handler: func(c tele.Context) error {
				return handleWithSummary(c, handler, func() error { return run(c) })
			},
		})
	}
	logger.LogEvent(context.Background(), logger.TWire, slog.LevelInfo, "tg.wire",
		slog.String("status", "ok"),
		slog.Int("count", len(routes)),
	)
	return routes
}
