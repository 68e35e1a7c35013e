package telegram

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/photobot/core/config"
	"github.com/m3rciful/photobot/core/telegram/middleware"
)

// MiddlewareOptions tunes DefaultMiddlewares.
type MiddlewareOptions struct {
	// OnLimited answers a rate-limited update.
	OnLimited tele.HandlerFunc
	// Redact rewrites user text before it reaches the logs.
	Redact middleware.Redactor
}

// DefaultMiddlewares builds the chain shared by all handlers: recover, an
// optional per-user rate limit, the update logger and message metrics.
func DefaultMiddlewares(cfg *coreconfig.Config, opts MiddlewareOptions) []Middleware {
	mws := []Middleware{{Name: "recover", Use: middleware.RecoverMiddleware}}

	if cfg != nil && cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, kind := range cfg.RateLimit.ExcludeUpdates {
			exclude[strings.ToLower(kind)] = struct{}{}
		}
		mws = append(mws, Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval:  time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:   exclude,
				OnLimited: opts.OnLimited,
			}),
		})
	}

	return append(mws,
		Middleware{Name: "logger", Use: middleware.UpdateLogger(opts.Redact)},
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)
}
