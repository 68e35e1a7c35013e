package telegram

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/photobot/core/logger"
	"github.com/m3rciful/photobot/core/telegram/commands"
)

// Registry holds bot commands and the handler for any other text.
type Registry struct {
	commands     map[string]commands.Command
	textFallback tele.HandlerFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]commands.Command)}
}

func wireWarn(event, name, reason string) {
	logger.LogEvent(context.Background(), logger.TWire, slog.LevelWarn, event,
		slog.String("status", "skip"),
		slog.String("cause", reason),
		slog.String("payload", name),
	)
}

// RegisterCommand adds cmd under name, which must start with a slash.
// Invalid and duplicate registrations are logged and ignored.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	switch {
	case name == "" || cmd.Handler == nil || cmd.Description == "":
		wireWarn("register.command.skip", name, "invalid")
		return
	case name[0] != '/':
		wireWarn("register.command.skip", name, "no_slash_prefix")
		return
	}
	if _, exists := r.commands[name]; exists {
		wireWarn("register.command.duplicate", name, "duplicate")
		return
	}
	r.commands[name] = cmd
}

// ListCommands returns the commands sorted by name, optionally without the
// hidden ones.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	var list []tele.Command
	for name, meta := range r.commands {
		if visibleOnly && meta.Hidden {
			continue
		}
		list = append(list, tele.Command{Text: strings.TrimPrefix(name, "/"), Description: meta.Description})
	}
	slices.SortFunc(list, func(a, b tele.Command) int { return strings.Compare(a.Text, b.Text) })
	return list
}

// LookupCommand resolves text to a registered command. It accepts "/cmd",
// "/cmd@bot", "/cmd args" and exact aliases.
func (r *Registry) LookupCommand(text string) (string, commands.Command, bool) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		name, _, _ := strings.Cut(text, " ")
		name, _, _ = strings.Cut(name, "@")
		if cmd, ok := r.commands[name]; ok {
			return name, cmd, true
		}
		return "", commands.Command{}, false
	}
	for name, cmd := range r.commands {
		if slices.Contains(cmd.Aliases, text) {
			return name, cmd, true
		}
	}
	return "", commands.Command{}, false
}

// Commands returns all registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	return r.commands
}

// SetTextFallback sets the handler for text that is not a command.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.textFallback = h
}

// TextFallback returns the handler for text that is not a command.
func (r *Registry) TextFallback() tele.HandlerFunc {
	return r.textFallback
}

// SetupCommands publishes the visible commands to the Telegram menu.
func SetupCommands(bot *tele.Bot, reg *Registry) {
	list := reg.ListCommands(true)
	if err := bot.SetCommands(list); err != nil {
		logger.LogEvent(context.Background(), logger.TWire, slog.LevelError, "register.commands",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.LogEvent(context.Background(), logger.TWire, slog.LevelDebug, "register.commands",
		slog.String("status", "ok"),
		slog.Int("count", len(list)),
	)
}
