// Package bot adapts the dialogue engine to Telegram.
package bot

import (
	"context"

	tele "gopkg.in/telebot.v4"

	coretelegram "github.com/m3rciful/photobot/core/telegram"
	"github.com/m3rciful/photobot/core/telegram/commands"
	tghelpers "github.com/m3rciful/photobot/core/telegram/helpers"
	"github.com/m3rciful/photobot/core/telegram/keyboard"
	"github.com/m3rciful/photobot/core/telegram/router"
	"github.com/m3rciful/photobot/internal/config"
	"github.com/m3rciful/photobot/internal/dialogue"
	"github.com/m3rciful/photobot/internal/phone"
)

// Engine is the part of the dialogue engine the bot drives.
type Engine interface {
	Handle(ctx context.Context, in dialogue.Inbound) (dialogue.Reply, error)
	Start(ctx context.Context, in dialogue.Inbound) dialogue.Reply
	Edit(ctx context.Context, in dialogue.Inbound) (dialogue.Reply, error)
}

// App is a bootstrapped bot ready to run.
type App struct {
	cfg    *config.Config
	engine Engine
	close  func() error
}

// New builds the app. closeFn releases the storage and may be nil.
func New(cfg *config.Config, engine Engine, closeFn func() error) *App {
	return &App{cfg: cfg, engine: engine, close: closeFn}
}

// Close releases backend resources.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// TelegramRunOptions registers the commands, routes and middlewares.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	reg.RegisterCommand(dialogue.StartCommand, commands.Command{
		Description: "Сохранить номер телефона",
		Aliases:     []string{dialogue.StartButton},
		Handler:     a.onStart,
	})
	reg.RegisterCommand(dialogue.EditCommand, commands.Command{
		Description: "Изменить комментарий",
		Aliases:     []string{dialogue.EditButton},
		Handler:     a.onEdit,
	})
	reg.SetTextFallback(a.onMessage)

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{Contact: a.onMessage})...)

	return coretelegram.RunOptions{
		Config:   a.cfg.CoreConfig(),
		Registry: reg,
		Routes:   routes,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), coretelegram.MiddlewareOptions{
			Redact: phone.Redact,
		}),
	}, nil
}

func (a *App) onStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return send(c, a.engine.Start(ctx, inbound(c)), nil)
}

func (a *App) onEdit(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	reply, err := a.engine.Edit(ctx, inbound(c))
	return send(c, reply, err)
}

// onMessage serves free text and shared contacts alike.
func (a *App) onMessage(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	reply, err := a.engine.Handle(ctx, inbound(c))
	return send(c, reply, err)
}

func inbound(c tele.Context) dialogue.Inbound {
	in := dialogue.Inbound{Text: c.Text()}
	if u := c.Sender(); u != nil {
		in.UserID = u.ID
		in.Handle = u.Username
	}
	if m := c.Message(); m != nil && m.Contact != nil {
		in.ContactPhone = m.Contact.PhoneNumber
	}
	return in
}

// send delivers reply and reports the engine error first, since a store
// failure matters more than a failed "try again" message.
func send(c tele.Context, reply dialogue.Reply, engineErr error) error {
	var sendErr error
	if reply.Text != "" {
		sendErr = tghelpers.SendText(c, reply.Text, Markup(reply.Keyboard))
	}
	if engineErr != nil {
		return engineErr
	}
	return sendErr
}

// Markup renders a dialogue keyboard as a Telegram reply markup.
func Markup(kb *dialogue.Keyboard) *tele.ReplyMarkup {
	switch {
	case kb == nil:
		return nil
	case kb.Remove:
		return keyboard.RemoveKeyboard()
	case kb.RequestContact && len(kb.Rows) > 0 && len(kb.Rows[0]) > 0:
		return keyboard.ContactButton(kb.Rows[0][0])
	}
	m := keyboard.ReplyButtons(kb.Rows...)
	if kb.OneTime {
		m = keyboard.OneTime(m)
	}
	return m
}
