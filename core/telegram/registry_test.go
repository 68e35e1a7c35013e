package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/photobot/core/telegram/commands"
)

func noop(tele.Context) error { return nil }

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "start", Aliases: []string{"📥 Старт"}})
	reg.RegisterCommand("/edit", commands.Command{Handler: noop, Description: "edit"})

	for _, text := range []string{"/start", "/start@photo_bot", "/start promo", " 📥 Старт "} {
		name, _, ok := reg.LookupCommand(text)
		assert.True(t, ok, text)
		assert.Equal(t, "/start", name, text)
	}
	for _, text := range []string{"/started", "start", "📥", "/unknown"} {
		_, _, ok := reg.LookupCommand(text)
		assert.False(t, ok, text)
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("start", commands.Command{Handler: noop, Description: "x"})
	reg.RegisterCommand("/nodesc", commands.Command{Handler: noop})
	reg.RegisterCommand("/edit", commands.Command{Handler: noop, Description: "first"})
	reg.RegisterCommand("/edit", commands.Command{Handler: noop, Description: "second"})

	assert.Len(t, reg.Commands(), 1)
	assert.Equal(t, "first", reg.Commands()["/edit"].Description)
}

func TestListCommandsSkipsHidden(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "b"})
	reg.RegisterCommand("/edit", commands.Command{Handler: noop, Description: "a"})
	reg.RegisterCommand("/debug", commands.Command{Handler: noop, Description: "c", Hidden: true})

	assert.Equal(t, []tele.Command{{Text: "edit", Description: "a"}, {Text: "start", Description: "b"}}, reg.ListCommands(true))
	assert.Len(t, reg.ListCommands(false), 3)
}

func TestBuildPoller(t *testing.T) {
	p := BuildPoller(PollerOptions{RunMode: "webhook", Webhook: WebhookOptions{Listen: "0.0.0.0", Port: 8443, URL: "https://example.org/hook"}})
	wh, ok := p.(*tele.Webhook)
	if assert.True(t, ok) {
		assert.Equal(t, "0.0.0.0:8443", wh.Listen)
		assert.Equal(t, "https://example.org/hook", wh.Endpoint.PublicURL)
	}

	lp, ok := BuildPoller(PollerOptions{}).(*tele.LongPoller)
	if assert.True(t, ok) {
		assert.Equal(t, defaultLongPollTimeout, lp.Timeout)
		assert.Equal(t, []string{"message"}, lp.AllowedUpdates)
	}
}
