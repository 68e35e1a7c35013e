package router

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/photobot/core/telegram"
	"github.com/m3rciful/photobot/core/telegram/commands"
)

type codedErr struct{}

func (codedErr) Error() string { return "quota" }
func (codedErr) Code() string  { return "rate limit" }

type apiErr struct{}

func (*apiErr) Error() string { return "api" }

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "RATE_LIMIT", errorCode(fmt.Errorf("wrap: %w", codedErr{})))
	assert.Equal(t, "APIERR", errorCode(fmt.Errorf("dialogue append: %w", &apiErr{})))
	assert.Equal(t, "ERRORSTRING", errorCode(errors.New("x")))
}

func TestNormalizeHandlerName(t *testing.T) {
	assert.Equal(t, "start", normalizeHandlerName("/start"))
	assert.Equal(t, "edit_phone", normalizeHandlerName(" Edit Phone "))
	assert.Equal(t, "unknown", normalizeHandlerName("/"))
}

func TestTextRoutesDispatch(t *testing.T) {
	b, err := tele.NewBot(tele.Settings{Offline: true, Synchronous: true})
	require.NoError(t, err)

	var got []string
	reg := tg.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Description: "start",
		Aliases:     []string{"📥 Старт"},
		Handler:     func(tele.Context) error { got = append(got, "start"); return nil },
	})
	reg.SetTextFallback(func(c tele.Context) error { got = append(got, "text:"+c.Text()); return nil })

	routes := TextRoutes(reg, TextOptions{Contact: func(c tele.Context) error {
		got = append(got, "contact:"+c.Message().Contact.PhoneNumber)
		return nil
	}})
	require.Len(t, routes, 2)
	byEndpoint := map[any]tele.HandlerFunc{}
	for _, r := range routes {
		byEndpoint[r.Endpoint] = r.Handler
	}

	msg := func(text string) tele.Context {
		return b.NewContext(tele.Update{ID: 1, Message: &tele.Message{
			Sender: &tele.User{ID: 5}, Chat: &tele.Chat{ID: 5}, Text: text,
		}})
	}
	require.NoError(t, byEndpoint[tele.OnText](msg("📥 Старт")))
	require.NoError(t, byEndpoint[tele.OnText](msg("89991234567")))

	c := msg("")
	c.Message().Contact = &tele.Contact{PhoneNumber: "+79991234567"}
	require.NoError(t, byEndpoint[tele.OnContact](c))

	assert.Equal(t, []string{"start", "text:89991234567", "contact:+79991234567"}, got)

	cmdRoutes := CommandRoutes(reg)
	require.Len(t, cmdRoutes, 1)
	assert.Equal(t, "/start", cmdRoutes[0].Endpoint)
	require.NoError(t, cmdRoutes[0].Handler(msg("/start")))
	assert.Equal(t, "start", got[len(got)-1])
}
