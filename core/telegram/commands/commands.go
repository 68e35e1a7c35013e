package commands

import tele "gopkg.in/telebot.v4"

// Command is a slash command with its handler and menu metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// Hidden commands work but are left out of the Telegram command menu.
	Hidden bool
	// Aliases are exact texts (for example reply keyboard labels) that
	// trigger the same handler.
	Aliases []string
}
