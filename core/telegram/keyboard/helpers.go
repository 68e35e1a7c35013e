// Package keyboard builds reply keyboards.
package keyboard

import tele "gopkg.in/telebot.v4"

// RemoveKeyboard hides the current reply keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ReplyButtons builds a resized reply keyboard from rows of labels.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	keyboard := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.Btn, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// ContactButton builds a one-button keyboard that shares the user's phone
// number when pressed.
func ContactButton(label string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(markup.Row(markup.Contact(label)))
	return markup
}

// OneTime hides markup after the first press.
func OneTime(markup *tele.ReplyMarkup) *tele.ReplyMarkup {
	markup.OneTimeKeyboard = true
	return markup
}
