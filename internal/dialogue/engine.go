// Package dialogue implements the registration and comment-editing flows.
//
// The engine is transport agnostic: it takes an Inbound message, consults the
// conversation store and the records table, and returns the Reply to send.
// A store failure leaves the conversation state as it was and yields a
// "try again" reply together with the error.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m3rciful/photobot/core/logger"
	"github.com/m3rciful/photobot/internal/conversation"
	"github.com/m3rciful/photobot/internal/phone"
	"github.com/m3rciful/photobot/internal/records"
)

const component = "dialogue"

// Inbound is one message from a chat user.
type Inbound struct {
	UserID int64
	Handle string
	Text   string
	// ContactPhone is the number from a shared contact card, if any.
	ContactPhone string
}

// Engine drives the per-user state machine.
type Engine struct {
	store  records.Store
	states conversation.Store
	msgs   Messages
}

// New wires an engine. Both stores are required.
func New(store records.Store, states conversation.Store, msgs Messages) *Engine {
	return &Engine{store: store, states: states, msgs: msgs}
}

// Handle routes a message by trigger first and by the user's state second.
func (e *Engine) Handle(ctx context.Context, in Inbound) (Reply, error) {
	text := strings.TrimSpace(in.Text)
	switch {
	case isStart(text):
		return e.Start(ctx, in), nil
	case isEdit(text):
		return e.Edit(ctx, in)
	}

	st := e.states.Get(in.UserID)
	switch st.Mode {
	case conversation.ModeNewNumber:
		return e.acceptPhone(ctx, in)
	case conversation.ModeNewComment:
		return e.saveComment(ctx, in, st, e.msgs.CommentSaved)
	case conversation.ModeEditPhone:
		return e.selectPhone(ctx, in)
	case conversation.ModeEditComment:
		return e.saveComment(ctx, in, st, e.msgs.CommentUpdated)
	}
	return Reply{Text: e.msgs.IdleHint, Keyboard: MainMenu()}, nil
}

// Start begins the registration flow, discarding any flow in progress.
func (e *Engine) Start(ctx context.Context, in Inbound) Reply {
	e.states.Clear(in.UserID)
	e.transition(ctx, in.UserID, conversation.State{Mode: conversation.ModeNewNumber})
	return Reply{Text: e.msgs.Start, Keyboard: ShareContact()}
}

// Edit offers the user's saved phones for comment editing. With nothing saved
// the current state is left alone.
func (e *Engine) Edit(ctx context.Context, in Inbound) (Reply, error) {
	phones, err := e.store.ListPhonesForOwner(ctx, ownerKey(in.UserID))
	if err != nil {
		return e.storeFailure(ctx, in, "list_owner", err)
	}
	if len(phones) == 0 {
		return Reply{Text: e.msgs.NoNumbers, Keyboard: MainMenu()}, nil
	}
	e.transition(ctx, in.UserID, conversation.State{Mode: conversation.ModeEditPhone})
	return Reply{Text: e.msgs.ChooseNumber, Keyboard: PhoneChoice(phones)}, nil
}

func (e *Engine) acceptPhone(ctx context.Context, in Inbound) (Reply, error) {
	raw := in.Text
	if in.ContactPhone != "" {
		raw = in.ContactPhone
	}
	p, ok := phone.Normalize(raw)
	if !ok {
		return Reply{Text: e.msgs.InvalidPhone}, nil
	}

	exists, err := e.store.Exists(ctx, p)
	if err != nil {
		return e.storeFailure(ctx, in, "exists", err)
	}
	if exists {
		return e.alreadySaved(ctx, in, p), nil
	}

	err = e.store.Append(ctx, records.Record{
		Phone:       p,
		OwnerID:     ownerKey(in.UserID),
		OwnerHandle: in.Handle,
	})
	if errors.Is(err, records.ErrDuplicate) {
		return e.alreadySaved(ctx, in, p), nil
	}
	if err != nil {
		return e.storeFailure(ctx, in, "append", err)
	}

	logger.Info(ctx, component, "phone.registered",
		slog.String("status", "ok"),
		slog.String("phone", phone.Mask(p)),
	)
	e.transition(ctx, in.UserID, conversation.State{Mode: conversation.ModeNewComment, Phone: p})
	return Reply{Text: fmt.Sprintf(e.msgs.AcceptedFormat, p), Keyboard: RemoveKeyboard()}, nil
}

func (e *Engine) alreadySaved(ctx context.Context, in Inbound, p string) Reply {
	logger.Debug(ctx, component, "phone.duplicate",
		slog.String("status", "skip"),
		slog.String("phone", phone.Mask(p)),
	)
	e.transition(ctx, in.UserID, conversation.Idle())
	return Reply{Text: e.msgs.AlreadySaved, Keyboard: MainMenu()}
}

func (e *Engine) selectPhone(ctx context.Context, in Inbound) (Reply, error) {
	p, ok := phone.Normalize(in.Text)
	if !ok {
		return Reply{Text: e.msgs.NotFound}, nil
	}
	exists, err := e.store.Exists(ctx, p)
	if err != nil {
		return e.storeFailure(ctx, in, "exists", err)
	}
	if !exists {
		return Reply{Text: e.msgs.NotFound}, nil
	}

	row, err := e.store.FindRow(ctx, p)
	if errors.Is(err, records.ErrNotFound) {
		return Reply{Text: e.msgs.NotFound}, nil
	}
	if err != nil {
		return e.storeFailure(ctx, in, "find_row", err)
	}
	current, err := e.store.GetComment(ctx, row)
	if err != nil && !errors.Is(err, records.ErrNotFound) {
		return e.storeFailure(ctx, in, "get_comment", err)
	}
	if strings.TrimSpace(current) == "" {
		current = e.msgs.EmptyComment
	}

	e.transition(ctx, in.UserID, conversation.State{Mode: conversation.ModeEditComment, Phone: p})
	return Reply{Text: fmt.Sprintf(e.msgs.CurrentCommentFormat, current), Keyboard: RemoveKeyboard()}, nil
}

func (e *Engine) saveComment(ctx context.Context, in Inbound, st conversation.State, done string) (Reply, error) {
	comment := strings.TrimSpace(in.Text)
	if comment == "" {
		return Reply{Text: e.msgs.NeedText}, nil
	}

	row, err := e.store.FindRow(ctx, st.Phone)
	if err == nil {
		err = e.store.UpdateComment(ctx, row, comment)
	}
	if errors.Is(err, records.ErrNotFound) {
		logger.Warn(ctx, component, "comment.row_missing",
			slog.String("status", "fail"),
			slog.String("phone", phone.Mask(st.Phone)),
			slog.String("mode", string(st.Mode)),
		)
		e.transition(ctx, in.UserID, conversation.Idle())
		return Reply{Text: e.msgs.RecordGone, Keyboard: MainMenu()}, nil
	}
	if err != nil {
		return e.storeFailure(ctx, in, "update_comment", err)
	}

	logger.Info(ctx, component, "comment.saved",
		slog.String("status", "ok"),
		slog.String("phone", phone.Mask(st.Phone)),
		slog.Int64("row", row),
		slog.String("mode", string(st.Mode)),
	)
	e.transition(ctx, in.UserID, conversation.Idle())
	return Reply{Text: done, Keyboard: MainMenu()}, nil
}

func (e *Engine) storeFailure(ctx context.Context, in Inbound, op string, err error) (Reply, error) {
	logger.Error(ctx, component, "store.failed",
		slog.String("status", "fail"),
		slog.String("op", op),
		slog.String("mode", string(e.states.Get(in.UserID).Mode)),
		slog.String("err", err.Error()),
	)
	return Reply{Text: e.msgs.TryAgain}, fmt.Errorf("dialogue %s: %w", op, err)
}

func (e *Engine) transition(ctx context.Context, userID int64, next conversation.State) {
	prev := e.states.Get(userID)
	e.states.Set(userID, next)
	logger.Debug(ctx, component, "dialogue.transition",
		slog.Int64("user_id", userID),
		slog.String("mode_from", string(prev.Mode)),
		slog.String("mode_to", string(next.Mode)),
	)
}

func isStart(text string) bool {
	return text == StartButton || isCommand(text, StartCommand)
}

func isEdit(text string) bool {
	return text == EditButton || isCommand(text, EditCommand)
}

// isCommand accepts "/cmd", "/cmd@bot" and "/cmd payload".
func isCommand(text, cmd string) bool {
	if !strings.HasPrefix(text, cmd) {
		return false
	}
	rest := text[len(cmd):]
	return rest == "" || rest[0] == '@' || rest[0] == ' '
}

func ownerKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
