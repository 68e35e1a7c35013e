package middleware

import tele "gopkg.in/telebot.v4"

const (
	messagesKey = "messages"
	keyboardKey = "kb"
)

// metricsContext counts successful sends and remembers whether any of them
// carried a keyboard.
type metricsContext struct{ tele.Context }

func (m metricsContext) note(opts []any) {
	n, _ := m.Get(messagesKey).(int)
	m.Set(messagesKey, n+1)
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				m.Set(keyboardKey, true)
			}
		case *tele.ReplyMarkup:
			if v != nil {
				m.Set(keyboardKey, true)
			}
		}
	}
}

func (m metricsContext) Send(what any, opts ...any) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.note(opts)
	}
	return err
}

func (m metricsContext) Reply(what any, opts ...any) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.note(opts)
	}
	return err
}

// MessageMetricsMiddleware resets the counters and wraps the context.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(messagesKey, 0)
		c.Set(keyboardKey, false)
		return next(metricsContext{Context: c})
	}
}

// GetCounters returns the number of messages sent and the keyboard flag.
func GetCounters(c tele.Context) (int, bool) {
	n, _ := c.Get(messagesKey).(int)
	kb, _ := c.Get(keyboardKey).(bool)
	return n, kb
}
