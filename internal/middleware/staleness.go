package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Staleness drops messages older than maxAge before any handler runs,
// so a backlog accumulated while the bot was down is not replayed into
// open conversation flows. Callback events carry the age of the button
// message, not of the press, so they pass through.
func Staleness(maxAge time.Duration, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Callback() != nil {
				return next(c)
			}

			if m := c.Message(); m != nil && time.Since(m.Time()) > maxAge {
				logger.Debug("Skipping stale message",
					zap.Int64("chat_id", m.Chat.ID),
					zap.Time("sent_at", m.Time()),
				)
				return nil
			}

			return next(c)
		}
	}
}
