package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
	"kapitalbot/internal/service"
	"kapitalbot/internal/state"
)

const dispositionTimeout = 5 * time.Second

const (
	msgPending     = "⏳ Sizning arizangiz ko‘rib chiqilmoqda. Iltimos, kuting."
	msgDenied      = "❌ Sizga botdan foydalanishga ruxsat berilmagan."
	msgPressStart  = "Botdan foydalanish uchun /start ni bosing."
	msgInternalErr = "Xatolik yuz berdi. Keyinroq urinib ko‘ring."
)

// AccessGate builds the middleware that enforces the access-control
// workflow in front of every handler. Approved actors and configured
// admins pass through; pending and denied actors get a fixed rejection
// and their conversation is force-reset; unregistered actors may only
// reach /start and the registration steps.
func AccessGate(access *service.AccessService, states *state.Store, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}
			userID := sender.ID

			// Admins bypass the gate entirely: an admin need not be a
			// registered user to operate the bot.
			if access.IsAdmin(userID) {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), dispositionTimeout)
			defer cancel()

			disposition, err := access.Disposition(ctx, userID)
			if err != nil {
				logger.Error("failed to resolve disposition in middleware",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				return reject(c, msgInternalErr)
			}

			switch disposition {
			case domain.DispositionApproved:
				return next(c)

			case domain.DispositionPending:
				states.Reset(userID)
				return reject(c, msgPending)

			case domain.DispositionDenied:
				return reject(c, msgDenied)

			default: // unregistered
				if c.Text() == "/start" {
					return next(c)
				}
				conv := states.Snapshot(userID)
				if conv.Step == domain.StepRegisterName || conv.Step == domain.StepRegisterPhone {
					return next(c)
				}
				return reject(c, msgPressStart)
			}
		}
	}
}

// reject answers the action with a fixed message, acknowledging the
// callback if there is one.
func reject(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
