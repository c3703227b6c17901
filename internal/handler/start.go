package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
)

// handleStart handles /start. For an approved actor it is the global
// restart: any in-flight form is discarded and the flow re-enters the
// type step.
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("user started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	ctx, cancel := opCtx()
	defer cancel()

	disposition, err := h.access.Disposition(ctx, userID)
	if err != nil {
		h.logger.Error("failed to resolve disposition", zap.Error(err))
		return c.Send(msgInternalErr)
	}

	switch disposition {
	case domain.DispositionApproved:
		h.states.Update(userID, func(conv *domain.Conversation) {
			conv.Begin()
		})
		return c.Send(msgChooseType, typeMarkup())

	case domain.DispositionPending:
		return c.Send(msgPending)

	case domain.DispositionDenied:
		return c.Send(msgDenied)

	default: // unregistered
		h.states.Update(userID, func(conv *domain.Conversation) {
			conv.StartRegistration()
		})
		return c.Send(msgAskName)
	}
}
