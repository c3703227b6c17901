package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
)

// handleContact completes registration with the transport-verified phone
// number from a contact share.
func (h *Handler) handleContact(c tele.Context) error {
	userID := c.Sender().ID

	contact := c.Message().Contact
	if contact == nil {
		return nil
	}

	conv := h.states.Snapshot(userID)
	if conv.Step != domain.StepRegisterPhone {
		return nil
	}

	name := conv.RegisterName
	phone := contact.PhoneNumber

	ctx, cancel := opCtx()
	defer cancel()

	// Idempotent: a duplicate registration is a no-op, not an error.
	if err := h.access.Register(ctx, userID, name, phone); err != nil {
		h.logger.Error("failed to register user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Send(msgInternalErr)
	}

	h.states.Reset(userID)

	h.logger.Info("user registered",
		zap.Int64("user_id", userID),
		zap.String("name", name),
	)

	if err := c.Send(msgApplicationSent, &tele.ReplyMarkup{RemoveKeyboard: true}); err != nil {
		return err
	}

	notification := fmt.Sprintf(
		"🆕 Yangi foydalanuvchi ro‘yxatdan o‘tdi:\nID: <code>%d</code>\nIsmi: <b>%s</b>\nTelefon: <code>%s</code>",
		userID, name, phone,
	)
	h.notifyAdmins(notification, approveDenyMarkup(userID))
	return nil
}
