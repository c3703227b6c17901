package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
)

// callbackPayload returns the data part of a callback, cleaned of
// whitespace.
func callbackPayload(c tele.Context) string {
	return strings.TrimSpace(c.Data())
}

// handleTypeSelect records the flow direction and asks for a category.
func (h *Handler) handleTypeSelect(c tele.Context, flow domain.FlowType) error {
	userID := c.Sender().ID

	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.SetType(flow)
	})
	if !advanced {
		return c.Respond()
	}

	ctx, cancel := opCtx()
	defer cancel()

	markup, err := h.categoriesMarkup(ctx)
	if err != nil {
		h.logger.Error("failed to load categories", zap.Error(err))
		return c.Send(msgInternalErr)
	}

	if err := h.editOrSend(c, msgChooseCategory, markup); err != nil {
		return err
	}
	return c.Respond()
}

// handleCategorySelect accepts the chosen category at face value. The
// keyboard may predate an admin deletion; the stale name is still
// recorded.
func (h *Handler) handleCategorySelect(c tele.Context) error {
	userID := c.Sender().ID
	name := callbackPayload(c)

	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.SetCategory(name)
	})
	if !advanced {
		return c.Respond()
	}

	if err := h.editOrSend(c, msgChooseProject, projectsMarkup()); err != nil {
		return err
	}
	return c.Respond()
}

// handleProjectSelect records one of the fixed project options.
func (h *Handler) handleProjectSelect(c tele.Context) error {
	userID := c.Sender().ID
	name := callbackPayload(c)

	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.ChooseProject(name)
	})
	if !advanced {
		return c.Respond()
	}

	if err := h.editOrSend(c, msgChooseCurrency, currencyMarkup()); err != nil {
		return err
	}
	return c.Respond()
}

// handleOtherProject switches to free-text project entry.
func (h *Handler) handleOtherProject(c tele.Context) error {
	userID := c.Sender().ID

	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.ChooseOtherProject()
	})
	if !advanced {
		return c.Respond()
	}

	if err := h.editOrSend(c, msgTypeProject); err != nil {
		return err
	}
	return c.Respond()
}

// handleCurrencySelect records the currency and asks for the amount.
func (h *Handler) handleCurrencySelect(c tele.Context, currency domain.Currency) error {
	userID := c.Sender().ID

	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.SetCurrency(currency)
	})
	if !advanced {
		return c.Respond()
	}

	if err := h.editOrSend(c, msgEnterAmount); err != nil {
		return err
	}
	return c.Respond()
}

// handlePayTypeSelect accepts the chosen payment type, face value as
// with categories.
func (h *Handler) handlePayTypeSelect(c tele.Context) error {
	userID := c.Sender().ID
	name := callbackPayload(c)

	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.SetPayType(name)
	})
	if !advanced {
		return c.Respond()
	}

	if err := h.editOrSend(c, msgEnterComment, skipMarkup()); err != nil {
		return err
	}
	return c.Respond()
}

// handleSkipComment stores the placeholder comment and shows the
// confirmation summary.
func (h *Handler) handleSkipComment(c tele.Context) error {
	userID := c.Sender().ID

	var summary string
	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.SkipComment(time.Now())
		if advanced {
			summary = conv.Draft.Summary()
		}
	})
	if !advanced {
		return c.Respond()
	}

	if err := c.Send(summary, confirmMarkup()); err != nil {
		return err
	}
	return c.Respond()
}

// handleConfirm submits the completed record. Success or reported
// failure, the conversation restarts at the type step.
func (h *Handler) handleConfirm(c tele.Context) error {
	userID := c.Sender().ID

	var record domain.Record
	confirmed := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		if conv.Confirming() {
			record = conv.Draft
			confirmed = true
			conv.Begin()
		}
	})
	if !confirmed {
		return c.Respond()
	}

	ctx, cancel := opCtx()
	defer cancel()

	userName, err := h.access.UserName(ctx, userID)
	if err != nil {
		h.logger.Error("failed to resolve user name", zap.Error(err))
	}
	if userName == "" {
		userName = strings.TrimSpace(c.Sender().FirstName + " " + c.Sender().LastName)
	}

	if err := h.entry.Submit(ctx, record, userName); err != nil {
		h.logger.Error("record submission failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		// Sink failures are surfaced to the actor, unlike notification
		// failures.
		if sendErr := c.Send(fmt.Sprintf("⚠️ Xatolik: %v", err)); sendErr != nil {
			return sendErr
		}
	} else {
		h.logger.Info("record submitted",
			zap.Int64("user_id", userID),
			zap.String("amount", record.Amount),
		)
		if sendErr := c.Send(msgRecorded); sendErr != nil {
			return sendErr
		}
		h.notifyAdmins(fmt.Sprintf(
			"Foydalanuvchi <b>%s</b> tomonidan kiritilgan yangi ma'lumot:\n\n%s",
			userName, record.Summary(),
		))
	}

	if err := c.Send(msgChooseType, typeMarkup()); err != nil {
		return err
	}
	return c.Respond()
}

// handleCancelEntry discards the draft and restarts the flow.
func (h *Handler) handleCancelEntry(c tele.Context) error {
	userID := c.Sender().ID

	cancelled := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		if conv.Confirming() {
			cancelled = true
			conv.Begin()
		}
	})
	if !cancelled {
		return c.Respond()
	}

	if err := c.Send(msgCancelled); err != nil {
		return err
	}
	if err := c.Send(msgChooseType, typeMarkup()); err != nil {
		return err
	}
	return c.Respond()
}

// handleApproveCallback grants access to the actor bound to the button.
func (h *Handler) handleApproveCallback(c tele.Context) error {
	return h.decideAccess(c, domain.StatusApproved)
}

// handleDenyCallback refuses access to the actor bound to the button.
func (h *Handler) handleDenyCallback(c tele.Context) error {
	return h.decideAccess(c, domain.StatusDenied)
}

func (h *Handler) decideAccess(c tele.Context, verdict domain.Status) error {
	adminID := c.Sender().ID
	if !h.access.IsAdmin(adminID) {
		return c.Respond(&tele.CallbackResponse{Text: msgAdminsOnly, ShowAlert: true})
	}

	targetID, err := strconv.ParseInt(callbackPayload(c), 10, 64)
	if err != nil {
		h.logger.Warn("malformed verdict payload", zap.String("data", c.Data()))
		return c.Respond()
	}

	ctx, cancel := opCtx()
	defer cancel()

	if verdict == domain.StatusApproved {
		err = h.access.Approve(ctx, targetID)
	} else {
		err = h.access.Deny(ctx, targetID)
	}
	if err != nil {
		h.logger.Error("failed to set user status",
			zap.Int64("target_id", targetID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgInternalErr})
	}

	h.logger.Info("access decided",
		zap.Int64("admin_id", adminID),
		zap.Int64("target_id", targetID),
		zap.String("status", string(verdict)),
	)

	if verdict == domain.StatusApproved {
		h.notify(targetID, msgAccessGiven)
		if err := h.editOrSend(c, msgUserApproved); err != nil {
			return err
		}
	} else {
		h.notify(targetID, msgDenied)
		if err := h.editOrSend(c, msgUserDenied); err != nil {
			return err
		}
	}
	return c.Respond()
}
