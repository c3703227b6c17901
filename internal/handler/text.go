package handler

import (
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
)

// handleText routes free text by the actor's current step. Text that the
// current step does not expect is ignored: no transition, no reply, the
// actor stays where they were.
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()

	if strings.HasPrefix(text, "/") {
		return nil
	}

	conv := h.states.Snapshot(userID)

	switch conv.Step {
	case domain.StepRegisterName:
		return h.registerNameEntered(c, userID, text)

	case domain.StepRegisterPhone:
		// Phone must arrive as a contact share, not free text.
		return c.Send(msgAskPhone, contactMarkup())

	case domain.StepProjectName:
		return h.projectNameEntered(c, userID, text)

	case domain.StepAmount:
		return h.amountEntered(c, userID, text)

	case domain.StepComment:
		return h.commentEntered(c, userID, text)

	case domain.StepAdminAddCategory:
		return h.adminAddCategoryEntered(c, text)

	case domain.StepAdminAddPayType:
		return h.adminAddPayTypeEntered(c, text)

	case domain.StepAdminRenameCategory:
		return h.adminRenameCategoryEntered(c, conv.RenameFrom, text)

	case domain.StepAdminRenamePayType:
		return h.adminRenamePayTypeEntered(c, conv.RenameFrom, text)

	default:
		return nil
	}
}

func (h *Handler) registerNameEntered(c tele.Context, userID int64, text string) error {
	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.SetRegisterName(text)
	})
	if !advanced {
		// Empty name: silently re-prompt.
		return c.Send(msgAskName)
	}
	return c.Send(msgAskPhone, contactMarkup())
}

func (h *Handler) projectNameEntered(c tele.Context, userID int64, text string) error {
	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.SetProjectName(text)
	})
	if !advanced {
		return nil
	}
	return c.Send(msgChooseCurrency, currencyMarkup())
}

func (h *Handler) amountEntered(c tele.Context, userID int64, text string) error {
	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.SetAmount(text)
	})
	if !advanced {
		// Invalid amount: no transition, no reply. The actor stays on
		// the amount step until input parses.
		return nil
	}

	ctx, cancel := opCtx()
	defer cancel()

	markup, err := h.payTypesMarkup(ctx)
	if err != nil {
		h.logger.Error("failed to load pay types", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	return c.Send(msgChoosePayType, markup)
}

func (h *Handler) commentEntered(c tele.Context, userID int64, text string) error {
	var summary string
	advanced := false
	h.states.Update(userID, func(conv *domain.Conversation) {
		advanced = conv.SetComment(text, time.Now())
		if advanced {
			summary = conv.Draft.Summary()
		}
	})
	if !advanced {
		return nil
	}
	return c.Send(summary, confirmMarkup())
}
