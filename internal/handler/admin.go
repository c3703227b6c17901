package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
	"kapitalbot/internal/repository"
)

// requireAdmin rejects non-admin actors with a fixed message and no side
// effects.
func (h *Handler) requireAdmin(c tele.Context) bool {
	if h.access.IsAdmin(c.Sender().ID) {
		return true
	}
	_ = c.Send(msgAdminsOnly)
	return false
}

// handleUsersList lists approved users.
func (h *Handler) handleUsersList(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	users, err := h.access.ListApproved(ctx)
	if err != nil {
		h.logger.Error("failed to list approved users", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	if len(users) == 0 {
		return c.Send("Hali birorta ham tasdiqlangan foydalanuvchi yo‘q.")
	}

	var b strings.Builder
	b.WriteString("<b>Tasdiqlangan foydalanuvchilar:</b>\n")
	for i, u := range users {
		fmt.Fprintf(&b, "\n%d. <b>%s</b>\nID: <code>%d</code>\nTelefon: <code>%s</code>\nRo‘yxatdan o‘tgan: %s\n",
			i+1, u.Name, u.ID, u.Phone, u.RegisteredAt.Format("2006-01-02 15:04:05"))
	}
	return c.Send(b.String())
}

// handleBlockUser shows approved users; picking one revokes access.
func (h *Handler) handleBlockUser(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	users, err := h.access.ListApproved(ctx)
	if err != nil {
		h.logger.Error("failed to list approved users", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	if len(users) == 0 {
		return c.Send("Hali birorta ham tasdiqlangan foydalanuvchi yo‘q.")
	}

	return c.Send("Bloklash uchun foydalanuvchini tanlang:",
		userListMarkup(users, uniqueBlockUser, "🚫"))
}

func (h *Handler) handleBlockUserCallback(c tele.Context) error {
	if !h.access.IsAdmin(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: msgAdminsOnly, ShowAlert: true})
	}

	targetID, err := strconv.ParseInt(callbackPayload(c), 10, 64)
	if err != nil {
		return c.Respond()
	}

	ctx, cancel := opCtx()
	defer cancel()

	if err := h.access.Deny(ctx, targetID); err != nil {
		h.logger.Error("failed to block user", zap.Int64("target_id", targetID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: msgInternalErr})
	}

	h.notify(targetID, msgBlockedByOp)
	if err := h.editOrSend(c, fmt.Sprintf("🚫 Foydalanuvchi bloklandi: %d", targetID)); err != nil {
		return err
	}
	return c.Respond()
}

// handleApproveUser shows denied users; picking one re-approves.
func (h *Handler) handleApproveUser(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	users, err := h.access.ListDenied(ctx)
	if err != nil {
		h.logger.Error("failed to list denied users", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	if len(users) == 0 {
		return c.Send("Hali birorta ham bloklangan foydalanuvchi yo‘q.")
	}

	return c.Send("Qayta tasdiqlash uchun foydalanuvchini tanlang:",
		userListMarkup(users, uniqueReapprove, "✅"))
}

func (h *Handler) handleReapproveCallback(c tele.Context) error {
	if !h.access.IsAdmin(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: msgAdminsOnly, ShowAlert: true})
	}

	targetID, err := strconv.ParseInt(callbackPayload(c), 10, 64)
	if err != nil {
		return c.Respond()
	}

	ctx, cancel := opCtx()
	defer cancel()

	if err := h.access.Approve(ctx, targetID); err != nil {
		h.logger.Error("failed to re-approve user", zap.Int64("target_id", targetID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: msgInternalErr})
	}

	h.notify(targetID, msgReApproved)
	if err := h.editOrSend(c, fmt.Sprintf("✅ Foydalanuvchi qayta tasdiqlandi: %d", targetID)); err != nil {
		return err
	}
	return c.Respond()
}

// handleAddCategory starts the add-category sub-flow.
func (h *Handler) handleAddCategory(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Update(c.Sender().ID, func(conv *domain.Conversation) {
		conv.StartAdminAdd(domain.StepAdminAddCategory)
	})
	return c.Send("Yangi kategoriya nomini yuboring:")
}

func (h *Handler) adminAddCategoryEntered(c tele.Context, text string) error {
	if !h.requireAdmin(c) {
		return nil
	}
	defer h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	item, err := h.catalog.AddCategory(ctx, text)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return c.Send(msgNameExists)
	}
	if err != nil {
		h.logger.Error("failed to add category", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	return c.Send("✅ Yangi kategoriya qo‘shildi: " + item.Display())
}

// handleAddPayType starts the add-pay-type sub-flow.
func (h *Handler) handleAddPayType(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Update(c.Sender().ID, func(conv *domain.Conversation) {
		conv.StartAdminAdd(domain.StepAdminAddPayType)
	})
	return c.Send("Yangi To‘lov turi nomini yuboring:")
}

func (h *Handler) adminAddPayTypeEntered(c tele.Context, text string) error {
	if !h.requireAdmin(c) {
		return nil
	}
	defer h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	err := h.catalog.AddPayType(ctx, text)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return c.Send(msgNameExists)
	}
	if err != nil {
		h.logger.Error("failed to add pay type", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	return c.Send("✅ Yangi To‘lov turi qo‘shildi: " + strings.TrimSpace(text))
}

// handleDelCategory shows a delete picker over the live category list.
func (h *Handler) handleDelCategory(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	items, err := h.catalog.Categories(ctx)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	return c.Send("O‘chirish uchun kategoriya tanlang:",
		catalogListMarkup(items, uniqueDelCategory, "❌"))
}

func (h *Handler) handleDelCategoryCallback(c tele.Context) error {
	if !h.access.IsAdmin(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: msgAdminsOnly, ShowAlert: true})
	}
	name := callbackPayload(c)

	ctx, cancel := opCtx()
	defer cancel()

	if err := h.catalog.DeleteCategory(ctx, name); err != nil {
		h.logger.Error("failed to delete category", zap.String("name", name), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: msgInternalErr})
	}
	if err := h.editOrSend(c, "❌ Kategoriya o‘chirildi: "+name); err != nil {
		return err
	}
	return c.Respond()
}

// handleDelPayType shows a delete picker over the live pay-type list.
func (h *Handler) handleDelPayType(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	items, err := h.catalog.PayTypes(ctx)
	if err != nil {
		h.logger.Error("failed to list pay types", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	return c.Send("O‘chirish uchun To‘lov turini tanlang:",
		catalogListMarkup(items, uniqueDelPayType, "❌"))
}

func (h *Handler) handleDelPayTypeCallback(c tele.Context) error {
	if !h.access.IsAdmin(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: msgAdminsOnly, ShowAlert: true})
	}
	name := callbackPayload(c)

	ctx, cancel := opCtx()
	defer cancel()

	if err := h.catalog.DeletePayType(ctx, name); err != nil {
		h.logger.Error("failed to delete pay type", zap.String("name", name), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: msgInternalErr})
	}
	if err := h.editOrSend(c, "❌ To‘lov turi o‘chirildi: "+name); err != nil {
		return err
	}
	return c.Respond()
}

// handleEditCategory shows a rename picker over the live category list.
func (h *Handler) handleEditCategory(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	items, err := h.catalog.Categories(ctx)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	return c.Send("Tahrirlash uchun kategoriya tanlang:",
		catalogListMarkup(items, uniqueEditCategory, "✏️"))
}

func (h *Handler) handleEditCategoryCallback(c tele.Context) error {
	if !h.access.IsAdmin(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: msgAdminsOnly, ShowAlert: true})
	}
	oldName := callbackPayload(c)

	h.states.Update(c.Sender().ID, func(conv *domain.Conversation) {
		conv.StartAdminRename(domain.StepAdminRenameCategory, oldName)
	})

	if err := c.Send(fmt.Sprintf("Yangi nomini yuboring (eski: %s):", oldName)); err != nil {
		return err
	}
	return c.Respond()
}

func (h *Handler) adminRenameCategoryEntered(c tele.Context, oldName, text string) error {
	if !h.requireAdmin(c) {
		return nil
	}
	defer h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	newName := strings.TrimSpace(text)
	err := h.catalog.RenameCategory(ctx, oldName, newName)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return c.Send(msgNameExists)
	}
	if err != nil {
		h.logger.Error("failed to rename category", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	return c.Send(fmt.Sprintf("✏️ Kategoriya o‘zgartirildi: %s → %s", oldName, newName))
}

// handleEditPayType shows a rename picker over the live pay-type list.
func (h *Handler) handleEditPayType(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	items, err := h.catalog.PayTypes(ctx)
	if err != nil {
		h.logger.Error("failed to list pay types", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	return c.Send("Tahrirlash uchun To‘lov turini tanlang:",
		catalogListMarkup(items, uniqueEditPayType, "✏️"))
}

func (h *Handler) handleEditPayTypeCallback(c tele.Context) error {
	if !h.access.IsAdmin(c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: msgAdminsOnly, ShowAlert: true})
	}
	oldName := callbackPayload(c)

	h.states.Update(c.Sender().ID, func(conv *domain.Conversation) {
		conv.StartAdminRename(domain.StepAdminRenamePayType, oldName)
	})

	if err := c.Send(fmt.Sprintf("Yangi nomini yuboring (eski: %s):", oldName)); err != nil {
		return err
	}
	return c.Respond()
}

func (h *Handler) adminRenamePayTypeEntered(c tele.Context, oldName, text string) error {
	if !h.requireAdmin(c) {
		return nil
	}
	defer h.states.Reset(c.Sender().ID)

	ctx, cancel := opCtx()
	defer cancel()

	newName := strings.TrimSpace(text)
	err := h.catalog.RenamePayType(ctx, oldName, newName)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return c.Send(msgNameExists)
	}
	if err != nil {
		h.logger.Error("failed to rename pay type", zap.Error(err))
		return c.Send(msgInternalErr)
	}
	return c.Send(fmt.Sprintf("✏️ To‘lov turi o‘zgartirildi: %s → %s", oldName, newName))
}
