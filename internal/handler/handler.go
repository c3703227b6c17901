package handler

import (
	"context"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
	"kapitalbot/internal/service"
	"kapitalbot/internal/state"
)

// directoryTimeout bounds a single handler's calls into the directory
// store so a slow database cannot wedge an actor's update.
const directoryTimeout = 5 * time.Second

// messageSender is the outbound side of the transport, narrowed for
// notifications so tests can observe them.
type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Handler manages all bot interactions
type Handler struct {
	bot     *tele.Bot
	sender  messageSender
	access  *service.AccessService
	catalog *service.CatalogService
	entry   *service.EntryService
	states  *state.Store
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	access *service.AccessService,
	catalog *service.CatalogService,
	entry *service.EntryService,
	states *state.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:     bot,
		sender:  bot,
		access:  access,
		catalog: catalog,
		entry:   entry,
		states:  states,
		logger:  logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Entry points
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnContact, h.handleContact)

	// Admin commands
	h.bot.Handle("/userslist", h.handleUsersList)
	h.bot.Handle("/block_user", h.handleBlockUser)
	h.bot.Handle("/approve_user", h.handleApproveUser)
	h.bot.Handle("/add_category", h.handleAddCategory)
	h.bot.Handle("/edit_category", h.handleEditCategory)
	h.bot.Handle("/del_category", h.handleDelCategory)
	h.bot.Handle("/add_tolov", h.handleAddPayType)
	h.bot.Handle("/edit_tolov", h.handleEditPayType)
	h.bot.Handle("/del_tolov", h.handleDelPayType)

	// Form buttons
	h.bot.Handle(&btnInflow, func(c tele.Context) error {
		return h.handleTypeSelect(c, domain.FlowInflow)
	})
	h.bot.Handle(&btnOutflow, func(c tele.Context) error {
		return h.handleTypeSelect(c, domain.FlowOutflow)
	})
	h.bot.Handle(&btnCurrencyDollar, func(c tele.Context) error {
		return h.handleCurrencySelect(c, domain.CurrencyDollar)
	})
	h.bot.Handle(&btnCurrencySum, func(c tele.Context) error {
		return h.handleCurrencySelect(c, domain.CurrencySum)
	})
	h.bot.Handle(&btnOtherProject, h.handleOtherProject)
	h.bot.Handle(&btnSkipComment, h.handleSkipComment)
	h.bot.Handle(&btnConfirm, h.handleConfirm)
	h.bot.Handle(&btnCancelEntry, h.handleCancelEntry)

	// Dynamic selection buttons, one handler per payload kind
	h.bot.Handle(&tele.Btn{Unique: uniqueCategory}, h.handleCategorySelect)
	h.bot.Handle(&tele.Btn{Unique: uniqueProject}, h.handleProjectSelect)
	h.bot.Handle(&tele.Btn{Unique: uniquePayType}, h.handlePayTypeSelect)
	h.bot.Handle(&tele.Btn{Unique: uniqueApprove}, h.handleApproveCallback)
	h.bot.Handle(&tele.Btn{Unique: uniqueDeny}, h.handleDenyCallback)
	h.bot.Handle(&tele.Btn{Unique: uniqueBlockUser}, h.handleBlockUserCallback)
	h.bot.Handle(&tele.Btn{Unique: uniqueReapprove}, h.handleReapproveCallback)
	h.bot.Handle(&tele.Btn{Unique: uniqueDelCategory}, h.handleDelCategoryCallback)
	h.bot.Handle(&tele.Btn{Unique: uniqueDelPayType}, h.handleDelPayTypeCallback)
	h.bot.Handle(&tele.Btn{Unique: uniqueEditCategory}, h.handleEditCategoryCallback)
	h.bot.Handle(&tele.Btn{Unique: uniqueEditPayType}, h.handleEditPayTypeCallback)
}

// opCtx returns a bounded context for directory store calls made from a
// handler.
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), directoryTimeout)
}

// notify sends a message to an actor best-effort: delivery failure is
// logged and swallowed, never propagated.
func (h *Handler) notify(userID int64, text string, opts ...interface{}) {
	if _, err := h.sender.Send(&tele.User{ID: userID}, text, opts...); err != nil {
		h.logger.Warn("notification dropped",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// notifyAdmins fans a message out to every configured admin. Each
// delivery is independently best-effort.
func (h *Handler) notifyAdmins(text string, opts ...interface{}) {
	for _, adminID := range h.access.AdminIDs() {
		h.notify(adminID, text, opts...)
	}
}

// editOrSend edits the callback's message in place, falling back to a
// new message when the edit fails.
func (h *Handler) editOrSend(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	if err := c.Edit(text, opts...); err != nil {
		h.logger.Warn("failed to edit message, sending new",
			zap.Int64("user_id", c.Sender().ID),
			zap.Error(err),
		)
		return c.Send(text, opts...)
	}
	return nil
}
