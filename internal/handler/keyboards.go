package handler

import (
	"context"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"kapitalbot/internal/domain"
)

// Fixed project options; anything else goes through the "other" free-text
// sub-step.
var projectOptions = []string{"UzAvtosanoat", "Bodomzor"}

// Callback uniques for dynamic selection buttons. Parsed once by telebot
// at the transport boundary and dispatched to a dedicated handler each.
const (
	uniqueCategory     = "cat"
	uniqueProject      = "project"
	uniquePayType      = "pay"
	uniqueApprove      = "approve"
	uniqueDeny         = "deny"
	uniqueBlockUser    = "blockuser"
	uniqueReapprove    = "approveuser"
	uniqueDelCategory  = "delcat"
	uniqueDelPayType   = "delpay"
	uniqueEditCategory = "editcat"
	uniqueEditPayType  = "editpay"
)

// Static inline buttons
var (
	btnInflow = tele.Btn{
		Unique: "type_inflow",
		Text:   "🟢 Kirim",
	}
	btnOutflow = tele.Btn{
		Unique: "type_outflow",
		Text:   "🔴 Chiqim",
	}
	btnOtherProject = tele.Btn{
		Unique: "project_other",
		Text:   "Boshqa",
	}
	btnCurrencyDollar = tele.Btn{
		Unique: "currency_dollar",
		Text:   "💵 Dollar",
	}
	btnCurrencySum = tele.Btn{
		Unique: "currency_sum",
		Text:   "💸 Sum",
	}
	btnSkipComment = tele.Btn{
		Unique: "skip_comment",
		Text:   "Пропустить",
	}
	btnConfirm = tele.Btn{
		Unique: "confirm_yes",
		Text:   "✅ Ha",
	}
	btnCancelEntry = tele.Btn{
		Unique: "confirm_no",
		Text:   "❌ Yoq",
	}
)

// typeMarkup is the entry keyboard of the form.
func typeMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnInflow, btnOutflow))
	return markup
}

// categoriesMarkup renders the live category list. Fetched fresh on
// every render so admin edits show up immediately.
func (h *Handler) categoriesMarkup(ctx context.Context) (*tele.ReplyMarkup, error) {
	items, err := h.catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return selectionMarkup(items, uniqueCategory), nil
}

// payTypesMarkup renders the live payment-type list.
func (h *Handler) payTypesMarkup(ctx context.Context) (*tele.ReplyMarkup, error) {
	items, err := h.catalog.PayTypes(ctx)
	if err != nil {
		return nil, err
	}
	return selectionMarkup(items, uniquePayType), nil
}

// selectionMarkup lays catalog items out two per row, the payload being
// the bare item name.
func selectionMarkup(items []domain.CatalogItem, unique string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	row := tele.Row{}
	for _, item := range items {
		row = append(row, markup.Data(item.Name, unique, item.Name))
		if len(row) == 2 {
			rows = append(rows, row)
			row = tele.Row{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	markup.Inline(rows...)
	return markup
}

// projectsMarkup renders the fixed project list plus the "other" option.
func projectsMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	row := tele.Row{}
	for _, name := range projectOptions {
		row = append(row, markup.Data(name, uniqueProject, name))
	}
	row = append(row, markup.Data(btnOtherProject.Text, btnOtherProject.Unique))
	markup.Inline(row)
	return markup
}

func currencyMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCurrencyDollar, btnCurrencySum))
	return markup
}

func skipMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnSkipComment))
	return markup
}

func confirmMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnConfirm, btnCancelEntry))
	return markup
}

// contactMarkup asks for the transport-verified phone number.
func contactMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
	markup.Reply(markup.Row(markup.Contact("📱 Telefon raqamni yuborish")))
	return markup
}

// approveDenyMarkup binds the admin verdict buttons to a specific actor.
func approveDenyMarkup(userID int64) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	id := strconv.FormatInt(userID, 10)
	markup.Inline(markup.Row(
		markup.Data("✅ Ha", uniqueApprove, id),
		markup.Data("❌ Yoq", uniqueDeny, id),
	))
	return markup
}

// userListMarkup renders one button per user, the payload being the
// actor id.
func userListMarkup(users []domain.User, unique, prefix string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, u := range users {
		label := prefix + " " + u.Name + " (" + strconv.FormatInt(u.ID, 10) + ")"
		rows = append(rows, markup.Row(markup.Data(label, unique, strconv.FormatInt(u.ID, 10))))
	}
	markup.Inline(rows...)
	return markup
}

// catalogListMarkup renders one button per catalog item for admin
// delete/rename pickers.
func catalogListMarkup(items []domain.CatalogItem, unique, prefix string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, item := range items {
		rows = append(rows, markup.Row(markup.Data(prefix+" "+item.Name, unique, item.Name)))
	}
	markup.Inline(rows...)
	return markup
}
