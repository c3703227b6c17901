package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// FlowType is the direction of a transaction.
type FlowType string

const (
	FlowInflow  FlowType = "Kirim"
	FlowOutflow FlowType = "Chiqim"
)

// Currency of the entered amount.
type Currency string

const (
	CurrencySum    Currency = "Sum"
	CurrencyDollar Currency = "Dollar"
)

// CommentPlaceholder is stored when the user skips the comment step.
const CommentPlaceholder = "-"

// Record is the transaction entry assembled across form steps.
// Category and PayType are weak references by name: deleting a catalog
// entry later does not affect records already exported.
type Record struct {
	Type      FlowType
	Category  string
	Project   string
	Currency  Currency
	Amount    string
	PayType   string
	Comment   string
	CreatedAt time.Time
}

// ValidAmount reports whether text is a non-negative number with at most
// one decimal point.
func ValidAmount(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	dots := 0
	digits := 0
	for _, r := range text {
		switch {
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		case unicode.IsDigit(r):
			digits++
		default:
			return false
		}
	}
	return digits > 0
}

// StripEmoji removes a leading emoji/symbol run from a display value,
// keeping the rest of the text intact.
func StripEmoji(text string) string {
	trimmed := strings.TrimLeftFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
	})
	return strings.TrimSpace(trimmed)
}

// Summary renders the record for the confirmation screen and admin
// notifications.
func (r Record) Summary() string {
	typeEmoji := "🔴"
	if r.Type == FlowInflow {
		typeEmoji = "🟢"
	}
	currencyEmoji := "💸"
	if r.Currency == CurrencyDollar {
		currencyEmoji = "💵"
	}
	comment := r.Comment
	if comment == "" {
		comment = CommentPlaceholder
	}
	return fmt.Sprintf(
		"<b>Natija:</b>\n"+
			"<b>Tur:</b> %s %s\n"+
			"<b>Kotegoriya:</b> %s\n"+
			"<b>Loyiha:</b> %s\n"+
			"<b>Valyuta:</b> %s %s\n"+
			"<b>Summa:</b> %s\n"+
			"<b>To'lov turi:</b> %s\n"+
			"<b>Izoh:</b> %s\n"+
			"<b>Vaqt:</b> %s",
		typeEmoji, r.Type,
		r.Category,
		r.Project,
		currencyEmoji, r.Currency,
		r.Amount,
		r.PayType,
		comment,
		r.CreatedAt.Format("2006-01-02 15:04:05"),
	)
}
