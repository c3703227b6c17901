package sink

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"kapitalbot/internal/domain"
)

// SheetsSink appends records to a Google Sheets worksheet.
//
// The column order is a compatibility contract with the existing sheet:
// date, time, dollar amount, sum amount, flow type, pay type, category,
// project, comment, reserved, user name (A through K).
type SheetsSink struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsSink builds a sink authenticated with a service-account
// credentials file.
func NewSheetsSink(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*SheetsSink, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating sheets service")
	}

	return &SheetsSink{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// Append writes one row to the configured worksheet.
func (s *SheetsSink) Append(ctx context.Context, rec domain.Record, userName string) error {
	row := BuildRow(rec, userName)

	values := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return errors.Wrap(err, "appending sheet row")
}

// BuildRow lays the record out in the fixed export column order. The
// amount lands in the dollar or sum column according to the currency;
// leading emoji are stripped from the type and category values.
func BuildRow(rec domain.Record, userName string) []interface{} {
	dollarAmount := ""
	sumAmount := ""
	if rec.Currency == domain.CurrencyDollar {
		dollarAmount = rec.Amount
	} else {
		sumAmount = rec.Amount
	}

	return []interface{}{
		rec.CreatedAt.Format("1/2/2006"),
		rec.CreatedAt.Format("15:04"),
		dollarAmount,
		sumAmount,
		domain.StripEmoji(string(rec.Type)),
		rec.PayType,
		domain.StripEmoji(rec.Category),
		rec.Project,
		rec.Comment,
		"",
		userName,
	}
}
