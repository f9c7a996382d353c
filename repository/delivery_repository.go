package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment-service/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrRecordNotFound is returned when no row matches the order reference.
// An unknown reference is an expected outcome, not a store fault.
var ErrRecordNotFound = errors.New("delivery record not found")

type DeliveryRepository interface {
	// Find scans the configured range and returns the zero-based offset
	// and record of the first row whose first column equals orderRef.
	Find(ctx context.Context, orderRef string) (int, *models.DeliveryRecord, error)
	// MarkDelivered writes the delivered status and a UTC timestamp to
	// the row at the given offset.
	MarkDelivered(ctx context.Context, rowOffset int) error
}

// DecodeServiceAccount accepts a service-account credential that is
// either raw JSON or base64-encoded JSON. Raw parse is attempted first,
// then the base64 fallback.
func DecodeServiceAccount(blob string) ([]byte, error) {
	trimmed := strings.TrimSpace(blob)
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("service account credential is neither valid JSON nor base64: %w", err)
	}
	if !json.Valid(decoded) {
		return nil, errors.New("base64 service account credential does not decode to valid JSON")
	}
	return decoded, nil
}

type sheetsDeliveryRepo struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
	sheetName     string
	startRow      int // 1-based sheet row of the first data row in readRange
}

// NewSheetsDeliveryRepo authenticates to the Sheets API with the given
// service-account credential and binds the repository to one spreadsheet
// range, e.g. "Sheet1!A2:F".
func NewSheetsDeliveryRepo(ctx context.Context, credentialJSON []byte, spreadsheetID, readRange string) (DeliveryRepository, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	sheetName, startRow, err := parseRangeStart(readRange)
	if err != nil {
		return nil, err
	}

	return &sheetsDeliveryRepo{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		sheetName:     sheetName,
		startRow:      startRow,
	}, nil
}

func (r *sheetsDeliveryRepo) Find(ctx context.Context, orderRef string) (int, *models.DeliveryRecord, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.readRange).Context(ctx).Do()
	if err != nil {
		return 0, nil, fmt.Errorf("reading range %s: %w", r.readRange, err)
	}

	offset, record, ok := matchRow(resp.Values, orderRef)
	if !ok {
		return 0, nil, ErrRecordNotFound
	}
	return offset, record, nil
}

func (r *sheetsDeliveryRepo) MarkDelivered(ctx context.Context, rowOffset int) error {
	target := markRange(r.sheetName, r.startRow, rowOffset)
	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			models.StatusDelivered,
			time.Now().UTC().Format(time.RFC3339),
		}},
	}

	_, err := r.svc.Spreadsheets.Values.Update(r.spreadsheetID, target, values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("updating range %s: %w", target, err)
	}
	return nil
}

// matchRow scans forward and returns the first row whose first column
// equals orderRef. Cell values are string-coerced before comparison
// since the Sheets API returns untyped cells.
func matchRow(rows [][]interface{}, orderRef string) (int, *models.DeliveryRecord, bool) {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if cell(row, 0) != orderRef {
			continue
		}
		return i, &models.DeliveryRecord{
			OrderRef:           cell(row, 0),
			FileID:             cell(row, 1),
			ViewLink:           cell(row, 2),
			DirectDownloadLink: cell(row, 3),
			DeliveryStatus:     cell(row, 4),
			DeliveredAt:        cell(row, 5),
		}, true
	}
	return 0, nil, false
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprintf("%v", row[idx])
}

// markRange addresses the status/timestamp columns (E:F) of the data row
// at rowOffset within the scanned range.
func markRange(sheetName string, startRow, rowOffset int) string {
	row := startRow + rowOffset
	return fmt.Sprintf("%s!E%d:F%d", sheetName, row, row)
}

// parseRangeStart extracts the sheet name and the first data row from an
// A1-notation range such as "Sheet1!A2:F". A cell reference without a
// row number starts at row 1.
func parseRangeStart(readRange string) (string, int, error) {
	name, cells, found := strings.Cut(readRange, "!")
	if !found {
		return "", 0, fmt.Errorf("range %q has no sheet name", readRange)
	}

	start, _, _ := strings.Cut(cells, ":")
	row := 0
	for _, ch := range start {
		if ch >= '0' && ch <= '9' {
			row = row*10 + int(ch-'0')
		}
	}
	if row == 0 {
		row = 1
	}
	return name, row, nil
}
