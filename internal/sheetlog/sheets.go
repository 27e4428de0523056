package sheetlog

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetStore is the Google Sheets implementation of RowStore. One
// worksheet holds the whole log, header in row 1.
type SheetStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// OpenSheet authenticates with a service-account credential bundle and
// resolves the target worksheet, creating it with a header row when it
// does not exist yet.
func OpenSheet(ctx context.Context, credentialsJSON []byte, spreadsheetID, sheetName string) (*SheetStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	jwtCfg, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	s := &SheetStore{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
	if err := s.ensureSheet(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SheetStore) ensureSheet(ctx context.Context) error {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.sheetName {
			return nil
		}
	}

	// Worksheet missing: add it and seed the header row.
	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: s.sheetName},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create worksheet %q: %w", s.sheetName, err)
	}
	return s.AppendRow(ctx, headerRow)
}

func (s *SheetStore) AppendRow(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetName, &sheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets append failed: %w", err)
	}
	return nil
}

func (s *SheetStore) ReadAllRows(ctx context.Context) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets read failed: %w", err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
