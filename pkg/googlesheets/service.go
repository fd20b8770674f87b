package googlesheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// getSheetsService creates a Sheets client from a valid access token
func (s *Service) getSheetsService(ctx context.Context, accessToken string) (*sheets.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	client := oauth2.NewClient(ctx, src)

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %v", err)
	}

	return srv, nil
}

// CreateSpreadsheet creates a new spreadsheet, writes the given rows starting
// at A1, styles the first row (bold, white on blue) and freezes it. Returns
// the spreadsheet id and edit URL.
func (s *Service) CreateSpreadsheet(ctx context.Context, accessToken, title string, rows [][]interface{}) (string, string, error) {
	srv, err := s.getSheetsService(ctx, accessToken)
	if err != nil {
		return "", "", err
	}

	ss, err := srv.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	_, err = srv.Spreadsheets.Values.Update(ss.SpreadsheetId, "A1", &sheets.ValueRange{
		Values: rows,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("unable to write rows: %w", err)
	}

	var sheetID int64
	if len(ss.Sheets) > 0 && ss.Sheets[0].Properties != nil {
		sheetID = ss.Sheets[0].Properties.SheetId
	}

	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						// Google blue #4285F4
						BackgroundColor: &sheets.Color{Red: 0.26, Green: 0.52, Blue: 0.96},
						TextFormat: &sheets.TextFormat{
							Bold:            true,
							ForegroundColor: &sheets.Color{Red: 1, Green: 1, Blue: 1},
						},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	_, err = srv.Spreadsheets.BatchUpdate(ss.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("unable to style header row: %w", err)
	}

	return ss.SpreadsheetId, ss.SpreadsheetUrl, nil
}
