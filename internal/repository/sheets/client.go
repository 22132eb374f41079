// Package sheets mirrors created mix records into a Google spreadsheet.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/mixlog/internal/config"
)

// Client appends raw rows to one spreadsheet.
type Client struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
}

// NewClient authenticates with the service account file named in cfg.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}
	return &Client{values: service.Spreadsheets.Values, spreadsheetID: cfg.SpreadsheetID}, nil
}

// AppendRows adds rows below the table found in sheetRange and returns the range written.
// Cells are stored as given, without spreadsheet parsing, so ids and timestamps stay text.
func (c *Client) AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) (string, error) {
	resp, err := c.values.Append(c.spreadsheetID, sheetRange, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append %d rows into %s: %w", len(rows), sheetRange, err)
	}
	if resp.Updates == nil {
		return "", nil
	}
	return resp.Updates.UpdatedRange, nil
}
