package gsheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/petsivet/petsi-backend/pkg/provider"
)

// Client is a thin read-only binding to the Google Sheets v4 API,
// authenticated with the spreadsheets.readonly scope. Constructed once at
// startup and injected where needed.
type Client struct {
	values *sheets.SpreadsheetsValuesService
}

// NewClient creates a Sheets client from a service-account key file. Extra
// options are appended after the credentials, so tests can override the
// endpoint and authentication.
func NewClient(ctx context.Context, keyFile string, opts ...option.ClientOption) (*Client, error) {
	var all []option.ClientOption
	if keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account key: %w", err)
		}
		all = append(all, option.WithCredentials(creds))
	}
	all = append(all, opts...)

	svc, err := sheets.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{values: svc.Spreadsheets.Values}, nil
}

// GetRange reads a spreadsheet range and returns its rows with every cell
// coerced to a string. An empty range yields an empty slice, not an error.
func (c *Client) GetRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	res, err := c.values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, provider.Wrap(err)
	}

	rows := make([][]string, 0, len(res.Values))
	for _, raw := range res.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprintf("%v", cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
