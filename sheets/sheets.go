package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scope is the OAuth scope required to read and write the spreadsheet.
const Scope = "https://www.googleapis.com/auth/spreadsheets"

// API is the slice of the Google Sheets values API used by the writer and
// the export command. Ranges use A1 notation ('Certo_Market!A2:C5'); a bare
// worksheet name addresses the whole worksheet.
type API interface {
	Get(ctx context.Context, area string) ([][]interface{}, error)
	Update(ctx context.Context, area string, values [][]interface{}) error
	Clear(ctx context.Context, area string) error
	VerifyWorksheet(ctx context.Context, name string) error
}

// Client wraps a Google Sheets service bound to the single shared
// spreadsheet.
type Client struct {
	google        *sheets.Service
	spreadsheetID string
}

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)
var spreadsheetID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ParseSpreadsheetID accepts either a bare spreadsheet ID or a full
// 'https://docs.google.com/spreadsheets/d/...' URL and returns the ID.
func ParseSpreadsheetID(v string) (string, error) {
	s := strings.TrimSpace(v)

	if match := spreadsheetURL.FindStringSubmatch(s); len(match) == 2 && match[1] != "" {
		return match[1], nil
	}

	if spreadsheetID.MatchString(s) {
		return s, nil
	}

	return "", fmt.Errorf("invalid spreadsheet '%s' - expected a spreadsheet ID or a URL like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'", v)
}

// NewClient authenticates with the service account credentials file and
// returns a client bound to the spreadsheet.
func NewClient(ctx context.Context, credentials string, spreadsheet string) (*Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file (%w)", err)
	}

	config, err := google.JWTConfigFromJSON(b, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials (%w)", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client (%w)", err)
	}

	return &Client{
		google:        service,
		spreadsheetID: spreadsheet,
	}, nil
}

func (c *Client) Get(ctx context.Context, area string) ([][]interface{}, error) {
	response, err := c.google.Spreadsheets.Values.Get(c.spreadsheetID, area).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from worksheet (%w)", err)
	}

	return response.Values, nil
}

func (c *Client) Update(ctx context.Context, area string, values [][]interface{}) error {
	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data: []*sheets.ValueRange{
			{
				Range:  area,
				Values: values,
			},
		},
	}

	if _, err := c.google.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to update worksheet (%w)", err)
	}

	return nil
}

func (c *Client) Clear(ctx context.Context, area string) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: []string{area},
	}

	if _, err := c.google.Spreadsheets.Values.BatchClear(c.spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to clear worksheet (%w)", err)
	}

	return nil
}

// VerifyWorksheet checks that the named worksheet exists in the spreadsheet,
// matching the title case-insensitively.
func (c *Client) VerifyWorksheet(ctx context.Context, name string) error {
	spreadsheet, err := c.google.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(name)) {
			return nil
		}
	}

	return fmt.Errorf("unable to identify worksheet '%s'", name)
}
