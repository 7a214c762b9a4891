package catalog

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// SheetsSource loads the catalog from the first worksheet of a Google
// Sheet: header row gives column names, every following row is one
// venue. Rows without a name are dropped with a diagnostic, not fatal.
type SheetsSource struct {
	spreadsheetID   string
	credentialsJSON []byte
}

var spreadsheetIDRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

func NewSheetsSource(sheetURL, credentialsJSON string) (*SheetsSource, error) {
	m := spreadsheetIDRe.FindStringSubmatch(sheetURL)
	if m == nil {
		return nil, fmt.Errorf("cannot extract spreadsheet id from %q", sheetURL)
	}
	return &SheetsSource{
		spreadsheetID:   m[1],
		credentialsJSON: []byte(credentialsJSON),
	}, nil
}

func (s *SheetsSource) Load(ctx context.Context) ([]*models.CatalogEntry, error) {
	svc, err := sheets.NewService(ctx, option.WithCredentialsJSON(s.credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	resp, err := svc.Spreadsheets.Values.Get(s.spreadsheetID, "A:Z").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet values: %w", err)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, h := range resp.Values[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(fmt.Sprint(h)))
	}

	var entries []*models.CatalogEntry
	for rowNum, row := range resp.Values[1:] {
		rec := make(map[string]string, len(headers))
		for i, cell := range row {
			if i < len(headers) {
				rec[headers[i]] = fmt.Sprint(cell)
			}
		}
		entry, ok := FromRecord(rec)
		if !ok {
			log.Printf("sheet row %d dropped: no name", rowNum+2)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
