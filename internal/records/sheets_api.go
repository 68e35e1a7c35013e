package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/m3rciful/photobot/core/logger"
)

const spreadsheetMime = "application/vnd.google-apps.spreadsheet"

// GridOptions locates the worksheet backing the table.
type GridOptions struct {
	// CredentialsJSON is a service account key. Empty means the client options
	// must carry their own authentication.
	CredentialsJSON []byte
	// SpreadsheetID wins over SpreadsheetName when both are set.
	SpreadsheetID   string
	SpreadsheetName string
	// Worksheet is the tab title; empty selects the first tab.
	Worksheet string
	// RequestTimeout bounds each API call; zero leaves calls unbounded.
	RequestTimeout time.Duration

	ClientOptions []option.ClientOption
}

// APIGrid is a Grid backed by the Google Sheets v4 values API.
type APIGrid struct {
	svc           *sheets.Service
	spreadsheetID string
	title         string
	timeout       time.Duration
}

// OpenGrid authenticates, resolves the spreadsheet and the worksheet title.
func OpenGrid(ctx context.Context, opts GridOptions) (*APIGrid, error) {
	clientOpts := append([]option.ClientOption(nil), opts.ClientOptions...)
	if len(opts.CredentialsJSON) > 0 {
		clientOpts = append(clientOpts,
			option.WithCredentialsJSON(opts.CredentialsJSON),
			option.WithScopes(sheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope),
		)
	}

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}

	id := strings.TrimSpace(opts.SpreadsheetID)
	if id == "" {
		id, err = lookupSpreadsheet(ctx, clientOpts, opts.SpreadsheetName)
		if err != nil {
			return nil, err
		}
	}

	ss, err := svc.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets open %s: %w", id, err)
	}
	title, err := pickWorksheet(ss, opts.Worksheet)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, sheetsComponent, "sheets.open",
		slog.String("status", "ok"),
		slog.String("spreadsheet_id", id),
		slog.String("worksheet", title),
	)
	return &APIGrid{svc: svc, spreadsheetID: id, title: title, timeout: opts.RequestTimeout}, nil
}

func lookupSpreadsheet(ctx context.Context, clientOpts []option.ClientOption, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("sheets: spreadsheet id or name is required")
	}
	dsvc, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return "", fmt.Errorf("drive client: %w", err)
	}
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMime)
	list, err := dsvc.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive lookup %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("sheets: spreadsheet %q not found or not shared with the service account", name)
	}
	return list.Files[0].Id, nil
}

func pickWorksheet(ss *sheets.Spreadsheet, want string) (string, error) {
	if ss == nil || len(ss.Sheets) == 0 {
		return "", errors.New("sheets: spreadsheet has no worksheets")
	}
	want = strings.TrimSpace(want)
	for _, sh := range ss.Sheets {
		if sh.Properties == nil {
			continue
		}
		if want == "" || sh.Properties.Title == want {
			return sh.Properties.Title, nil
		}
	}
	return "", fmt.Errorf("sheets: worksheet %q not found", want)
}

// Title returns the resolved worksheet title.
func (g *APIGrid) Title() string { return g.title }

// Column returns the values of a column down to its last non-empty cell.
func (g *APIGrid) Column(ctx context.Context, col int) ([]string, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()
	letter := columnLetter(col)
	vr, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.a1(letter+":"+letter)).
		MajorDimension("COLUMNS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(vr.Values) == 0 {
		return nil, nil
	}
	out := make([]string, len(vr.Values[0]))
	for i, v := range vr.Values[0] {
		out[i] = cellString(v)
	}
	return out, nil
}

// Cell returns a single cell value, "" when unset.
func (g *APIGrid) Cell(ctx context.Context, row int64, col int) (string, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()
	vr, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, g.a1(cellRef(row, col))).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(vr.Values) == 0 || len(vr.Values[0]) == 0 {
		return "", nil
	}
	return cellString(vr.Values[0][0]), nil
}

// AppendRow adds values after the last row of the table. Values are written
// raw so phones keep their leading plus.
func (g *APIGrid) AppendRow(ctx context.Context, values []string) error {
	ctx, cancel := g.bound(ctx)
	defer cancel()
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	rng := g.a1("A:" + columnLetter(len(values)))
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rng, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// SetCell overwrites one cell.
func (g *APIGrid) SetCell(ctx context.Context, row int64, col int, value string) error {
	ctx, cancel := g.bound(ctx)
	defer cancel()
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, g.a1(cellRef(row, col)), &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (g *APIGrid) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *APIGrid) a1(ref string) string {
	return "'" + strings.ReplaceAll(g.title, "'", "''") + "'!" + ref
}

// columnLetter supports the A..Z range, which covers the fixed five columns.
func columnLetter(col int) string {
	if col < 1 || col > 26 {
		return "A"
	}
	return string(rune('A' + col - 1))
}

func cellRef(row int64, col int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
