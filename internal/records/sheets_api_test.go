package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type sheetsCall struct {
	method string
	path   string
	input  string
	values [][]interface{}
}

type fakeSheetsAPI struct {
	mu     sync.Mutex
	calls  []sheetsCall
	column []interface{}
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := sheetsCall{method: r.Method, path: r.URL.Path, input: r.URL.Query().Get("valueInputOption")}
	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		var vr sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&vr)
		call.values = vr.Values
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/v4/spreadsheets/sid":
		_, _ = w.Write([]byte(`{"spreadsheetId":"sid","sheets":[{"properties":{"title":"Orders"}},{"properties":{"title":"Archive"}}]}`))
	case strings.HasSuffix(r.URL.Path, ":append"):
		_, _ = w.Write([]byte(`{"spreadsheetId":"sid"}`))
	case r.Method == http.MethodPut:
		_, _ = w.Write([]byte(`{"spreadsheetId":"sid","updatedCells":1}`))
	case strings.HasSuffix(r.URL.Path, "!A:A"):
		body, _ := json.Marshal(map[string]any{
			"range":          "Orders!A1:A3",
			"majorDimension": "COLUMNS",
			"values":         [][]interface{}{f.column},
		})
		_, _ = w.Write(body)
	case strings.HasSuffix(r.URL.Path, "!E2"):
		_, _ = w.Write([]byte(`{"range":"Orders!E2","majorDimension":"ROWS","values":[["print all"]]}`))
	default:
		_, _ = w.Write([]byte(`{"range":"Orders!E9"}`))
	}
}

func openTestGrid(t *testing.T, api *fakeSheetsAPI, worksheet string) *APIGrid {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	g, err := OpenGrid(context.Background(), GridOptions{
		SpreadsheetID: "sid",
		Worksheet:     worksheet,
		ClientOptions: []option.ClientOption{
			option.WithEndpoint(srv.URL + "/"),
			option.WithHTTPClient(srv.Client()),
		},
	})
	require.NoError(t, err)
	return g
}

func TestAPIGridResolvesFirstWorksheet(t *testing.T) {
	g := openTestGrid(t, &fakeSheetsAPI{}, "")
	assert.Equal(t, "Orders", g.Title())
}

func TestAPIGridNamedWorksheet(t *testing.T) {
	g := openTestGrid(t, &fakeSheetsAPI{}, "Archive")
	assert.Equal(t, "Archive", g.Title())
}

func TestAPIGridColumnAndCell(t *testing.T) {
	api := &fakeSheetsAPI{column: []interface{}{"phone", "+79991234567", ""}}
	g := openTestGrid(t, api, "")
	ctx := context.Background()

	col, err := g.Column(ctx, ColPhone)
	require.NoError(t, err)
	assert.Equal(t, []string{"phone", "+79991234567", ""}, col)

	v, err := g.Cell(ctx, 2, ColComment)
	require.NoError(t, err)
	assert.Equal(t, "print all", v)

	empty, err := g.Cell(ctx, 9, ColComment)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAPIGridWritesRawValues(t *testing.T) {
	api := &fakeSheetsAPI{}
	g := openTestGrid(t, api, "")
	ctx := context.Background()

	require.NoError(t, g.AppendRow(ctx, []string{"+79991234567", "42", "alice", "2025-03-14 09:26:53", ""}))
	require.NoError(t, g.SetCell(ctx, 2, ColComment, "new request text"))

	api.mu.Lock()
	defer api.mu.Unlock()
	var appendCall, putCall *sheetsCall
	for i := range api.calls {
		c := &api.calls[i]
		switch {
		case strings.HasSuffix(c.path, ":append"):
			appendCall = c
		case c.method == http.MethodPut:
			putCall = c
		}
	}
	require.NotNil(t, appendCall)
	assert.Equal(t, "/v4/spreadsheets/sid/values/'Orders'!A:E:append", appendCall.path)
	assert.Equal(t, "RAW", appendCall.input)
	require.Len(t, appendCall.values, 1)
	assert.Equal(t, "+79991234567", appendCall.values[0][0])

	require.NotNil(t, putCall)
	assert.Equal(t, "/v4/spreadsheets/sid/values/'Orders'!E2", putCall.path)
	assert.Equal(t, "RAW", putCall.input)
	assert.Equal(t, [][]interface{}{{"new request text"}}, putCall.values)
}

func TestOpenGridRequiresSpreadsheet(t *testing.T) {
	_, err := OpenGrid(context.Background(), GridOptions{
		ClientOptions: []option.ClientOption{option.WithHTTPClient(http.DefaultClient)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id or name is required")
}

func TestPickWorksheetMissing(t *testing.T) {
	_, err := pickWorksheet(&sheets.Spreadsheet{Sheets: []*sheets.Sheet{{Properties: &sheets.SheetProperties{Title: "A"}}}}, "B")
	assert.Error(t, err)
}
