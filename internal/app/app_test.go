package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/photobot/core/bootstrap"
	coreconfig "github.com/m3rciful/photobot/core/config"
	"github.com/m3rciful/photobot/internal/config"
	"github.com/m3rciful/photobot/internal/dialogue"
	"github.com/m3rciful/photobot/internal/records"
)

type memGrid struct {
	rows [][]string
}

func (g *memGrid) Column(_ context.Context, col int) ([]string, error) {
	out := make([]string, 0, len(g.rows))
	for _, r := range g.rows {
		if col-1 < len(r) {
			out = append(out, r[col-1])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

func (g *memGrid) Cell(_ context.Context, row int64, col int) (string, error) {
	if row < 1 || int(row) > len(g.rows) || col-1 >= len(g.rows[row-1]) {
		return "", nil
	}
	return g.rows[row-1][col-1], nil
}

func (g *memGrid) AppendRow(_ context.Context, values []string) error {
	g.rows = append(g.rows, append([]string(nil), values...))
	return nil
}

func (g *memGrid) SetCell(_ context.Context, row int64, col int, value string) error {
	g.rows[row-1][col-1] = value
	return nil
}

func noLogger(*coreconfig.Config) error { return nil }

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Telegram.Token = "1:test"
	cfg.Store.Backend = config.BackendMemory
	cfg.Support = config.SupportConfig{Phone: "+70000000000", Link: "https://t.me/support"}
	return cfg
}

func TestRunMemoryBackend(t *testing.T) {
	cfg := memoryConfig()
	res, engine, err := run(context.Background(), cfg, bootstrap.Options{LoggerInit: noLogger})
	require.NoError(t, err)
	require.NotNil(t, engine)
	assert.Nil(t, res.DB)
	assert.IsType(t, &records.Memory{}, res.Storage)

	r := engine.Start(context.Background(), dialogue.Inbound{UserID: 7})
	assert.Contains(t, r.Text, "+70000000000")
	require.NoError(t, res.Close())
}

type foreignConfig struct{}

func (foreignConfig) CoreConfig() *coreconfig.Config { return &coreconfig.Config{} }

func TestBootstrapRejectsForeignConfig(t *testing.T) {
	_, err := Bootstrap(context.Background(), foreignConfig{})
	require.Error(t, err)
}

func TestOpenStoragePostgresNeedsDB(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Backend = config.BackendPostgres
	_, err := openStorage(cfg)(context.Background(), nil)
	require.Error(t, err)
}

func TestSheetsCredentials(t *testing.T) {
	data, err := sheetsCredentials(config.SheetsConfig{CredentialsJSON: ` {"type":"service_account"} `})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"service_account"}`, string(data))

	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"k":1}`), 0o600))
	data, err = sheetsCredentials(config.SheetsConfig{CredentialsFile: path})
	require.NoError(t, err)
	assert.Equal(t, `{"k":1}`, string(data))

	_, err = sheetsCredentials(config.SheetsConfig{CredentialsFile: filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	_, err = sheetsCredentials(config.SheetsConfig{})
	require.Error(t, err)
}

func TestSeedHeader(t *testing.T) {
	grid := &memGrid{}
	store := records.NewSheets(grid, nil)

	require.NoError(t, seedHeader(context.Background(), store))
	require.Len(t, grid.rows, 1)
	assert.Equal(t, records.Header, grid.rows[0])

	require.NoError(t, seedHeader(context.Background(), store))
	assert.Len(t, grid.rows, 1)

	require.Error(t, seedHeader(context.Background(), records.NewMemory(nil)))
}

func TestProvideEngine(t *testing.T) {
	cfg := memoryConfig()

	engine, err := provideEngine(context.Background(), cfg, records.NewMemory(nil))
	require.NoError(t, err)
	assert.NotNil(t, engine)

	_, err = provideEngine(context.Background(), "nope", records.NewMemory(nil))
	require.Error(t, err)

	_, err = provideEngine(context.Background(), cfg, struct{}{})
	require.Error(t, err)
}
