package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/photobot/core/config"
	coredatabase "github.com/m3rciful/photobot/core/database"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunOrdersSteps(t *testing.T) {
	var steps []string
	res, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		AppConfig:  "app",
		LoggerInit: noLogger,
		OpenStorage: func(_ context.Context, db *sqlx.DB) (Storage, error) {
			assert.Nil(t, db)
			steps = append(steps, "open")
			return "grid", nil
		},
		Modules: Modules{
			Seeders: []Seeder{SeederFunc(func(_ context.Context, s Storage) error {
				steps = append(steps, "seed:"+s.(string))
				return nil
			})},
			Services: TypedServiceProviderFunc[string](func(_ context.Context, cfg any, s Storage) (string, error) {
				steps = append(steps, "provide")
				return cfg.(string) + "+" + s.(string), nil
			}),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "seed:grid", "provide"}, steps)
	assert.Equal(t, "app+grid", res.Services)
	assert.NoError(t, res.Close())
}

func TestRunStopsOnFailure(t *testing.T) {
	boom := errors.New("boom")

	_, err := Run(context.Background(), Options{Config: &coreconfig.Config{}, LoggerInit: func(*coreconfig.Config) error { return boom }})
	assert.ErrorIs(t, err, boom)

	_, err = Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		LoggerInit: noLogger,
		Database:   &coredatabase.Config{Host: "db"},
		Connect: func(context.Context, coredatabase.Config) (*sqlx.DB, error) {
			return nil, boom
		},
	})
	assert.ErrorIs(t, err, boom)

	seeded := false
	_, err = Run(context.Background(), Options{
		Config:      &coreconfig.Config{},
		LoggerInit:  noLogger,
		OpenStorage: func(context.Context, *sqlx.DB) (Storage, error) { return nil, boom },
		Modules: Modules{Seeders: []Seeder{SeederFunc(func(context.Context, Storage) error {
			seeded = true
			return nil
		})}},
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, seeded)

	_, err = Run(context.Background(), Options{LoggerInit: noLogger})
	assert.Error(t, err)
}

func TestTypedProvider(t *testing.T) {
	p := TypedServiceProviderFunc[int](func(context.Context, any, Storage) (int, error) { return 7, nil })
	var _ TypedServiceProvider[int] = p
	n, err := p.ProvideTyped(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
