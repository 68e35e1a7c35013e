package bootstrap

import "context"

// Storage is the backend opened during bootstrap and handed to modules.
type Storage any

// Seeder prepares a freshly opened storage, for example by writing a header
// row or reference data.
type Seeder interface {
	Seed(ctx context.Context, storage Storage) error
}

// SeederFunc adapts a function to Seeder.
type SeederFunc func(ctx context.Context, storage Storage) error

// Seed calls f.
func (f SeederFunc) Seed(ctx context.Context, storage Storage) error {
	return f(ctx, storage)
}

// ServiceProvider builds application services on top of the storage.
type ServiceProvider interface {
	Provide(ctx context.Context, cfg any, storage Storage) (any, error)
}

// TypedServiceProvider returns services without a type assertion.
type TypedServiceProvider[T any] interface {
	ServiceProvider
	ProvideTyped(ctx context.Context, cfg any, storage Storage) (T, error)
}

// TypedServiceProviderFunc adapts a typed function to both provider
// interfaces.
type TypedServiceProviderFunc[T any] func(ctx context.Context, cfg any, storage Storage) (T, error)

// Provide satisfies ServiceProvider.
func (f TypedServiceProviderFunc[T]) Provide(ctx context.Context, cfg any, storage Storage) (any, error) {
	return f(ctx, cfg, storage)
}

// ProvideTyped calls f.
func (f TypedServiceProviderFunc[T]) ProvideTyped(ctx context.Context, cfg any, storage Storage) (T, error) {
	return f(ctx, cfg, storage)
}

// Modules groups the optional steps run after storage is open.
type Modules struct {
	Seeders  []Seeder
	Services ServiceProvider
}
