package template

import "context"

// Repository defines the operations for persisting message templates.
type Repository interface {
	List(ctx context.Context) ([]*Template, error)
	Create(ctx context.Context, t *Template) error
	// CreateMany inserts all templates atomically.
	CreateMany(ctx context.Context, ts []*Template) error
	Delete(ctx context.Context, id string) error
}
