package birthday

import "context"

// Repository defines the operations for persisting and retrieving Birthday records.
type Repository interface {
	Create(ctx context.Context, b *Birthday) error
	GetByID(ctx context.Context, id string) (*Birthday, error)
	List(ctx context.Context) ([]*Birthday, error)
	// Update writes the user-editable fields. It never changes LastNotifiedYear.
	Update(ctx context.Context, b *Birthday) error
	Delete(ctx context.Context, id string) error
	// SetLastNotifiedYear is reserved for the reminder evaluator.
	SetLastNotifiedYear(ctx context.Context, id string, year int) error
}
