package categories

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for category domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context) ([]Category, error)
	Find(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, cmd CreateCommand) (*Category, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
