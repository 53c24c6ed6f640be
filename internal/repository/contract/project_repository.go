package contract

import (
	"context"

	"code-playground-be/internal/entity"
	"code-playground-be/internal/repository/specification"
)

// ProjectRepository stores immutable project snapshots. There is no
// Update on purpose: every save creates a new row.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id string) error
}
