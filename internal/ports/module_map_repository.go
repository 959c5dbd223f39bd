package ports

import (
	"context"

	"github.com/bnema/dx/internal/domain"
)

type ModuleMapRepository interface {
	Load(ctx context.Context) (domain.ModuleMap, error)
	Save(ctx context.Context, modules domain.ModuleMap) error
}
