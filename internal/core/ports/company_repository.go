package ports

import (
	"context"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

// CompanyRepository persists employers.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	FindByName(ctx context.Context, name string) (*domain.Company, error)
}
