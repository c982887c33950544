package repository

import "github.com/nexvolt/evretail-api/internal/domain/entity"

// BranchRepository is the persistence port for branches (keyed by code).
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByCode(code string) (*entity.Branch, error)
	Update(branch *entity.Branch) error
	List(limit, offset int) ([]*entity.Branch, error)
	Delete(code string) error
}
