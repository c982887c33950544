package repository

import "github.com/nexvolt/evretail-api/internal/domain/entity"

// VehicleModelRepository is the persistence port for the vehicle catalog.
type VehicleModelRepository interface {
	Create(m *entity.VehicleModel) error
	GetByID(id string) (*entity.VehicleModel, error)
	GetByName(name string) (*entity.VehicleModel, error)
	Update(m *entity.VehicleModel) error
	List(limit, offset int) ([]*entity.VehicleModel, error)
	Delete(id string) error
}

// SparePartRepository is the persistence port for the spare-part catalog.
type SparePartRepository interface {
	Create(p *entity.SparePart) error
	GetByID(id string) (*entity.SparePart, error)
	GetByPartCode(code string) (*entity.SparePart, error)
	Update(p *entity.SparePart) error
	List(limit, offset int) ([]*entity.SparePart, error)
	Delete(id string) error
}
