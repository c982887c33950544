package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// CatalogUseCase CRUD for the vehicle-model and spare-part registries.
type CatalogUseCase struct {
	vehicleRepo repository.VehicleModelRepository
	partRepo    repository.SparePartRepository
}

// NewCatalogUseCase builds the use case.
func NewCatalogUseCase(vehicleRepo repository.VehicleModelRepository, partRepo repository.SparePartRepository) *CatalogUseCase {
	return &CatalogUseCase{vehicleRepo: vehicleRepo, partRepo: partRepo}
}

// ── Vehicle models ────────────────────────────────────────────────────────────

// CreateVehicleModel registers a model. Returns ErrDuplicate when the name is taken.
func (uc *CatalogUseCase) CreateVehicleModel(in dto.CreateVehicleModelRequest) (*dto.VehicleModelResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	m := &entity.VehicleModel{
		ID:              uuid.New().String(),
		Name:            in.Name,
		MotorPower:      in.MotorPower,
		BatteryCapacity: in.BatteryCapacity,
		Range:           in.Range,
		Color:           in.Color,
		Price:           in.Price,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.vehicleRepo.Create(m); err != nil {
		return nil, err
	}
	return toVehicleModelResponse(m), nil
}

// GetVehicleModel returns a model by ID, or ErrNotFound.
func (uc *CatalogUseCase) GetVehicleModel(id string) (*dto.VehicleModelResponse, error) {
	m, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toVehicleModelResponse(m), nil
}

// UpdateVehicleModel patches a model; nil fields are left unchanged.
func (uc *CatalogUseCase) UpdateVehicleModel(id string, in dto.UpdateVehicleModelRequest) (*dto.VehicleModelResponse, error) {
	m, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.MotorPower != nil {
		m.MotorPower = *in.MotorPower
	}
	if in.BatteryCapacity != nil {
		m.BatteryCapacity = *in.BatteryCapacity
	}
	if in.Range != nil {
		m.Range = *in.Range
	}
	if in.Color != nil {
		m.Color = *in.Color
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		m.Price = *in.Price
	}
	m.UpdatedAt = time.Now()
	if err := uc.vehicleRepo.Update(m); err != nil {
		return nil, err
	}
	return toVehicleModelResponse(m), nil
}

// ListVehicleModels pages through the vehicle catalog.
func (uc *CatalogUseCase) ListVehicleModels(limit, offset int) (*dto.VehicleModelListResponse, error) {
	list, err := uc.vehicleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehicleModelResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toVehicleModelResponse(m))
	}
	return &dto.VehicleModelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteVehicleModel removes a model by ID.
func (uc *CatalogUseCase) DeleteVehicleModel(id string) error {
	m, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.vehicleRepo.Delete(id)
}

// ── Spare parts ───────────────────────────────────────────────────────────────

// CreateSparePart registers a part. Returns ErrDuplicate when the part code is taken.
func (uc *CatalogUseCase) CreateSparePart(in dto.CreateSparePartRequest) (*dto.SparePartResponse, error) {
	if in.PartCode == "" || in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.SparePart{
		ID:        uuid.New().String(),
		PartCode:  in.PartCode,
		Name:      in.Name,
		HSNCode:   in.HSNCode,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.partRepo.Create(p); err != nil {
		return nil, err
	}
	return toSparePartResponse(p), nil
}

// GetSparePart returns a part by ID, or ErrNotFound.
func (uc *CatalogUseCase) GetSparePart(id string) (*dto.SparePartResponse, error) {
	p, err := uc.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toSparePartResponse(p), nil
}

// UpdateSparePart patches a part; nil fields are left unchanged.
func (uc *CatalogUseCase) UpdateSparePart(id string, in dto.UpdateSparePartRequest) (*dto.SparePartResponse, error) {
	p, err := uc.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.HSNCode != nil {
		p.HSNCode = *in.HSNCode
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	p.UpdatedAt = time.Now()
	if err := uc.partRepo.Update(p); err != nil {
		return nil, err
	}
	return toSparePartResponse(p), nil
}

// ListSpareParts pages through the spare-part catalog.
func (uc *CatalogUseCase) ListSpareParts(limit, offset int) (*dto.SparePartListResponse, error) {
	list, err := uc.partRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SparePartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toSparePartResponse(p))
	}
	return &dto.SparePartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteSparePart removes a part by ID.
func (uc *CatalogUseCase) DeleteSparePart(id string) error {
	p, err := uc.partRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.partRepo.Delete(id)
}

func toVehicleModelResponse(m *entity.VehicleModel) *dto.VehicleModelResponse {
	return &dto.VehicleModelResponse{
		ID:              m.ID,
		Name:            m.Name,
		MotorPower:      m.MotorPower,
		BatteryCapacity: m.BatteryCapacity,
		Range:           m.Range,
		Color:           m.Color,
		Price:           m.Price,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toSparePartResponse(p *entity.SparePart) *dto.SparePartResponse {
	return &dto.SparePartResponse{
		ID:        p.ID,
		PartCode:  p.PartCode,
		Name:      p.Name,
		HSNCode:   p.HSNCode,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
