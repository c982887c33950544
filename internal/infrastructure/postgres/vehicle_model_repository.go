package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

var _ repository.VehicleModelRepository = (*VehicleModelRepo)(nil)

// VehicleModelRepo VehicleModelRepository over PostgreSQL.
type VehicleModelRepo struct {
	pool *pgxpool.Pool
}

// NewVehicleModelRepository builds the vehicle catalog adapter.
func NewVehicleModelRepository(pool *pgxpool.Pool) *VehicleModelRepo {
	return &VehicleModelRepo{pool: pool}
}

// Create persists a model. Returns ErrDuplicate on a taken name.
func (r *VehicleModelRepo) Create(m *entity.VehicleModel) error {
	query := `
		INSERT INTO vehicle_models (id, name, motor_power, battery_capacity, driving_range, color, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		m.ID, m.Name, nullIfEmpty(m.MotorPower), nullIfEmpty(m.BatteryCapacity),
		nullIfEmpty(m.Range), nullIfEmpty(m.Color), m.Price, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle model: %w", err)
	}
	return nil
}

// GetByID returns a model, or nil.
func (r *VehicleModelRepo) GetByID(id string) (*entity.VehicleModel, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByName returns a model by its unique name, or nil.
func (r *VehicleModelRepo) GetByName(name string) (*entity.VehicleModel, error) {
	return r.getOne(`WHERE name = $1`, name)
}

func (r *VehicleModelRepo) getOne(where string, arg any) (*entity.VehicleModel, error) {
	query := `
		SELECT id, name, motor_power, battery_capacity, driving_range, color, price, created_at, updated_at
		FROM vehicle_models ` + where
	m, err := scanVehicleModel(r.pool.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle model: %w", err)
	}
	return m, nil
}

// Update rewrites a model's mutable fields.
func (r *VehicleModelRepo) Update(m *entity.VehicleModel) error {
	query := `
		UPDATE vehicle_models
		SET motor_power = $2, battery_capacity = $3, driving_range = $4, color = $5, price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		m.ID, nullIfEmpty(m.MotorPower), nullIfEmpty(m.BatteryCapacity),
		nullIfEmpty(m.Range), nullIfEmpty(m.Color), m.Price, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vehicle model: %w", err)
	}
	return nil
}

// List pages through the catalog ordered by name.
func (r *VehicleModelRepo) List(limit, offset int) ([]*entity.VehicleModel, error) {
	query := `
		SELECT id, name, motor_power, battery_capacity, driving_range, color, price, created_at, updated_at
		FROM vehicle_models ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicle models: %w", err)
	}
	defer rows.Close()
	var list []*entity.VehicleModel
	for rows.Next() {
		m, err := scanVehicleModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle model: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete removes a model by ID.
func (r *VehicleModelRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM vehicle_models WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle model: %w", err)
	}
	return nil
}

func scanVehicleModel(row pgx.Row) (*entity.VehicleModel, error) {
	var m entity.VehicleModel
	var motorPower, batteryCapacity, vrange, color *string
	err := row.Scan(&m.ID, &m.Name, &motorPower, &batteryCapacity, &vrange, &color,
		&m.Price, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.MotorPower = deref(motorPower)
	m.BatteryCapacity = deref(batteryCapacity)
	m.Range = deref(vrange)
	m.Color = deref(color)
	return &m, nil
}
