package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx). Las variantes ForUpdate emiten SELECT ... FOR UPDATE
// y solo tienen sentido dentro de una transacción.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, location_id, quantity, reorder_min, reorder_max, created_at, updated_at`

// GetByPair obtiene la fila de existencias del par (producto, ubicación); nil si no existe.
func (r *InventoryRepo) GetByPair(productID, locationID int64) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE product_id = $1 AND location_id = $2`
	return r.scanOne(query, productID, locationID)
}

// GetByPairForUpdate obtiene y bloquea la fila del par (SELECT FOR UPDATE); nil si no existe.
func (r *InventoryRepo) GetByPairForUpdate(productID, locationID int64) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	return r.scanOne(query, productID, locationID)
}

// GetByID obtiene la fila de existencias por id; nil si no existe.
func (r *InventoryRepo) GetByID(id int64) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene y bloquea la fila por id; nil si no existe.
func (r *InventoryRepo) GetByIDForUpdate(id int64) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE id = $1
		FOR UPDATE`
	return r.scanOne(query, id)
}

// Insert crea la fila de existencias y asigna el id generado. Una violación
// del constraint único (product_id, location_id) se traduce a Conflict.
func (r *InventoryRepo) Insert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (product_id, location_id, quantity, reorder_min, reorder_max, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		record.ProductID, record.LocationID, record.Quantity, record.ReorderMin, record.ReorderMax,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("ya existe inventario para el producto %d en la ubicación %d", record.ProductID, record.LocationID)
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// Update persiste cantidad, umbrales y ubicación de una fila existente.
func (r *InventoryRepo) Update(record *entity.InventoryRecord) error {
	query := `
		UPDATE inventory
		SET location_id = $2, quantity = $3, reorder_min = $4, reorder_max = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.LocationID, record.Quantity, record.ReorderMin, record.ReorderMax,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("ya existe inventario para el producto %d en la ubicación %d", record.ProductID, record.LocationID)
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// List lista existencias con filtros opcionales y paginación.
func (r *InventoryRepo) List(filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, *filter.ProductID)
		pos++
	}
	if filter.LocationID != nil {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, *filter.LocationID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY product_id, location_id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.LocationID, &rec.Quantity,
			&rec.ReorderMin, &rec.ReorderMax, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) scanOne(query string, args ...any) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&rec.ID, &rec.ProductID, &rec.LocationID, &rec.Quantity,
		&rec.ReorderMin, &rec.ReorderMax, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &rec, nil
}
