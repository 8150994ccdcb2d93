package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre existencias y bitácora. Agrega
// sobre las filas que escribe el motor; nunca muta estado.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const stockReportQuery = `
	SELECT p.id, p.code, p.name, p.price,
	       l.id, l.name,
	       i.quantity, i.reorder_min, i.reorder_max
	FROM inventory i
	JOIN products  p ON p.id = i.product_id
	JOIN locations l ON l.id = i.location_id`

// Stock devuelve el reporte de existencias, opcionalmente filtrado por ubicación.
func (r *ReportRepo) Stock(locationID *int64) ([]repository.StockReportRow, error) {
	query := stockReportQuery
	args := []any{}
	if locationID != nil {
		query += ` WHERE l.id = $1`
		args = append(args, *locationID)
	}
	query += ` ORDER BY p.name, l.name`
	return r.stockRows(query, args...)
}

// LowStock devuelve las filas con cantidad por debajo de su reorder_min.
func (r *ReportRepo) LowStock() ([]repository.StockReportRow, error) {
	query := stockReportQuery + `
	WHERE i.reorder_min IS NOT NULL AND i.quantity < i.reorder_min
	ORDER BY p.name, l.name`
	return r.stockRows(query)
}

// MovementHistory devuelve la bitácora denormalizada (con nombres de producto
// y ubicaciones) para exportes y consultas.
func (r *ReportRepo) MovementHistory(filter repository.MovementFilter, limit, offset int) ([]repository.MovementReportRow, error) {
	query := `
	SELECT m.id, p.code, p.name,
	       COALESCE(lo.name, ''), COALESCE(ld.name, ''),
	       m.kind, m.quantity, m.reason, m.actor, m.created_at
	FROM movements m
	JOIN products  p  ON p.id  = m.product_id
	LEFT JOIN locations lo ON lo.id = m.origin_location_id
	LEFT JOIN locations ld ON ld.id = m.destination_location_id
	WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, *filter.ProductID)
		pos++
	}
	if filter.LocationID != nil {
		query += fmt.Sprintf(" AND (m.origin_location_id = $%d OR m.destination_location_id = $%d)", pos, pos)
		args = append(args, *filter.LocationID)
		pos++
	}
	if filter.Kind != "" {
		query += fmt.Sprintf(" AND m.kind = $%d", pos)
		args = append(args, filter.Kind)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("movement history: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementReportRow
	for rows.Next() {
		var m repository.MovementReportRow
		if err := rows.Scan(&m.MovementID, &m.ProductCode, &m.ProductName,
			&m.OriginName, &m.DestinationName, &m.Kind, &m.Quantity,
			&m.Reason, &m.Actor, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement row: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *ReportRepo) stockRows(query string, args ...any) ([]repository.StockReportRow, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}
	defer rows.Close()
	var list []repository.StockReportRow
	for rows.Next() {
		var s repository.StockReportRow
		if err := rows.Scan(&s.ProductID, &s.ProductCode, &s.ProductName, &s.Price,
			&s.LocationID, &s.LocationName, &s.Quantity, &s.ReorderMin, &s.ReorderMax); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
