package usecase

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones. Las ubicaciones no se
// eliminan: se desactivan, y el motor de inventario rechaza mutaciones sobre
// ubicaciones inactivas.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación nueva (activa por defecto).
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("el nombre es obligatorio")
	}
	if in.Capacity != nil && *in.Capacity <= 0 {
		return nil, domain.Validation("la capacidad debe ser positiva")
	}
	now := time.Now()
	location := &entity.Location{
		Name:      in.Name,
		Active:    true,
		Capacity:  in.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id int64) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.NotFound("ubicación %d no encontrada", id)
	}
	return toLocationResponse(location), nil
}

// Update actualiza nombre, capacidad o estado activo de una ubicación.
func (uc *LocationUseCase) Update(id int64, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.NotFound("ubicación %d no encontrada", id)
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return nil, domain.Validation("la capacidad debe ser positiva")
		}
		location.Capacity = in.Capacity
	}
	if in.Active != nil {
		location.Active = *in.Active
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Deactivate marca la ubicación como inactiva (no hay borrado físico).
func (uc *LocationUseCase) Deactivate(id int64) error {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.NotFound("ubicación %d no encontrada", id)
	}
	location.Active = false
	location.UpdatedAt = time.Now()
	return uc.repo.Update(location)
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Active:    l.Active,
		Capacity:  l.Capacity,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
