package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/metrics"
)

// Motivos por defecto cuando la petición no trae uno.
const (
	defaultCreateReason   = "creación de inventario"
	defaultRelocateReason = "reubicación de inventario"
)

// UseCase es el motor transaccional de inventario: las cuatro operaciones que
// mutan existencias (Adjust, CreateInventory, EditInventory, Transfer) con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback. Cada operación abre
// una transacción, valida, muta y deja a lo sumo una entrada en la bitácora.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el motor con sus dependencias.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// AdjustInput entrada para un ajuste con signo en una ubicación.
type AdjustInput struct {
	ProductID  int64
	LocationID int64
	Quantity   int64 // con signo, nunca cero
	Reason     string
	Actor      string
}

// CreateInput entrada para crear explícitamente una fila de existencias.
type CreateInput struct {
	ProductID  int64
	LocationID int64
	Quantity   int64 // >= 0
	ReorderMin *int64
	ReorderMax *int64
	Reason     string // opcional, se aplica un motivo por defecto
	Actor      string
}

// EditInput entrada para editar umbrales o reubicar una fila de existencias.
// Quantity existe solo para rechazarla: la cantidad se muta únicamente vía
// ajustes y traslados.
type EditInput struct {
	InventoryID   int64
	ReorderMin    *int64
	ReorderMax    *int64
	NewLocationID *int64
	Reason        string
	Actor         string
	Quantity      *int64
}

// TransferInput entrada para trasladar unidades entre dos ubicaciones.
type TransferInput struct {
	ProductID             int64
	OriginLocationID      int64
	DestinationLocationID int64
	Quantity              int64 // > 0
	Reason                string
	Actor                 string
}

// Adjust aplica un cambio de cantidad con signo sobre el par
// (producto, ubicación): bloquea (o crea) la fila, verifica que el resultado
// no quede negativo ni exceda la capacidad de la ubicación, y registra un
// movimiento ADJUST en la misma transacción. Devuelve la cantidad resultante.
func (uc *UseCase) Adjust(ctx context.Context, in AdjustInput) (int64, error) {
	if in.Quantity == 0 {
		return 0, domain.Validation("la cantidad del ajuste no puede ser cero")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return 0, domain.Validation("el motivo es obligatorio")
	}
	if _, err := uc.mustProduct(in.ProductID); err != nil {
		return 0, err
	}
	location, err := uc.mustActiveLocation(in.LocationID)
	if err != nil {
		return 0, err
	}

	var result int64
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) error {
		rec, err := invRepo.GetByPairForUpdate(in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		var current int64
		if rec != nil {
			current = rec.Quantity
		}
		newQty := current + in.Quantity
		if newQty < 0 {
			return domain.PreconditionFailed("el stock no puede quedar negativo")
		}
		if location.Capacity != nil && newQty > *location.Capacity {
			return domain.PreconditionFailed("capacidad de la ubicación excedida (%d > %d)", newQty, *location.Capacity)
		}

		switch {
		case rec == nil && newQty > 0:
			// Primer movimiento sobre el par: se crea la fila sin umbrales.
			rec = &entity.InventoryRecord{
				ProductID:  in.ProductID,
				LocationID: in.LocationID,
				Quantity:   newQty,
			}
			if err := invRepo.Insert(rec); err != nil {
				return err
			}
		case rec != nil:
			rec.Quantity = newQty
			if err := invRepo.Update(rec); err != nil {
				return err
			}
		}
		// rec == nil && newQty == 0: no se crea fila alguna.

		if err := movRepo.Create(adjustMovement(in)); err != nil {
			return err
		}
		result = newQty
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.MovementsRecorded.WithLabelValues(entity.MovementKindADJUST).Inc()
	return result, nil
}

// CreateInventory inserta una fila de existencias nueva para el par
// (producto, ubicación). Falla con Conflict si el par ya existe; si la
// cantidad inicial es positiva registra un movimiento ADJUST hacia la
// ubicación con el motivo por defecto "creación de inventario".
func (uc *UseCase) CreateInventory(ctx context.Context, in CreateInput) (*entity.InventoryRecord, error) {
	if in.Quantity < 0 {
		return nil, domain.Validation("la cantidad inicial no puede ser negativa")
	}
	if err := validateThresholds(in.ReorderMin, in.ReorderMax); err != nil {
		return nil, err
	}
	if _, err := uc.mustProduct(in.ProductID); err != nil {
		return nil, err
	}
	location, err := uc.mustActiveLocation(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location.Capacity != nil && in.Quantity > *location.Capacity {
		return nil, domain.PreconditionFailed("capacidad de la ubicación excedida (%d > %d)", in.Quantity, *location.Capacity)
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = defaultCreateReason
	}

	rec := &entity.InventoryRecord{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		ReorderMin: in.ReorderMin,
		ReorderMax: in.ReorderMax,
	}
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) error {
		existing, err := invRepo.GetByPair(in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("ya existe inventario para el producto %d en la ubicación %d", in.ProductID, in.LocationID)
		}
		// El constraint único cubre la carrera entre el chequeo y el insert;
		// el repositorio traduce 23505 a Conflict.
		if err := invRepo.Insert(rec); err != nil {
			return err
		}
		if in.Quantity == 0 {
			// Sin unidades no hay movimiento: la bitácora no admite cantidad cero.
			return nil
		}
		dest := in.LocationID
		return movRepo.Create(&entity.Movement{
			ProductID:             in.ProductID,
			DestinationLocationID: &dest,
			Kind:                  entity.MovementKindADJUST,
			Quantity:              in.Quantity,
			Reason:                reason,
			Actor:                 defaultActor(in.Actor),
		})
	})
	if err != nil {
		return nil, err
	}
	if in.Quantity > 0 {
		metrics.MovementsRecorded.WithLabelValues(entity.MovementKindADJUST).Inc()
	}
	return rec, nil
}

// EditInventory modifica umbrales de reorden o reubica la fila. No toca la
// cantidad: cualquier petición que traiga cantidad se rechaza antes de abrir
// la transacción. Si la ubicación cambia y hay unidades, deja un movimiento
// TRANSFER que documenta la reubicación (las unidades no se duplican: la
// misma fila pasa a otra ubicación).
func (uc *UseCase) EditInventory(ctx context.Context, in EditInput) (*entity.InventoryRecord, error) {
	if in.Quantity != nil {
		return nil, domain.Validation("la cantidad no se modifica por edición; use ajustes o traslados")
	}
	if in.ReorderMin == nil && in.ReorderMax == nil && in.NewLocationID == nil {
		return nil, domain.Validation("debe indicar al menos un campo a editar")
	}
	if err := validateThresholds(in.ReorderMin, in.ReorderMax); err != nil {
		return nil, err
	}

	var updated *entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) error {
		rec, err := invRepo.GetByIDForUpdate(in.InventoryID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.NotFound("inventario %d no encontrado", in.InventoryID)
		}

		// Umbrales resueltos: el entrante pisa al existente y la pareja
		// resultante debe cumplir min <= max.
		min := rec.ReorderMin
		max := rec.ReorderMax
		if in.ReorderMin != nil {
			min = in.ReorderMin
		}
		if in.ReorderMax != nil {
			max = in.ReorderMax
		}
		if min != nil && max != nil && *min > *max {
			return domain.Validation("reorder_min no puede ser mayor que reorder_max")
		}
		rec.ReorderMin = min
		rec.ReorderMax = max

		moved := false
		oldLocation := rec.LocationID
		if in.NewLocationID != nil && *in.NewLocationID != rec.LocationID {
			dest, err := uc.mustActiveLocation(*in.NewLocationID)
			if err != nil {
				return err
			}
			if dest.Capacity != nil && rec.Quantity > *dest.Capacity {
				return domain.PreconditionFailed("la ubicación destino no tiene capacidad para %d unidades", rec.Quantity)
			}
			existing, err := invRepo.GetByPair(rec.ProductID, *in.NewLocationID)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.Conflict("ya existe inventario para el producto %d en la ubicación %d", rec.ProductID, *in.NewLocationID)
			}
			rec.LocationID = *in.NewLocationID
			moved = true
		}

		if err := invRepo.Update(rec); err != nil {
			return err
		}

		if moved && rec.Quantity > 0 {
			reason := strings.TrimSpace(in.Reason)
			if reason == "" {
				reason = defaultRelocateReason
			}
			origin := oldLocation
			destID := rec.LocationID
			if err := movRepo.Create(&entity.Movement{
				ProductID:             rec.ProductID,
				OriginLocationID:      &origin,
				DestinationLocationID: &destID,
				Kind:                  entity.MovementKindTRANSFER,
				Quantity:              rec.Quantity,
				Reason:                reason,
				Actor:                 defaultActor(in.Actor),
			}); err != nil {
				return err
			}
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Transfer mueve unidades de una ubicación a otra para un producto: resta en
// origen, suma (o crea) en destino y deja un único movimiento TRANSFER, todo
// en una transacción. Las filas se bloquean en orden ascendente de ubicación
// para que dos traslados concurrentes en sentidos opuestos no se interbloqueen.
func (uc *UseCase) Transfer(ctx context.Context, in TransferInput) error {
	if in.OriginLocationID == in.DestinationLocationID {
		return domain.Validation("la ubicación origen y destino deben ser distintas")
	}
	if in.Quantity <= 0 {
		return domain.Validation("la cantidad a trasladar debe ser positiva")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return domain.Validation("el motivo es obligatorio")
	}
	if _, err := uc.mustProduct(in.ProductID); err != nil {
		return err
	}
	if _, err := uc.mustActiveLocation(in.OriginLocationID); err != nil {
		return err
	}
	destination, err := uc.mustActiveLocation(in.DestinationLocationID)
	if err != nil {
		return err
	}

	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.MovementRepository) error {
		// Orden global de bloqueo: siempre la ubicación de id menor primero,
		// sin importar cuál sea origen o destino.
		first, second := in.OriginLocationID, in.DestinationLocationID
		if first > second {
			first, second = second, first
		}
		locked := make(map[int64]*entity.InventoryRecord, 2)
		for _, locID := range []int64{first, second} {
			rec, err := invRepo.GetByPairForUpdate(in.ProductID, locID)
			if err != nil {
				return err
			}
			locked[locID] = rec
		}

		origin := locked[in.OriginLocationID]
		if origin == nil || origin.Quantity < in.Quantity {
			return domain.PreconditionFailed("saldo insuficiente en la ubicación de origen")
		}
		dest := locked[in.DestinationLocationID]
		var destQty int64
		if dest != nil {
			destQty = dest.Quantity
		}
		if destination.Capacity != nil && destQty+in.Quantity > *destination.Capacity {
			return domain.PreconditionFailed("capacidad de la ubicación destino excedida (%d > %d)", destQty+in.Quantity, *destination.Capacity)
		}

		origin.Quantity -= in.Quantity
		if err := invRepo.Update(origin); err != nil {
			return err
		}
		if dest == nil {
			dest = &entity.InventoryRecord{
				ProductID:  in.ProductID,
				LocationID: in.DestinationLocationID,
				Quantity:   in.Quantity,
			}
			if err := invRepo.Insert(dest); err != nil {
				return err
			}
		} else {
			dest.Quantity += in.Quantity
			if err := invRepo.Update(dest); err != nil {
				return err
			}
		}

		originID := in.OriginLocationID
		destID := in.DestinationLocationID
		return movRepo.Create(&entity.Movement{
			ProductID:             in.ProductID,
			OriginLocationID:      &originID,
			DestinationLocationID: &destID,
			Kind:                  entity.MovementKindTRANSFER,
			Quantity:              in.Quantity,
			Reason:                strings.TrimSpace(in.Reason),
			Actor:                 defaultActor(in.Actor),
		})
	})
	if err != nil {
		return err
	}
	metrics.MovementsRecorded.WithLabelValues(entity.MovementKindTRANSFER).Inc()
	return nil
}

// mustProduct valida que el producto exista (lectura sin bloqueo).
func (uc *UseCase) mustProduct(id int64) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto %d no encontrado", id)
	}
	return product, nil
}

// mustActiveLocation valida que la ubicación exista y esté activa.
func (uc *UseCase) mustActiveLocation(id int64) (*entity.Location, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.NotFound("ubicación %d no encontrada", id)
	}
	if !location.Active {
		return nil, domain.PreconditionFailed("la ubicación %s está inactiva", location.Name)
	}
	return location, nil
}

func adjustMovement(in AdjustInput) *entity.Movement {
	mov := &entity.Movement{
		ProductID: in.ProductID,
		Kind:      entity.MovementKindADJUST,
		Quantity:  in.Quantity,
		Reason:    strings.TrimSpace(in.Reason),
		Actor:     defaultActor(in.Actor),
	}
	loc := in.LocationID
	if in.Quantity < 0 {
		mov.OriginLocationID = &loc
	} else {
		mov.DestinationLocationID = &loc
	}
	return mov
}

func defaultActor(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return entity.ActorSystem
	}
	return actor
}

func validateThresholds(min, max *int64) error {
	if min != nil && *min < 0 {
		return domain.Validation("reorder_min no puede ser negativo")
	}
	if max != nil && *max < 0 {
		return domain.Validation("reorder_max no puede ser negativo")
	}
	if min != nil && max != nil && *min > *max {
		return domain.Validation("reorder_min no puede ser mayor que reorder_max")
	}
	return nil
}
