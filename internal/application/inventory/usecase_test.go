package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func newEngine(f *fixture) *inventory.UseCase {
	return inventory.NewUseCase(&memTxRunner{store: f.store}, f.products, f.locations)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

// Un ajuste positivo sobre un par sin fila previa crea la fila y deja un
// movimiento ADJUST con la ubicación como destino.
func TestAdjust_CreaFilaYRegistraMovimiento(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)

	qty, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: 1, LocationID: 1, Quantity: 10, Reason: "reabastecimiento",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty, "la cantidad resultante debe ser 10")

	rec := f.store.findByPair(1, 1)
	require.NotNil(t, rec, "debe existir la fila de existencias")
	assert.Equal(t, int64(10), rec.Quantity)

	require.Len(t, f.store.movements, 1, "debe quedar exactamente un movimiento")
	mov := f.store.movements[0]
	assert.Equal(t, entity.MovementKindADJUST, mov.Kind)
	assert.Equal(t, int64(10), mov.Quantity)
	assert.Nil(t, mov.OriginLocationID, "un ajuste positivo no tiene origen")
	require.NotNil(t, mov.DestinationLocationID)
	assert.Equal(t, int64(1), *mov.DestinationLocationID)
	assert.Equal(t, "reabastecimiento", mov.Reason)
	assert.Equal(t, entity.ActorSystem, mov.Actor, "sin actor explícito se registra system")
}

// Un ajuste que dejaría el stock negativo falla con PreconditionFailed y no
// escribe nada: ni la fila cambia ni se agrega movimiento.
func TestAdjust_NoPermiteStockNegativo(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: 1, LocationID: 1, Quantity: 10, Reason: "carga inicial",
	})
	require.NoError(t, err)

	_, err = uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: 1, LocationID: 1, Quantity: -15, Reason: "venta",
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed),
		"debe ser PreconditionFailed, fue: %v", err)

	rec := f.store.findByPair(1, 1)
	assert.Equal(t, int64(10), rec.Quantity, "la cantidad no debe cambiar tras el fallo")
	assert.Len(t, f.store.movements, 1, "el ajuste fallido no debe dejar movimiento")
}

// Un ajuste negativo que deja la fila en cero la conserva (no se borra) y
// registra el movimiento con la ubicación como origen.
func TestAdjust_SalidaTotalDejaFilaEnCero(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	_, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 1, Quantity: 8, Reason: "carga"})
	require.NoError(t, err)

	qty, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 1, Quantity: -8, Reason: "salida completa"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)

	rec := f.store.findByPair(1, 1)
	require.NotNil(t, rec, "la fila en cero se conserva")
	assert.Equal(t, int64(0), rec.Quantity)

	require.Len(t, f.store.movements, 2)
	mov := f.store.movements[1]
	assert.Equal(t, int64(-8), mov.Quantity, "la cantidad del movimiento conserva el signo")
	require.NotNil(t, mov.OriginLocationID)
	assert.Equal(t, int64(1), *mov.OriginLocationID)
	assert.Nil(t, mov.DestinationLocationID)
}

func TestAdjust_CantidadCeroRechazada(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: 1, LocationID: 1, Quantity: 0, Reason: "nada",
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestAdjust_MotivoEnBlancoRechazado(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: 1, LocationID: 1, Quantity: 5, Reason: "   ",
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation), "motivo en blanco debe ser Validation")
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: 99, LocationID: 1, Quantity: 5, Reason: "carga",
	})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestAdjust_UbicacionInactiva(t *testing.T) {
	f := newFixture()
	f.locations.locations[3] = &entity.Location{ID: 3, Name: "Bodega cerrada", Active: false}
	uc := newEngine(f)

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: 1, LocationID: 3, Quantity: 5, Reason: "carga",
	})
	assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed),
		"ubicación inactiva debe ser PreconditionFailed")
}

func TestAdjust_RespetaCapacidadDeUbicacion(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	_, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 2, Quantity: 90, Reason: "carga"})
	require.NoError(t, err)

	// La ubicación 2 tiene capacidad 100: 90 + 20 la excede.
	_, err = uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 2, Quantity: 20, Reason: "carga"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed))
	assert.Equal(t, int64(90), f.store.findByPair(1, 2).Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateInventory
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInventory_ConCantidadInicial(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)

	rec, err := uc.CreateInventory(context.Background(), inventory.CreateInput{
		ProductID: 1, LocationID: 1, Quantity: 25,
		ReorderMin: int64p(5), ReorderMax: int64p(50),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), rec.Quantity)
	require.NotNil(t, rec.ReorderMin)
	assert.Equal(t, int64(5), *rec.ReorderMin)

	require.Len(t, f.store.movements, 1)
	mov := f.store.movements[0]
	assert.Equal(t, entity.MovementKindADJUST, mov.Kind)
	assert.Equal(t, "creación de inventario", mov.Reason, "sin motivo se aplica el por defecto")
	require.NotNil(t, mov.DestinationLocationID)
	assert.Equal(t, int64(1), *mov.DestinationLocationID)
}

// Crear con cantidad cero deja la fila pero no escribe en la bitácora.
func TestCreateInventory_CantidadCeroSinMovimiento(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)

	rec, err := uc.CreateInventory(context.Background(), inventory.CreateInput{
		ProductID: 1, LocationID: 1, Quantity: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Quantity)
	assert.Empty(t, f.store.movements, "cantidad cero no genera movimiento")
}

func TestCreateInventory_ParDuplicadoConflict(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	_, err := uc.CreateInventory(ctx, inventory.CreateInput{ProductID: 1, LocationID: 1, Quantity: 10})
	require.NoError(t, err)

	_, err = uc.CreateInventory(ctx, inventory.CreateInput{ProductID: 1, LocationID: 1, Quantity: 3})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict), "par duplicado debe ser Conflict")

	assert.Equal(t, int64(10), f.store.findByPair(1, 1).Quantity, "el estado no debe cambiar")
	assert.Len(t, f.store.movements, 1)
}

func TestCreateInventory_UmbralesInvalidos(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	_, err := uc.CreateInventory(context.Background(), inventory.CreateInput{
		ProductID: 1, LocationID: 1, Quantity: 5,
		ReorderMin: int64p(20), ReorderMax: int64p(10),
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation), "min > max debe ser Validation")
}

func TestCreateInventory_CantidadNegativaRechazada(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	_, err := uc.CreateInventory(context.Background(), inventory.CreateInput{
		ProductID: 1, LocationID: 1, Quantity: -1,
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestCreateInventory_ExcedeCapacidad(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	_, err := uc.CreateInventory(context.Background(), inventory.CreateInput{
		ProductID: 1, LocationID: 2, Quantity: 150, // capacidad 100
	})
	assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed))
}

// ──────────────────────────────────────────────────────────────────────────────
// EditInventory
// ──────────────────────────────────────────────────────────────────────────────

// La edición nunca toca la cantidad: una petición que la incluya se rechaza
// antes de abrir la transacción y el almacén queda intacto.
func TestEditInventory_RechazaCantidad(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	rec, err := uc.CreateInventory(ctx, inventory.CreateInput{ProductID: 1, LocationID: 1, Quantity: 10})
	require.NoError(t, err)

	_, err = uc.EditInventory(ctx, inventory.EditInput{
		InventoryID: rec.ID, Quantity: int64p(99),
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation),
		"editar cantidad debe rechazarse con Validation")
	assert.Equal(t, int64(10), f.store.findByPair(1, 1).Quantity)
	assert.Len(t, f.store.movements, 1, "el rechazo no debe dejar movimiento")
}

func TestEditInventory_ActualizaUmbrales(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	rec, err := uc.CreateInventory(ctx, inventory.CreateInput{ProductID: 1, LocationID: 1, Quantity: 10})
	require.NoError(t, err)

	updated, err := uc.EditInventory(ctx, inventory.EditInput{
		InventoryID: rec.ID, ReorderMin: int64p(2), ReorderMax: int64p(40),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ReorderMin)
	assert.Equal(t, int64(2), *updated.ReorderMin)
	require.NotNil(t, updated.ReorderMax)
	assert.Equal(t, int64(40), *updated.ReorderMax)
	assert.Equal(t, int64(10), updated.Quantity, "la cantidad no cambia al editar umbrales")
	assert.Len(t, f.store.movements, 1, "editar umbrales no genera movimiento")
}

// El umbral entrante se combina con el existente: min nuevo contra max viejo.
func TestEditInventory_UmbralEntranteContraExistente(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	rec, err := uc.CreateInventory(ctx, inventory.CreateInput{
		ProductID: 1, LocationID: 1, Quantity: 10, ReorderMax: int64p(20),
	})
	require.NoError(t, err)

	_, err = uc.EditInventory(ctx, inventory.EditInput{
		InventoryID: rec.ID, ReorderMin: int64p(30), // > max existente 20
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

// Reubicar una fila con unidades deja un movimiento TRANSFER que documenta
// el traslado completo de la fila.
func TestEditInventory_ReubicaYAuditaTransfer(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	rec, err := uc.CreateInventory(ctx, inventory.CreateInput{ProductID: 1, LocationID: 1, Quantity: 30})
	require.NoError(t, err)

	updated, err := uc.EditInventory(ctx, inventory.EditInput{
		InventoryID: rec.ID, NewLocationID: int64p(2), Actor: "jperez",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.LocationID)
	assert.Equal(t, int64(30), updated.Quantity, "las unidades viajan con la fila")

	assert.Nil(t, f.store.findByPair(1, 1), "el par original queda libre")
	require.NotNil(t, f.store.findByPair(1, 2))

	require.Len(t, f.store.movements, 2)
	mov := f.store.movements[1]
	assert.Equal(t, entity.MovementKindTRANSFER, mov.Kind)
	assert.Equal(t, int64(30), mov.Quantity)
	require.NotNil(t, mov.OriginLocationID)
	assert.Equal(t, int64(1), *mov.OriginLocationID)
	require.NotNil(t, mov.DestinationLocationID)
	assert.Equal(t, int64(2), *mov.DestinationLocationID)
	assert.Equal(t, "reubicación de inventario", mov.Reason)
	assert.Equal(t, "jperez", mov.Actor)
}

// Si el destino no tiene capacidad para las unidades actuales la reubicación
// falla y la fila queda en su ubicación original.
func TestEditInventory_DestinoSinCapacidad(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	rec, err := uc.CreateInventory(ctx, inventory.CreateInput{ProductID: 1, LocationID: 1, Quantity: 150})
	require.NoError(t, err)

	_, err = uc.EditInventory(ctx, inventory.EditInput{
		InventoryID: rec.ID, NewLocationID: int64p(2), // capacidad 100 < 150
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed))

	kept := f.store.findByPair(1, 1)
	require.NotNil(t, kept, "la fila debe seguir en la ubicación original")
	assert.Equal(t, int64(150), kept.Quantity)
	assert.Len(t, f.store.movements, 1, "la reubicación fallida no deja movimiento")
}

func TestEditInventory_DestinoOcupadoConflict(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	rec, err := uc.CreateInventory(ctx, inventory.CreateInput{ProductID: 1, LocationID: 1, Quantity: 10})
	require.NoError(t, err)
	_, err = uc.CreateInventory(ctx, inventory.CreateInput{ProductID: 1, LocationID: 2, Quantity: 5})
	require.NoError(t, err)

	_, err = uc.EditInventory(ctx, inventory.EditInput{
		InventoryID: rec.ID, NewLocationID: int64p(2),
	})
	assert.True(t, domain.IsKind(err, domain.KindConflict),
		"reubicar sobre un par ocupado debe ser Conflict")
}

func TestEditInventory_NoEncontrado(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	_, err := uc.EditInventory(context.Background(), inventory.EditInput{
		InventoryID: 404, ReorderMin: int64p(1),
	})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestEditInventory_SinCamposRechazado(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	_, err := uc.EditInventory(context.Background(), inventory.EditInput{InventoryID: 1})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

// Un traslado exitoso conserva el total del producto entre origen y destino
// y deja exactamente un movimiento TRANSFER.
func TestTransfer_ConservaElTotal(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	_, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 1, Quantity: 10, Reason: "carga"})
	require.NoError(t, err)

	err = uc.Transfer(ctx, inventory.TransferInput{
		ProductID: 1, OriginLocationID: 1, DestinationLocationID: 2,
		Quantity: 5, Reason: "rebalanceo",
	})
	require.NoError(t, err)

	origin := f.store.findByPair(1, 1)
	dest := f.store.findByPair(1, 2)
	require.NotNil(t, origin)
	require.NotNil(t, dest)
	assert.Equal(t, int64(5), origin.Quantity)
	assert.Equal(t, int64(5), dest.Quantity)
	assert.Equal(t, int64(10), origin.Quantity+dest.Quantity,
		"el total del producto se conserva")

	require.Len(t, f.store.movements, 2)
	mov := f.store.movements[1]
	assert.Equal(t, entity.MovementKindTRANSFER, mov.Kind)
	assert.Equal(t, int64(5), mov.Quantity)
	assert.Equal(t, int64(1), *mov.OriginLocationID)
	assert.Equal(t, int64(2), *mov.DestinationLocationID)
}

func TestTransfer_SaldoInsuficiente(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	_, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 1, Quantity: 3, Reason: "carga"})
	require.NoError(t, err)

	err = uc.Transfer(ctx, inventory.TransferInput{
		ProductID: 1, OriginLocationID: 1, DestinationLocationID: 2,
		Quantity: 5, Reason: "rebalanceo",
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed))

	assert.Equal(t, int64(3), f.store.findByPair(1, 1).Quantity, "el origen no cambia")
	assert.Nil(t, f.store.findByPair(1, 2), "no se crea fila en destino")
	assert.Len(t, f.store.movements, 1)
}

// Sin fila en origen el traslado equivale a saldo insuficiente.
func TestTransfer_SinFilaEnOrigen(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID: 1, OriginLocationID: 1, DestinationLocationID: 2,
		Quantity: 1, Reason: "rebalanceo",
	})
	assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed))
}

func TestTransfer_MismoOrigenYDestino(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID: 1, OriginLocationID: 1, DestinationLocationID: 1,
		Quantity: 5, Reason: "rebalanceo",
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestTransfer_CapacidadDestinoExcedida(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	_, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 1, Quantity: 200, Reason: "carga"})
	require.NoError(t, err)
	_, err = uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 2, Quantity: 95, Reason: "carga"})
	require.NoError(t, err)

	// 95 + 10 excede la capacidad 100 del destino.
	err = uc.Transfer(ctx, inventory.TransferInput{
		ProductID: 1, OriginLocationID: 1, DestinationLocationID: 2,
		Quantity: 10, Reason: "rebalanceo",
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPreconditionFailed))
	assert.Equal(t, int64(200), f.store.findByPair(1, 1).Quantity)
	assert.Equal(t, int64(95), f.store.findByPair(1, 2).Quantity)
}

// Las filas se bloquean siempre en orden ascendente de ubicación, sin
// importar el sentido del traslado.
func TestTransfer_BloqueaEnOrdenAscendente(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	_, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 2, Quantity: 10, Reason: "carga"})
	require.NoError(t, err)

	// Traslado en sentido descendente (2 -> 1): aun así bloquea 1 antes que 2.
	f.store.lockOrder = nil
	err = uc.Transfer(ctx, inventory.TransferInput{
		ProductID: 1, OriginLocationID: 2, DestinationLocationID: 1,
		Quantity: 4, Reason: "rebalanceo",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, f.store.lockOrder,
		"el bloqueo debe ser en orden ascendente de ubicación")
}

// Si la escritura en la bitácora falla, la transacción completa se revierte:
// las cantidades vuelven a su estado previo.
func TestTransfer_RollbackSiFallaLaBitacora(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	ctx := context.Background()
	_, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: 1, LocationID: 1, Quantity: 10, Reason: "carga"})
	require.NoError(t, err)

	f.store.failOnMovement = errors.New("disco lleno")
	err = uc.Transfer(ctx, inventory.TransferInput{
		ProductID: 1, OriginLocationID: 1, DestinationLocationID: 2,
		Quantity: 4, Reason: "rebalanceo",
	})
	require.Error(t, err)

	assert.Equal(t, int64(10), f.store.findByPair(1, 1).Quantity,
		"el rollback debe restaurar el origen")
	assert.Nil(t, f.store.findByPair(1, 2), "el rollback debe deshacer el destino")
	assert.Len(t, f.store.movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

// Lecturas repetidas entre mutaciones devuelven exactamente el mismo estado.
func TestQueries_LecturaIdempotente(t *testing.T) {
	f := newFixture()
	uc := newEngine(f)
	queries := inventory.NewQueryUseCase(f.store, movList{f.store})
	ctx := context.Background()

	rec, err := uc.CreateInventory(ctx, inventory.CreateInput{ProductID: 1, LocationID: 1, Quantity: 12})
	require.NoError(t, err)

	first, err := queries.Get(rec.ID)
	require.NoError(t, err)
	second, err := queries.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second, "lecturas repetidas deben coincidir")
	assert.Equal(t, int64(12), first.Quantity)
}

func TestQueries_GetNoEncontrado(t *testing.T) {
	f := newFixture()
	queries := inventory.NewQueryUseCase(f.store, movList{f.store})
	_, err := queries.Get(404)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
