package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario y de
// consulta de existencias/bitácora.
type InventoryHandler struct {
	engine  *inventory.UseCase
	queries *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.UseCase, queries *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{engine: engine, queries: queries}
}

// Adjust godoc
// @Summary      Ajustar stock con signo en una ubicación
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "product_id, location_id, quantity (con signo, no cero), reason"
// @Success      200   {object}  dto.AdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	qty, err := h.engine.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		Actor:      GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustResponse{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   qty,
	})
}

// Create godoc
// @Summary      Crear explícitamente una fila de existencias
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "product_id, location_id, quantity >= 0, umbrales opcionales"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	rec, err := h.engine.CreateInventory(c.Context(), inventory.CreateInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		ReorderMin: in.ReorderMin,
		ReorderMax: in.ReorderMax,
		Reason:     in.Reason,
		Actor:      GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInventoryResponse(rec))
}

// Edit godoc
// @Summary      Editar umbrales o reubicar una fila de existencias
// @Description  No modifica la cantidad: una petición con quantity se rechaza
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la fila de existencias"
// @Param        body  body  dto.EditInventoryRequest  true  "reorder_min, reorder_max o location_id"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Edit(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	var in dto.EditInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	rec, err := h.engine.EditInventory(c.Context(), inventory.EditInput{
		InventoryID:   id,
		ReorderMin:    in.ReorderMin,
		ReorderMax:    in.ReorderMax,
		NewLocationID: in.LocationID,
		Reason:        in.Reason,
		Actor:         GetActor(c),
		Quantity:      in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInventoryResponse(rec))
}

// Transfer godoc
// @Summary      Trasladar unidades entre dos ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, origen, destino, quantity > 0, reason"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	err := h.engine.Transfer(c.Context(), inventory.TransferInput{
		ProductID:             in.ProductID,
		OriginLocationID:      in.OriginLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Quantity:              in.Quantity,
		Reason:                in.Reason,
		Actor:                 GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "traslado registrado"})
}

// Get godoc
// @Summary      Consultar una fila de existencias
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la fila de existencias"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	rec, err := h.queries.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInventoryResponse(rec))
}

// List godoc
// @Summary      Listar existencias
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  int  false  "Filtrar por producto"
// @Param        location_id  query  int  false  "Filtrar por ubicación"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	filter := repository.InventoryFilter{
		ProductID:  queryInt64(c, "product_id"),
		LocationID: queryInt64(c, "location_id"),
	}
	list, err := h.queries.List(filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *toInventoryResponse(rec))
	}
	return c.JSON(dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Movements godoc
// @Summary      Consultar la bitácora de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  int     false  "Filtrar por producto"
// @Param        location_id  query  int     false  "Filtrar por ubicación (origen o destino)"
// @Param        kind         query  string  false  "ADJUST o TRANSFER"
// @Param        from         query  string  false  "Fecha inicial (RFC 3339)"
// @Param        to           query  string  false  "Fecha final (RFC 3339)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	filter, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	list, err := h.queries.Movements(filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

func toInventoryResponse(rec *entity.InventoryRecord) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:         rec.ID,
		ProductID:  rec.ProductID,
		LocationID: rec.LocationID,
		Quantity:   rec.Quantity,
		ReorderMin: rec.ReorderMin,
		ReorderMax: rec.ReorderMax,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                    m.ID,
		ProductID:             m.ProductID,
		OriginLocationID:      m.OriginLocationID,
		DestinationLocationID: m.DestinationLocationID,
		Kind:                  m.Kind,
		Quantity:              m.Quantity,
		Reason:                m.Reason,
		Actor:                 m.Actor,
		CreatedAt:             m.CreatedAt,
	}
}

// movementFilter arma el filtro de bitácora desde los query params.
func movementFilter(c *fiber.Ctx) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		ProductID:  queryInt64(c, "product_id"),
		LocationID: queryInt64(c, "location_id"),
		Kind:       c.Query("kind"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	return filter, nil
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}

func queryInt64(c *fiber.Ctx, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
