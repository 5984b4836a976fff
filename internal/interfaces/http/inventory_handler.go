package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgroGestion-api/internal/application/dto"
	"github.com/jhoicas/AgroGestion-api/internal/application/inventory"
	"github.com/jhoicas/AgroGestion-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de insumo (compra)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "supply_item_id, quantity, unit_cost opcional, lote opcional"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.RegisterEntry(c.Context(), farmID, userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// RegisterConsumption godoc
// @Summary      Registrar consumo de insumo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterConsumptionRequest  true  "supply_item_id, quantity, lote opcional"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/consumptions [post]
func (h *InventoryHandler) RegisterConsumption(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.RegisterConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.RegisterConsumption(c.Context(), farmID, userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste de inventario (con signo)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "supply_item_id, signed_quantity (positivo suma, negativo resta)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.RegisterAdjustment(c.Context(), farmID, userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// Transfer godoc
// @Summary      Trasladar insumo a otra finca
// @Description  Salida en la finca origen y entrada en la destino, en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "supply_item_id, farm_to, quantity"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	farmID, userID, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Transfer(c.Context(), farmID, userID, in); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "traslado registrado"})
}

// GetStock godoc
// @Summary      Stock derivado por insumo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        batch_id  query  string  false  "Filtrar por lote (UUID)"
// @Success      200  {array}   dto.StockItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	var batchID *string
	if v := c.Query("batch_id"); v != "" {
		batchID = &v
	}
	stocks, err := h.uc.GetStockByItem(c.Context(), farmID, batchID)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.StockItemDTO, 0, len(stocks))
	for itemID, stock := range stocks {
		out = append(out, dto.StockItemDTO{SupplyItemID: itemID, Stock: stock})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Insumos bajo stock mínimo
// @Description  Insumos activos con stock por debajo del mínimo y cantidad sugerida de pedido.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	items, err := h.uc.LowStock(c.Context(), farmID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(items)
}

// ListMovements godoc
// @Summary      Movimientos de un insumo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  true   "Insumo (UUID)"
// @Param        from     query  string  false  "Desde (RFC3339)"
// @Param        to       query  string  false  "Hasta (RFC3339)"
// @Param        limit    query  int     false  "Máximo de filas (default 50)"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	farmID, _, ok := requireTenant(c)
	if !ok {
		return nil
	}
	itemID := c.Query("item_id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id requerido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (RFC3339)"})
	}
	limit, offset := parsePagination(c)
	movements, err := h.uc.ListMovements(c.Context(), farmID, itemID, from, to, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:           m.ID,
		SupplyItemID: m.SupplyItemID,
		BatchID:      m.BatchID,
		Kind:         m.Kind,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		Date:         m.Date,
		Note:         m.Note,
	}
}

// parseDateRange lee from/to como RFC3339 opcionales.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if v := c.Query("from"); v != "" {
		t, perr := time.Parse(time.RFC3339, v)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, perr := time.Parse(time.RFC3339, v)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}

// parsePagination lee limit/offset con valores por defecto.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
