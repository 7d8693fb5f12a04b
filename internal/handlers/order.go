package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/sofra/internal/middleware"
	"github.com/example/sofra/internal/services"
)

// OrderHandler manages checkout and order lifecycle endpoints.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createTicketLineRequest struct {
	BusinessID string `json:"business_id"`
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note"`
}

type createTicketRequest struct {
	Address string                    `json:"address"`
	Lines   []createTicketLineRequest `json:"lines"`
}

// CreateTicket places an order for the authenticated diner.
func (h *OrderHandler) CreateTicket(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	input := services.CreateTicketInput{Address: req.Address}
	for _, line := range req.Lines {
		businessID, err := uuid.Parse(line.BusinessID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid business_id")
		}
		menuItemID, err := uuid.Parse(line.MenuItemID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid menu_item_id")
		}
		input.Lines = append(input.Lines, services.CreateTicketLine{
			BusinessID: businessID,
			MenuItemID: menuItemID,
			Quantity:   line.Quantity,
			Note:       line.Note,
		})
	}

	lines, err := h.orders.CreateTicket(c.Context(), userID, input)
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    lines,
	})
}

// ListTickets returns the diner's orders grouped into tickets, newest first.
func (h *OrderHandler) ListTickets(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	tickets, err := h.orders.ListTickets(c.Context(), userID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": tickets})
}

// ListPending returns the business's undecided tickets.
func (h *OrderHandler) ListPending(c *fiber.Ctx) error {
	businessID, ok := middleware.GetCurrentBusinessID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	tickets, err := h.orders.ListPendingForBusiness(c.Context(), businessID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": tickets})
}

// ListHistory returns the business's decided tickets.
func (h *OrderHandler) ListHistory(c *fiber.Ctx) error {
	businessID, ok := middleware.GetCurrentBusinessID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	tickets, err := h.orders.ListHistoryForBusiness(c.Context(), businessID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": tickets})
}

// Counts returns idle and awaiting-delivery ticket counts for the business.
func (h *OrderHandler) Counts(c *fiber.Ctx) error {
	businessID, ok := middleware.GetCurrentBusinessID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	counts, err := h.orders.CountsForBusiness(c.Context(), businessID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": counts})
}

type lineIDsRequest struct {
	LineIDs []string `json:"line_ids"`
}

// Accept marks the targeted lines accepted.
func (h *OrderHandler) Accept(c *fiber.Ctx) error {
	businessID, ok := middleware.GetCurrentBusinessID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	lineIDs, err := parseLineIDs(c)
	if err != nil {
		return err
	}

	if err := h.orders.Accept(c.Context(), businessID, lineIDs); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "order accepted"})
}

// Reject marks a single line rejected.
func (h *OrderHandler) Reject(c *fiber.Ctx) error {
	businessID, ok := middleware.GetCurrentBusinessID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	lineID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.orders.Reject(c.Context(), businessID, lineID); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "order rejected"})
}

// Deliver marks the targeted lines completed and delivered.
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	businessID, ok := middleware.GetCurrentBusinessID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	lineIDs, err := parseLineIDs(c)
	if err != nil {
		return err
	}

	if err := h.orders.MarkDelivered(c.Context(), businessID, lineIDs); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "order delivered"})
}

func parseLineIDs(c *fiber.Ctx) ([]uuid.UUID, error) {
	var req lineIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.LineIDs) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "line_ids is required")
	}

	lineIDs := make([]uuid.UUID, 0, len(req.LineIDs))
	for _, raw := range req.LineIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid line id")
		}
		lineIDs = append(lineIDs, id)
	}

	return lineIDs, nil
}
