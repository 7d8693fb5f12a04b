package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/sofra/internal/middleware"
	"github.com/example/sofra/internal/services"
)

// RatingHandler manages rating endpoints.
type RatingHandler struct {
	ratings *services.RatingService
}

// NewRatingHandler constructs RatingHandler.
func NewRatingHandler(ratings *services.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

type submitRatingRequest struct {
	OrderID          string `json:"order_id"`
	MenuItemID       string `json:"menu_item_id"`
	RestaurantRating int    `json:"restaurant_rating"`
	FoodRating       int    `json:"food_rating"`
	Comment          string `json:"comment"`
}

// Submit records a rating for a delivered order.
func (h *RatingHandler) Submit(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req submitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order_id")
	}

	input := services.SubmitRatingInput{
		OrderLineID:      orderID,
		RestaurantRating: req.RestaurantRating,
		FoodRating:       req.FoodRating,
		Comment:          req.Comment,
	}

	if req.MenuItemID != "" {
		menuItemID, err := uuid.Parse(req.MenuItemID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid menu_item_id")
		}
		input.MenuItemID = &menuItemID
	}

	rating, err := h.ratings.Submit(c.Context(), userID, input)
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": rating})
}

// ListForBusiness returns a business's ratings.
func (h *RatingHandler) ListForBusiness(c *fiber.Ctx) error {
	businessID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	ratings, err := h.ratings.ListForBusiness(c.Context(), businessID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": ratings})
}

// ListForMenuItem returns the ratings attached to one menu item.
func (h *RatingHandler) ListForMenuItem(c *fiber.Ctx) error {
	menuItemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	ratings, err := h.ratings.ListForMenuItem(c.Context(), menuItemID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": ratings})
}

// ListMine returns the ratings the caller has submitted.
func (h *RatingHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ratings, err := h.ratings.ListForUser(c.Context(), userID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": ratings})
}

// IsRated reports whether an order has been rated.
func (h *RatingHandler) IsRated(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	rated, err := h.ratings.IsOrderRated(c.Context(), orderID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"rated": rated}})
}
