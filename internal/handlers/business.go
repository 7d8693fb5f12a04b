package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/sofra/internal/middleware"
	"github.com/example/sofra/internal/models"
	"github.com/example/sofra/internal/services"
	"github.com/example/sofra/internal/utils"
)

// BusinessHandler manages business profile endpoints.
type BusinessHandler struct {
	db *gorm.DB
}

// NewBusinessHandler constructs BusinessHandler.
func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

// List returns businesses for browsing. Each entry is annotated with the
// schedule-derived schedule_open flag; the persisted is_open stays untouched.
func (h *BusinessHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.BusinessProfile{})

	if tag := c.Query("tag"); tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var businesses []models.BusinessProfile
	if err := query.Order("average_rating desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&businesses).Error; err != nil {
		return err
	}

	now := time.Now()
	for i := range businesses {
		businesses[i].ScheduleOpen = services.ScheduleOpen(&businesses[i], now)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    businesses,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// Get returns a single business with its menu.
func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var business models.BusinessProfile
	if err := h.db.Preload("MenuItems").First(&business, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "business not found")
		}
		return err
	}

	business.ScheduleOpen = services.ScheduleOpen(&business, time.Now())

	return c.JSON(fiber.Map{"success": true, "data": business})
}

// GetMine returns the caller's own business profile.
func (h *BusinessHandler) GetMine(c *fiber.Ctx) error {
	businessID, ok := middleware.GetCurrentBusinessID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var business models.BusinessProfile
	if err := h.db.First(&business, "id = ?", businessID).Error; err != nil {
		return err
	}

	business.ScheduleOpen = services.ScheduleOpen(&business, time.Now())

	return c.JSON(fiber.Map{"success": true, "data": business})
}

type updateBusinessRequest struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Address        *string   `json:"address"`
	Tags           *[]string `json:"tags"`
	OpeningTime    *string   `json:"opening_time"`
	ClosingTime    *string   `json:"closing_time"`
	IsOpen         *bool     `json:"is_open"`
	MinBasketTotal *float64  `json:"min_basket_total"`
}

// UpdateMine updates the caller's business profile. is_open only changes when
// the request sets it explicitly; the schedule never writes it.
func (h *BusinessHandler) UpdateMine(c *fiber.Ctx) error {
	businessID, ok := middleware.GetCurrentBusinessID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(*req.Tags)
	}
	if req.OpeningTime != nil {
		if *req.OpeningTime != "" {
			if err := services.ValidateClock(*req.OpeningTime); err != nil {
				return mapServiceError(err)
			}
		}
		updates["opening_time"] = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		if *req.ClosingTime != "" {
			if err := services.ValidateClock(*req.ClosingTime); err != nil {
				return mapServiceError(err)
			}
		}
		updates["closing_time"] = *req.ClosingTime
	}
	if req.IsOpen != nil {
		updates["is_open"] = *req.IsOpen
	}
	if req.MinBasketTotal != nil {
		if *req.MinBasketTotal < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "min_basket_total must not be negative")
		}
		updates["min_basket_total"] = *req.MinBasketTotal
	}

	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&models.BusinessProfile{}).
		Where("id = ?", businessID).
		Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "business updated"})
}
