package handler

import (
	"strconv"
	"strings"

	"course-match/internal/delivery/http/middleware"
	"course-match/internal/pkg/response"
	"course-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// CacheAdminHandler exposes the result cache's operational surface as thin
// pass-throughs.
type CacheAdminHandler struct {
	uc usecase.CacheAdminUsecase
}

func NewCacheAdminHandler(uc usecase.CacheAdminUsecase) *CacheAdminHandler {
	return &CacheAdminHandler{uc: uc}
}

func (h *CacheAdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/cache")
	grp.Get("/stats", h.Stats)
	grp.Get("/top", h.TopItems)
	grp.Post("/clear", h.Clear)
	grp.Post("/cleanup", h.Cleanup)
}

func (h *CacheAdminHandler) Stats(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.Stats())
}

func (h *CacheAdminHandler) TopItems(c fiber.Ctx) error {
	limit := 10
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, usecase.ErrInvalidInput)
		}
		limit = v
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.TopItems(limit))
}

func (h *CacheAdminHandler) Clear(c fiber.Ctx) error {
	h.uc.Clear()
	return response.Success(c, fiber.StatusOK, "Cache cleared", nil)
}

func (h *CacheAdminHandler) Cleanup(c fiber.Ctx) error {
	removed := h.uc.CleanupExpired()
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"removed": removed})
}
