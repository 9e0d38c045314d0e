package handler

import (
	"strings"

	"course-match/internal/delivery/http/dto"
	"course-match/internal/delivery/http/middleware"
	"course-match/internal/domain/course"
	"course-match/internal/pkg/response"
	"course-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const maxSkillsPerRequest = 50

type AvailabilityHandler struct {
	uc usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(uc usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

func (h *AvailabilityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/courses")
	grp.Post("/availability", h.Check)
}

func (h *AvailabilityHandler) Check(c fiber.Ctx) error {
	var req dto.CheckAvailabilityRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, usecase.ErrInvalidInput)
	}
	if len(req.Skills) > maxSkillsPerRequest {
		return middleware.NewAppError(fiber.StatusBadRequest, "too many skills", nil, usecase.ErrInvalidInput)
	}

	skills := make([]course.SkillQuery, 0, len(req.Skills))
	for _, s := range req.Skills {
		name := strings.TrimSpace(s.SkillName)
		if name == "" {
			return middleware.NewAppError(fiber.StatusBadRequest, "skill_name is required", nil, usecase.ErrInvalidInput)
		}
		skills = append(skills, course.SkillQuery{
			SkillName:   name,
			Description: strings.TrimSpace(s.Description),
			Category:    s.SkillCategory,
		})
	}

	enriched, enhancements := h.uc.CheckAvailability(c.Context(), skills)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCheckAvailabilityResponse(enriched, enhancements))
}
