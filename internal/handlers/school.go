package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mufattish/backend/internal/logger"
	"github.com/mufattish/backend/internal/services"
)

type SchoolHandler struct {
	log           *logger.Logger
	schoolService services.SchoolService
}

func NewSchoolHandler(log *logger.Logger, schoolService services.SchoolService) *SchoolHandler {
	return &SchoolHandler{
		log:           log.With("handler", "SchoolHandler"),
		schoolService: schoolService,
	}
}

// GET /api/schools/profile
func (h *SchoolHandler) GetProfile(c *gin.Context) {
	profile, err := h.schoolService.GetProfile(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "lookup_failed", err)
		return
	}
	RespondOK(c, profile)
}

type updateProfileRequest struct {
	Name            string `json:"name" binding:"required"`
	District        string `json:"district"`
	TamazightTaught *bool  `json:"tamazight_taught" binding:"required"`
}

// PUT /api/schools/profile
func (h *SchoolHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	profile, err := h.schoolService.UpdateProfile(c.Request.Context(), req.Name, req.District, *req.TamazightTaught)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "update_failed", err)
		return
	}
	RespondOK(c, profile)
}
