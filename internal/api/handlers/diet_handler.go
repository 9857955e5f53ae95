package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/services"
	"github.com/healthsync/healthsync/internal/utils"
)

type DietHandler struct {
	svc services.DietService
}

func NewDietHandler(svc services.DietService) *DietHandler {
	return &DietHandler{svc: svc}
}

func (h *DietHandler) DietPlan(c *gin.Context) {
	var profile models.UserHealthProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DietHandler.DietPlan", "invalid request body", err))
		return
	}

	c.JSON(http.StatusOK, h.svc.GenerateDietPlan(c.Request.Context(), profile))
}

func (h *DietHandler) HealthPredictions(c *gin.Context) {
	var profile models.UserHealthProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DietHandler.HealthPredictions", "invalid request body", err))
		return
	}

	c.JSON(http.StatusOK, h.svc.PredictHealthMetrics(c.Request.Context(), profile))
}
