package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/services"
	"github.com/healthsync/healthsync/internal/utils"
)

type ExerciseHandler struct {
	svc services.ExerciseService
}

func NewExerciseHandler(svc services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{svc: svc}
}

type RecordExerciseRequest struct {
	UserID       string  `json:"user_id" binding:"required"`
	ExerciseType string  `json:"exercise_type" binding:"required"`
	Reps         int     `json:"reps"`
	Accuracy     float64 `json:"accuracy"`
	Feedback     string  `json:"feedback"`
}

func (h *ExerciseHandler) Record(c *gin.Context) {
	var req RecordExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ExerciseHandler.Record", "invalid request body", err))
		return
	}

	id, err := h.svc.Record(c.Request.Context(), &models.ExerciseRecord{
		UserID:       req.UserID,
		ExerciseType: req.ExerciseType,
		Reps:         req.Reps,
		Accuracy:     req.Accuracy,
		Feedback:     req.Feedback,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, gin.H{"record_id": id})
}

func (h *ExerciseHandler) History(c *gin.Context) {
	userID := c.Param("user_id")

	rows, err := h.svc.History(c.Request.Context(), userID, 100)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, gin.H{"exercise_history": rows})
}
