package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthsync/healthsync/internal/providers/llm"
	"github.com/healthsync/healthsync/internal/services"
	"github.com/healthsync/healthsync/internal/utils"
)

type MedicalHandler struct {
	svc       services.MedicalService
	directory services.DoctorDirectory
}

func NewMedicalHandler(svc services.MedicalService, directory services.DoctorDirectory) *MedicalHandler {
	return &MedicalHandler{svc: svc, directory: directory}
}

// HistoryMessage is one caller-supplied prior turn.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type MedicalQueryRequest struct {
	UserID              string           `json:"user_id" binding:"required"`
	Query               string           `json:"query" binding:"required"`
	ConversationHistory []HistoryMessage `json:"conversation_history"`
}

func (h *MedicalHandler) Query(c *gin.Context) {
	var req MedicalQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MedicalHandler.Query", "invalid request body", err))
		return
	}

	history := make([]llm.Message, 0, len(req.ConversationHistory))
	for _, m := range req.ConversationHistory {
		role := m.Role
		if role == "" {
			role = "user"
		}
		history = append(history, llm.Message{Role: role, Text: m.Content})
	}

	result := h.svc.ProcessQuery(c.Request.Context(), req.UserID, req.Query, history)
	c.JSON(http.StatusOK, result)
}

func (h *MedicalHandler) Doctors(c *gin.Context) {
	doctors, err := h.directory.GetDoctorList(c.Request.Context())
	if err != nil {
		writeError(c, utils.E(utils.CodeDirectoryUnavailable, "MedicalHandler.Doctors", "failed to retrieve doctor list", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"doctors": doctors,
	})
}

func (h *MedicalHandler) UserQueries(c *gin.Context) {
	userID := c.Param("user_id")

	queries, err := h.svc.UserQueries(c.Request.Context(), userID, 10)
	if err != nil {
		writeError(c, utils.E(utils.CodeStoreUnavailable, "MedicalHandler.UserQueries", "failed to retrieve user queries", err))
		return
	}

	writeSuccess(c, gin.H{"queries": queries})
}
