package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/services"
	"github.com/healthsync/healthsync/internal/utils"
)

type StepsHandler struct {
	svc services.StepsService
}

func NewStepsHandler(svc services.StepsService) *StepsHandler {
	return &StepsHandler{svc: svc}
}

type StepsRequest struct {
	UserID    string           `json:"user_id" binding:"required"`
	TokenInfo models.TokenInfo `json:"token_info" binding:"required"`
	TimeRange string           `json:"time_range"` // today|week|month
}

func (h *StepsHandler) GetSteps(c *gin.Context) {
	var req StepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "StepsHandler.GetSteps", "invalid request body", err))
		return
	}

	summary, err := h.svc.GetSteps(c.Request.Context(), req.UserID, req.TokenInfo, req.TimeRange)
	if err != nil {
		if utils.IsCode(err, utils.CodeInvalidArgument) {
			writeError(c, err)
			return
		}
		body := gin.H{"status": "error", "message": err.Error()}
		if utils.IsCode(err, utils.CodeAuthExpired) {
			body["error_details"] = "Authorization may have expired. Please reconnect your Google Fit account."
		}
		c.JSON(http.StatusOK, body)
		return
	}

	writeSuccess(c, summary)
}

type SaveStepsRequest struct {
	UserID    string         `json:"user_id" binding:"required"`
	StepsData map[string]any `json:"steps_data" binding:"required"`
}

func (h *StepsHandler) SaveSteps(c *gin.Context) {
	var req SaveStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "StepsHandler.SaveSteps", "invalid request body", err))
		return
	}

	id, err := h.svc.SaveSteps(c.Request.Context(), req.UserID, req.StepsData)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, gin.H{"record_id": id})
}

func (h *StepsHandler) Summary(c *gin.Context) {
	userID := c.Param("user_id")

	days := 7
	if s := c.Query("days"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}

	rows, err := h.svc.Summary(c.Request.Context(), userID, days)
	if err != nil {
		writeError(c, err)
		return
	}

	history := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		history = append(history, gin.H{
			"date":       r.Timestamp.UTC().Format("2006-01-02"),
			"steps_data": r.StepsData,
		})
	}

	writeSuccess(c, gin.H{
		"user_id":       userID,
		"days":          days,
		"steps_history": history,
	})
}

type ExchangeTokenRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *StepsHandler) ExchangeToken(c *gin.Context) {
	var req ExchangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "StepsHandler.ExchangeToken", "invalid request body", err))
		return
	}

	data, err := h.svc.ExchangeToken(c.Request.Context(), req.Code)
	if err != nil {
		if utils.IsCode(err, utils.CodeInvalidArgument) {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}

	writeSuccess(c, data)
}

// AuthCallback renders the OAuth popup page that hands the authorization code
// back to the opener window.
func (h *StepsHandler) AuthCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte(fmt.Sprintf("<html><body><h1>Error</h1><p>%s</p></body></html>", errParam)))
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte("<html><body><h1>Error</h1><p>No authorization code received</p></body></html>"))
		return
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Authentication Successful</title>
    <script>
        localStorage.setItem('google_auth_code', %[1]q);
        if (window.opener) {
            window.opener.postMessage({code: %[1]q}, '*');
            setTimeout(function() { window.close(); }, 1000);
        } else {
            window.location.href = '/';
        }
    </script>
</head>
<body>
    <h1>Authentication Successful</h1>
    <p>You can close this window and return to the application.</p>
</body>
</html>`, code)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
