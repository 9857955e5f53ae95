package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthsync/healthsync/internal/services"
	"github.com/healthsync/healthsync/internal/utils"
)

// 10 MB cap on uploaded report images.
const maxReportImageBytes = 10 << 20

type ReportHandler struct {
	svc services.ReportService
}

func NewReportHandler(svc services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// AnalyzeReport accepts a multipart form with a "file" image and a "user_id"
// field.
func (h *ReportHandler) AnalyzeReport(c *gin.Context) {
	const op = "ReportHandler.AnalyzeReport"

	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing file upload", err))
		return
	}
	if fileHeader.Size > maxReportImageBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large", nil))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, maxReportImageBytes+1))
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read upload", err))
		return
	}

	userID := c.PostForm("user_id")
	contentType := fileHeader.Header.Get("Content-Type")

	c.JSON(http.StatusOK, h.svc.AnalyzeReport(c.Request.Context(), userID, image, contentType))
}
