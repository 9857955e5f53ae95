package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/providers/llm"
	"github.com/healthsync/healthsync/internal/storage"
)

type ReportService interface {
	AnalyzeReport(ctx context.Context, userID string, image []byte, contentType string) *DomainResult
}

type reportService struct {
	pipe     *Pipeline
	uploader storage.Uploader // may be nil
	log      *logrus.Logger
}

func NewReportService(pipe *Pipeline, uploader storage.Uploader, log *logrus.Logger) ReportService {
	return &reportService{pipe: pipe, uploader: uploader, log: log}
}

func (s *reportService) AnalyzeReport(ctx context.Context, userID string, image []byte, contentType string) *DomainResult {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	// The image itself cannot live in a conversation turn; archive it to
	// object storage and record only the path. Best-effort.
	storedPath := ""
	if s.uploader != nil && userID != "" {
		objectName := fmt.Sprintf("reports/%s/%s%s", userID, uuid.NewString(), extFor(contentType))
		path, err := s.uploader.Upload(ctx, objectName, contentType, bytes.NewReader(image))
		if err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("report image archive failed")
		} else {
			storedPath = path
		}
	}

	raw, err := s.pipe.Run(ctx, models.CompounderConversations, userID, 0, nil,
		func([]llm.Message) llm.Request { return ReportPrompt(image, contentType) })
	if err != nil {
		return &DomainResult{
			Status:  StatusError,
			Message: fmt.Sprintf("Failed to analyze medical report: %v", err),
		}
	}

	if userID != "" {
		metadata := map[string]any{
			"image_analyzed": true,
			"image_size":     len(image),
		}
		if storedPath != "" {
			metadata["report_path"] = storedPath
		}
		s.pipe.logPersistFailure(models.CompounderConversations, userID,
			s.pipe.Persist(ctx, models.CompounderConversations, userID,
				"Medical report analysis request", asMap(raw), metadata))
	}

	return &DomainResult{Status: StatusSuccess, Data: raw}
}

func extFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
