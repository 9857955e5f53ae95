package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/providers/llm"
)

const medicalHistoryLimit = 5

// Result statuses returned to callers.
const (
	StatusSuccess        = "success"
	StatusPartialSuccess = "partial_success"
	StatusError          = "error"
)

// MedicalQueryResult is the terminal state of one medical-query cycle. On
// partial success the model failed but the directory is still served.
type MedicalQueryResult struct {
	Status          string                `json:"status"`
	Data            *models.MedicalAdvice `json:"data,omitempty"`
	Doctors         []models.Doctor       `json:"doctors,omitempty"`
	RelevantDoctors []models.Doctor       `json:"relevant_doctors,omitempty"`
	Message         string                `json:"message,omitempty"`
}

type MedicalService interface {
	ProcessQuery(ctx context.Context, userID, query string, history []llm.Message) *MedicalQueryResult
	UserQueries(ctx context.Context, userID string, limit int64) ([]QuerySummary, error)
}

// QuerySummary is one row of a user's prior medical queries.
type QuerySummary struct {
	ID              string `json:"id"`
	Timestamp       string `json:"timestamp"`
	Query           string `json:"query"`
	ResponseSummary string `json:"response_summary"`
}

type medicalService struct {
	pipe      *Pipeline
	directory DoctorDirectory
	log       *logrus.Logger
}

func NewMedicalService(pipe *Pipeline, directory DoctorDirectory, log *logrus.Logger) MedicalService {
	return &medicalService{pipe: pipe, directory: directory, log: log}
}

func (s *medicalService) ProcessQuery(ctx context.Context, userID, query string, history []llm.Message) *MedicalQueryResult {
	raw, err := s.pipe.Run(ctx, models.MedicalConversations, userID, medicalHistoryLimit, history,
		func(h []llm.Message) llm.Request { return MedicalPrompt(query, h) })
	if err != nil {
		return s.degrade(ctx, err)
	}

	var advice models.MedicalAdvice
	if uerr := json.Unmarshal(raw, &advice); uerr != nil {
		return s.degrade(ctx, uerr)
	}

	doctors, derr := s.directory.GetDoctorList(ctx)
	if derr != nil {
		// The static fallback makes this unreachable in practice; the model
		// answer still stands without a directory.
		s.log.WithError(derr).Warn("doctor directory unavailable on success path")
	}

	specialties := advice.DoctorReferrals.Specialties()
	var relevant []models.Doctor
	if len(specialties) > 0 {
		doctors, relevant = MarkRelevantDoctors(doctors, specialties)
	}

	response := asMap(rawWithReferrals(raw, advice.DoctorReferrals))
	s.pipe.logPersistFailure(models.MedicalConversations, userID,
		s.pipe.Persist(ctx, models.MedicalConversations, userID, query, response,
			map[string]any{"recommended_specialties": specialties}))

	return &MedicalQueryResult{
		Status:          StatusSuccess,
		Data:            &advice,
		Doctors:         doctors,
		RelevantDoctors: relevant,
	}
}

// degrade is the partial-success path: the generation step failed, but the
// caller still gets a directory when one can be served.
func (s *medicalService) degrade(ctx context.Context, cause error) *MedicalQueryResult {
	doctors, derr := s.directory.GetDoctorList(ctx)
	if derr != nil {
		return &MedicalQueryResult{
			Status: StatusError,
			Message: fmt.Sprintf("Failed to process medical query: %v. Also failed to retrieve doctor list: %v",
				cause, derr),
		}
	}
	return &MedicalQueryResult{
		Status:  StatusPartialSuccess,
		Message: fmt.Sprintf("Failed to process medical query: %v", cause),
		Doctors: doctors,
	}
}

func (s *medicalService) UserQueries(ctx context.Context, userID string, limit int64) ([]QuerySummary, error) {
	turns, err := s.pipe.repo.ListByUser(ctx, models.MedicalConversations, userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]QuerySummary, 0, len(turns))
	for _, t := range turns {
		summary := "No response"
		if answer, ok := t.Response["answer"].(string); ok && answer != "" {
			summary = truncateRunes(answer, 100) + "..."
		}
		out = append(out, QuerySummary{
			ID:              t.ID.Hex(),
			Timestamp:       t.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Query:           t.Query,
			ResponseSummary: summary,
		})
	}
	return out, nil
}

// MarkRelevantDoctors flags directory entries whose specialty contains any
// recommended specialty, case-insensitive substring match. All entries come
// back flagged; the second return holds only the relevant ones.
func MarkRelevantDoctors(doctors []models.Doctor, specialties []string) (all, relevant []models.Doctor) {
	all = make([]models.Doctor, len(doctors))
	for i, doc := range doctors {
		matched := false
		docSpecialty := strings.ToLower(doc.Specialty)
		for _, want := range specialties {
			if want != "" && strings.Contains(docSpecialty, want) {
				matched = true
				break
			}
		}
		flag := matched
		doc.Relevant = &flag
		all[i] = doc
		if matched {
			relevant = append(relevant, doc)
		}
	}
	return all, relevant
}

// rawWithReferrals overlays the normalized referral list onto the raw reply so
// the stored turn carries the canonical shape.
func rawWithReferrals(raw json.RawMessage, refs models.ReferralList) map[string]any {
	m := map[string]any{}
	_ = json.Unmarshal(raw, &m)
	if len(refs) > 0 {
		m["doctor_referrals"] = refs
	}
	return m
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
