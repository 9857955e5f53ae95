package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/utils"
)

type stubStepsService struct {
	summary  *models.StepsSummary
	snaps    []models.StepsSnapshot
	token    map[string]any
	saveID   string
	err      error
	gotRange string
}

func (s *stubStepsService) GetSteps(_ context.Context, _ string, _ models.TokenInfo, timeRange string) (*models.StepsSummary, error) {
	s.gotRange = timeRange
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func (s *stubStepsService) SaveSteps(context.Context, string, map[string]any) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.saveID, nil
}

func (s *stubStepsService) Summary(context.Context, string, int) ([]models.StepsSnapshot, error) {
	return s.snaps, s.err
}

func (s *stubStepsService) ExchangeToken(context.Context, string) (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.token, nil
}

func stepsRouter(svc *stubStepsService) *gin.Engine {
	h := NewStepsHandler(svc)
	r := gin.New()
	r.POST("/api/steps/get-steps", h.GetSteps)
	r.POST("/api/steps/save-steps", h.SaveSteps)
	r.GET("/api/steps/summary/:user_id", h.Summary)
	r.POST("/api/steps/exchange-token", h.ExchangeToken)
	r.GET("/auth/callback", h.AuthCallback)
	return r
}

const stepsBody = `{"user_id": "u1", "token_info": {"access_token": "tok"}, "time_range": "week"}`

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGetStepsEndpoint(t *testing.T) {
	svc := &stubStepsService{summary: &models.StepsSummary{TimeRange: "week", TotalSteps: 42000}}
	r := stepsRouter(svc)

	w := postJSON(r, "/api/steps/get-steps", stepsBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if svc.gotRange != "week" {
		t.Errorf("time range forwarded as %q", svc.gotRange)
	}
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Status != "success" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestGetStepsAuthExpiryStaysHTTP200(t *testing.T) {
	svc := &stubStepsService{err: utils.E(utils.CodeAuthExpired, "StepsService.GetSteps", "token rejected", nil)}
	r := stepsRouter(svc)

	w := postJSON(r, "/api/steps/get-steps", stepsBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want a 200 error envelope", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["status"] != "error" {
		t.Errorf("body = %v", got)
	}
	details, _ := got["error_details"].(string)
	if !strings.Contains(details, "reconnect your Google Fit account") {
		t.Errorf("error_details = %q", details)
	}
}

func TestGetStepsInvalidBody(t *testing.T) {
	r := stepsRouter(&stubStepsService{})
	w := postJSON(r, "/api/steps/get-steps", `{"user_id": "u1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing token_info", w.Code)
	}
}

func TestSaveStepsEndpoint(t *testing.T) {
	svc := &stubStepsService{saveID: "64f000000000000000000001"}
	r := stepsRouter(svc)

	w := postJSON(r, "/api/steps/save-steps", `{"user_id": "u1", "steps_data": {"total": 5000}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var env struct {
		Status string `json:"status"`
		Data   struct {
			RecordID string `json:"record_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.RecordID != "64f000000000000000000001" {
		t.Errorf("record_id = %q", env.Data.RecordID)
	}
}

func TestSummaryEndpointClampsDays(t *testing.T) {
	svc := &stubStepsService{}
	r := stepsRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/steps/summary/u1?days=9000", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var env struct {
		Data struct {
			Days int `json:"days"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Days != 7 {
		t.Errorf("days = %d, want out-of-range value replaced by default", env.Data.Days)
	}
}

func TestAuthCallbackEmbedsCode(t *testing.T) {
	r := stepsRouter(&stubStepsService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc123", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"abc123"`) {
		t.Error("authorization code not embedded in callback page")
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}

func TestAuthCallbackMissingCode(t *testing.T) {
	r := stepsRouter(&stubStepsService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/callback", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "No authorization code received") {
		t.Errorf("status = %d, body = %s", w.Code, w.Body)
	}
}
