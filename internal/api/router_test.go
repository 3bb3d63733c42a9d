package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/prevalence-backend-go/internal/config"
	"github.com/jengzang/prevalence-backend-go/internal/models"
	"github.com/jengzang/prevalence-backend-go/internal/service"
)

func f64(v float64) *float64 { return &v }

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	controller := service.NewController(960, 720, 10)
	err := controller.Load(&models.Dataset{
		PracticeInfo: map[string]models.PracticeInfo{
			"P1": {Name: "Riverside Surgery", Latitude: f64(51.0), Longitude: f64(-2.5)},
			"P2": {Name: "Hill View Practice", Latitude: f64(51.4), Longitude: f64(-2.0)},
			"P3": {Name: "Market Street Surgery", Latitude: f64(51.1), Longitude: f64(-1.6)},
		},
		ConditionTotals: map[string]models.ConditionTotals{
			"Stroke": {TotalPatients: 245, PrevalencePer1000: f64(24.5)},
		},
		ConditionData: map[string]map[string]models.ConditionMetric{
			"Stroke": {
				"P1": {Patients: 120, PrevalencePer1000: f64(25)},
				"P2": {Patients: 80, PrevalencePer1000: f64(18)},
				"P3": {Patients: 45, PrevalencePer1000: f64(31)},
			},
		},
	})
	if err != nil {
		t.Fatalf("failed to load controller: %v", err)
	}

	return SetupRouter(&config.Config{JWTSecret: "test"}, controller, nil)
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"score_cards", "table", "legend", "Stroke"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard response missing %q", want)
		}
	}
}

func TestSelectUnknownConditionEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conditions/select",
		strings.NewReader(`{"condition":"Gout"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMapSVGEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/map.svg", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "image/svg+xml") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Error("map endpoint should return svg markup")
	}
}
