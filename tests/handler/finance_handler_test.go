package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hauptbau/fieldops-api/internal/config"
	"github.com/hauptbau/fieldops-api/internal/finance"
	"github.com/hauptbau/fieldops-api/internal/http/handler"
	"github.com/hauptbau/fieldops-api/internal/repository"
	"github.com/hauptbau/fieldops-api/internal/service"
	"github.com/hauptbau/fieldops-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func financeRouter(db *gorm.DB) chi.Router {
	svc := service.NewFinanceService(
		repository.NewProjectRepository(db),
		repository.NewAddendumRepository(db),
		repository.NewOrderRepository(db),
		repository.NewBillingDraftRepository(db),
		repository.NewTimeEntryRepository(db),
		repository.NewExternalInvoiceRepository(db),
		&config.FinanceConfig{FlatHourlyRate: 50},
		zap.NewNop(),
	)
	h := handler.NewFinanceHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/projects/{id}/finance", h.Breakdown)
	r.Get("/projects/{id}/finance/labor", h.LaborDetail)
	return r
}

func TestFinanceHandler_Breakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	project := testutil.CreateTestProject(t, db)
	router := financeRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.ID.String()+"/finance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var breakdown finance.Breakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &breakdown))
	assert.Equal(t, 100000.0, breakdown.TotalBudget)
	assert.Equal(t, 100000.0, breakdown.Rest.Amount)
}

func TestFinanceHandler_Breakdown_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := financeRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/projects/3f0a1fbe-67ce-4b0f-9e6a-101112131415/finance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFinanceHandler_Breakdown_InvalidID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := financeRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/projects/not-a-uuid/finance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinanceHandler_LaborDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	project := testutil.CreateTestProject(t, db)
	employee := testutil.CreateTestEmployee(t, db, testutil.Float64Ptr(40))
	testutil.CreateCompletedTimeEntry(t, db, project.ID, employee.ID, 90)
	router := financeRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.ID.String()+"/finance/labor", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		TotalMinutes    float64 `json:"totalMinutes"`
		CostFlatRate    float64 `json:"costFlatRate"`
		CostPerEmployee float64 `json:"costPerEmployee"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, 90.0, detail.TotalMinutes)
	assert.InDelta(t, 75.0, detail.CostFlatRate, 0.01)
	assert.InDelta(t, 60.0, detail.CostPerEmployee, 0.01)
}
