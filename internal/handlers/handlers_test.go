package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/config"
	"github.com/chenmq77/duckiki/internal/database"
	"github.com/chenmq77/duckiki/internal/jobs"
	"github.com/chenmq77/duckiki/internal/middleware"
	"github.com/chenmq77/duckiki/internal/repository"
	"github.com/chenmq77/duckiki/internal/services"
	"github.com/chenmq77/duckiki/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("file::memory:", "test")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	cfg := &config.Config{BaseCurrency: "NZD", MarketReferencePrice: 50}
	svcs := services.NewServices(repository.NewRepositories(db), worker, store, cfg, catalog.Default())

	router := gin.New()
	router.Use(middleware.RequestContext())
	NewHandlers(svcs).Register(router.Group("/api/v1"))
	return router
}

// do sends a JSON request and decodes a JSON object response
func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "handlers-test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func object(t *testing.T, body map[string]interface{}, key string) map[string]interface{} {
	t.Helper()
	v, ok := body[key].(map[string]interface{})
	require.True(t, ok, "missing %q in %v", key, body)
	return v
}

func idOf(t *testing.T, body map[string]interface{}, key string) int {
	t.Helper()
	return int(object(t, body, key)["id"].(float64))
}

var weeklyContract = map[string]interface{}{
	"contract": map[string]interface{}{
		"type":         "membership",
		"category":     "Weekly pass",
		"total_amount": 100,
		"period_type":  "weekly",
		"period_count": 4,
		"start_date":   "2099-01-05",
	},
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestCatalog(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodGet, "/api/v1/catalog", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "NZD", body["base_currency"])
	assert.Len(t, body["activity_types"], 3)
	assert.Equal(t, "NZD", body["currencies"].([]interface{})[0])
}

func TestActivityEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodPost, "/api/v1/activities",
		map[string]interface{}{"type": "swimming", "date": "2024-01-01", "distance": 1500})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	activity := object(t, body, "activity")
	assert.InDelta(t, 1.6065, activity["calculated_weight"], 1e-4)
	id := idOf(t, body, "activity")

	t.Run("note edit keeps weight", func(t *testing.T) {
		w, body := do(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/activities/%d", id),
			map[string]interface{}{"activity": map[string]interface{}{"note": "easy"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.InDelta(t, 1.6065, object(t, body, "activity")["calculated_weight"], 1e-4)
	})

	t.Run("distance edit reweighs", func(t *testing.T) {
		w, body := do(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/activities/%d", id),
			map[string]interface{}{"distance": 1000})
		require.Equal(t, http.StatusOK, w.Code)
		assert.InDelta(t, 1.0, object(t, body, "activity")["calculated_weight"], 1e-9)
	})

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		field  string
	}{
		{"swim without distance", http.MethodPost, "/api/v1/activities", map[string]interface{}{"type": "swimming", "date": "2024-01-01"}, http.StatusBadRequest, "distance"},
		{"bad date", http.MethodPost, "/api/v1/activities", map[string]interface{}{"type": "swimming", "date": "01/02/2024", "distance": 100}, http.StatusBadRequest, "date"},
		{"malformed body", http.MethodPost, "/api/v1/activities", `{"type": `, http.StatusBadRequest, ""},
		{"missing", http.MethodGet, "/api/v1/activities/999", nil, http.StatusNotFound, ""},
		{"bad id", http.MethodGet, "/api/v1/activities/abc", nil, http.StatusBadRequest, ""},
		{"delete missing", http.MethodDelete, "/api/v1/activities/999", nil, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, body["error"])
			if tt.field != "" {
				assert.Equal(t, tt.field, body["field"])
			}
		})
	}

	w, body = do(t, router, http.MethodGet, "/api/v1/activities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["activities"], 1)
	assert.EqualValues(t, 1, object(t, body, "pagination")["total"])

	w, _ = do(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/activities/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExpenseConvertAndProtection(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodPost, "/api/v1/expenses", map[string]interface{}{
		"expense": map[string]interface{}{"type": "membership", "category": "Visit pack", "amount": 120, "date": "2099-01-05"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	expenseID := idOf(t, body, "expense")
	assert.Equal(t, "NZD", object(t, body, "expense")["currency"])

	w, body = do(t, router, http.MethodPost, fmt.Sprintf("/api/v1/expenses/%d/convert-to-installment", expenseID),
		map[string]interface{}{"period_amount": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	contract := object(t, body, "contract")
	assert.EqualValues(t, 12, contract["period_count"])
	assert.Equal(t, "weekly", contract["period_type"])
	assert.EqualValues(t, 120, contract["total_amount"])

	// The expense is now a contract anchor
	w, _ = do(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/expenses/%d", expenseID), map[string]interface{}{"amount": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	w, _ = do(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/expenses/%d", expenseID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w, _ = do(t, router, http.MethodPost, fmt.Sprintf("/api/v1/expenses/%d/convert-to-installment", expenseID), map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body = do(t, router, http.MethodGet, fmt.Sprintf("/api/v1/expenses/%d", expenseID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, object(t, body, "expense")["is_installment"])

	w, _ = do(t, router, http.MethodPost, "/api/v1/expenses",
		map[string]interface{}{"type": "membership", "amount": 10, "date": "2024-01-01", "currency": "USD"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContractEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, http.MethodPost, "/api/v1/contracts/quote", map[string]interface{}{
		"start_date": "2024-01-01", "period_type": "weekly", "total_amount": 120, "period_count": 4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	quote := object(t, body, "quote")
	assert.EqualValues(t, 30, quote["period_amount"])
	assert.Equal(t, "2024-01-22", quote["last_charge_date"])

	w, body = do(t, router, http.MethodPost, "/api/v1/contracts", weeklyContract)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	contract := object(t, body, "contract")
	contractID := int(contract["id"].(float64))
	charges := contract["charges"].([]interface{})
	require.Len(t, charges, 4)
	assert.EqualValues(t, 0, contract["paid_count"])
	first := int(charges[0].(map[string]interface{})["id"].(float64))

	base := fmt.Sprintf("/api/v1/contracts/%d", contractID)

	w, body = do(t, router, http.MethodPut, fmt.Sprintf("%s/charges/%d", base, first), map[string]interface{}{"status": "paid"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	charge := object(t, body, "charge")
	assert.Equal(t, "paid", charge["status"])
	assert.NotNil(t, charge["expense_id"])

	w, _ = do(t, router, http.MethodDelete, fmt.Sprintf("%s/charges/%d", base, first), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w, _ = do(t, router, http.MethodDelete, fmt.Sprintf("%s/charges/999", base), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = do(t, router, http.MethodPut, base, map[string]interface{}{"period_count": 6})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	contract = object(t, body, "contract")
	assert.EqualValues(t, 6, contract["period_count"])
	assert.EqualValues(t, 150, contract["total_amount"])
	assert.EqualValues(t, 1, contract["paid_count"])

	w, _ = do(t, router, http.MethodPut, base, map[string]interface{}{"period_count": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, router, http.MethodGet, base+"/charges.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, strings.Count(w.Body.String(), "\n"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "charges.csv")

	w, _ = do(t, router, http.MethodGet, base+"/statement", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Weekly pass")

	w, body = do(t, router, http.MethodGet, "/api/v1/contracts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["contracts"], 1)

	w, _ = do(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, body = do(t, router, http.MethodGet, "/api/v1/expenses?kind=all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["expenses"])
}

func TestROIEndpoints(t *testing.T) {
	router := newTestRouter(t)

	do(t, router, http.MethodPost, "/api/v1/expenses", map[string]interface{}{"type": "membership", "amount": 100, "date": "2024-01-01"})
	do(t, router, http.MethodPost, "/api/v1/activities", map[string]interface{}{"type": "swimming", "date": "2024-01-02", "distance": 1000})

	w, body := do(t, router, http.MethodGet, "/api/v1/roi/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total_activities"])
	assert.EqualValues(t, 50, body["market_reference_price"])
	assert.EqualValues(t, 100, object(t, body, "paid")["total_expense"])
	assert.EqualValues(t, -50, object(t, body, "paid")["roi_percentage"])

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"missing price", map[string]interface{}{}, http.StatusBadRequest},
		{"zero price", map[string]interface{}{"price": 0}, http.StatusBadRequest},
		{"negative price", map[string]interface{}{"price": -3}, http.StatusBadRequest},
		{"valid price", map[string]interface{}{"market_price": map[string]interface{}{"price": 100}}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, router, http.MethodPut, "/api/v1/roi/market-price", tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	w, body = do(t, router, http.MethodGet, "/api/v1/roi/market-price", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 100, body["price"])

	w, body = do(t, router, http.MethodGet, "/api/v1/roi/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, object(t, body, "paid")["roi_percentage"])
}

func TestExportEndpoints(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodPost, "/api/v1/expenses", map[string]interface{}{"type": "equipment", "category": "Swim gear", "amount": 35, "date": "2024-01-01"})

	w, body := do(t, router, http.MethodGet, "/api/v1/export/snapshot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["expenses"], 1)
	assert.Contains(t, body, "roi")
	assert.Contains(t, body, "lastUpdated")

	w, body = do(t, router, http.MethodPost, "/api/v1/export/json", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "/"+services.SnapshotFile, object(t, body, "data")["file_path"])

	formats := []struct {
		format      string
		contentType string
	}{
		{"csv", "text/csv"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"pdf", "application/pdf"},
	}
	for _, f := range formats {
		t.Run(f.format, func(t *testing.T) {
			w, _ := do(t, router, http.MethodGet, "/api/v1/export?format="+f.format, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, f.contentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), "gym_roi_")
			assert.NotZero(t, w.Body.Len())
		})
	}

	w, _ = do(t, router, http.MethodGet, "/api/v1/export?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditAndJobEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w, _ := do(t, router, http.MethodPost, "/api/v1/contracts", weeklyContract)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := do(t, router, http.MethodGet, "/api/v1/audits?entity=Contract", nil)
	require.Equal(t, http.StatusOK, w.Code)
	audits := body["audits"].([]interface{})
	require.Len(t, audits, 1)
	entry := audits[0].(map[string]interface{})
	assert.Equal(t, "CREATE", entry["action"])
	assert.Equal(t, "handlers-test", entry["user_agent"])
	assert.NotEmpty(t, entry["ip_address"])

	w, body = do(t, router, http.MethodPost, "/api/v1/jobs/settle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["settled"])

	w, body = do(t, router, http.MethodGet, "/api/v1/jobs/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "queue_length")
}
