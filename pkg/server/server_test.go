package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/qrisk-adk/pkg/engine"
	"github.com/user/qrisk-adk/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
	logging.SetOutput(io.Discard)
}

func newTestServer() *Server {
	s := New(engine.DefaultProfile(), nil)
	s.now = func() time.Time { return time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestCatalog(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Len(t, body["algorithms"], 10)
	assert.Len(t, body["usage_areas"], 8)
	assert.Len(t, body["requirements"], 8)
	assert.Contains(t, body["algorithms"], "3DES")
}

func TestRiskDefaultsToServerInventory(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/api/risk", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Len(t, body["rows"], 10)
	assert.NotEmpty(t, body["assessment_id"])
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, 10.0, summary["total_assets"])
}

func TestRiskWithPostedAssets(t *testing.T) {
	payload := `{"assets":[{"name":"X","algorithm":"des","key_size":56,"usage_area":"Core Banking","data_sensitivity":"Critical"}],"quantum_advancement":1.0}`
	w := do(t, newTestServer(), http.MethodPost, "/api/risk", payload)
	require.Equal(t, http.StatusOK, w.Code)

	rows := decode(t, w)["rows"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "DES", row["algorithm"])
	assert.Equal(t, "CRITICAL", row["threat_level"])
	assert.Equal(t, 100.0, row["migration_priority"])
}

func TestRiskRejectsBadInput(t *testing.T) {
	s := newTestServer()

	w := do(t, s, http.MethodPost, "/api/risk", `{"assets":[{"name":"X","algorithm":"RC4","key_size":128}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "unknown crypto algorithm")

	w = do(t, s, http.MethodPost, "/api/risk", `{"quantum_advancement":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/risk", `{"assets":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompliance(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/api/compliance?readiness=High", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, 100.0, body["overall_score"])
	assert.Equal(t, "Compliant", body["status"])
	assert.Len(t, body["requirements"], 8)

	w = do(t, newTestServer(), http.MethodGet, "/api/compliance", "")
	body = decode(t, w)
	assert.Equal(t, 30.0, body["overall_score"])
	assert.Len(t, body["priority_actions"], 8)
}

func TestCost(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/api/cost", `{"bank_size":"Small","algorithms":["rsa-2048","Blowfish"],"usage_areas":["Core Banking"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, 50.0, body["num_systems"])
	est := body["estimate"].(map[string]interface{})
	assert.Equal(t, 28.0, est["timeline_months"])
	assert.Len(t, est["cost_breakdown"], 8)
	assert.Len(t, body["timeline"], 5)
	assert.Len(t, body["roi"], 10)
	assert.Len(t, body["scenarios"], 3)
}

func TestExecutiveReport(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/api/report/executive", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "executive_report_20260303.md")
	assert.Contains(t, w.Body.String(), "# Quantum Computing Risk Assessment")
	assert.Contains(t, w.Body.String(), "March 03, 2026")

	w = do(t, newTestServer(), http.MethodGet, "/api/report/executive?format=json", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["assessment_id"])
	assert.Len(t, body["distribution"], 5)
}
