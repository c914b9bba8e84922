package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burtinsaw/PROC-sub000/internal/storage/memory"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := New(Options{
		RFQStore:        memory.NewRFQStore(),
		QuoteStore:      memory.NewQuoteStore(),
		PreferenceStore: memory.NewPreferenceStore(),
		BaseCurrency:    "TRY",
		PrefsDebounce:   time.Millisecond,
		Logger:          log.New(io.Discard, "", 0),
	})
	t.Cleanup(srv.Close)

	return srv.Router([]string{"*"})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createTestRFQ(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/rfqs", map[string]any{
		"rfqNumber":    "RFQ-2025-014",
		"title":        "Pipe fittings",
		"baseCurrency": "TRY",
		"items": []map[string]any{
			{"itemId": "i1", "description": "Steel pipe", "quantity": 100, "unit": "m"},
			{"itemId": "i2", "description": "Valve", "quantity": 20, "unit": "pcs"},
		},
		"suppliers": []map[string]any{
			{"supplierId": "s1", "name": "Acme"},
			{"supplierId": "s2", "name": "Bolt & Co"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	id, ok := body["rfqId"].(string)
	require.True(t, ok, "rfqId missing in response")
	return id
}

func submitTestQuotes(t *testing.T, router *gin.Engine, rfqID string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/rfqs/"+rfqID+"/quotes", map[string]any{
		"quotes": []map[string]any{
			{"supplierId": "s1", "itemId": "i1", "unitPrice": 100, "currency": "TRY", "deliveryTime": 5},
			{"supplierId": "s2", "itemId": "i1", "unitPrice": 110, "currency": "TRY", "deliveryTime": 3},
			{"supplierId": "s1", "itemId": "i2", "unitPrice": 50, "currency": "TRY", "deliveryTime": 7},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndGetRFQ(t *testing.T) {
	router := newTestRouter(t)
	rfqID := createTestRFQ(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/rfqs/"+rfqID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "RFQ-2025-014", body["rfqNumber"])
	assert.Equal(t, "sent", body["status"])
	assert.Len(t, body["items"], 2)
	assert.Len(t, body["suppliers"], 2)
}

func TestCreateRFQ_MissingItems(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/rfqs", map[string]any{
		"rfqNumber": "RFQ-2025-015",
		"suppliers": []map[string]any{{"supplierId": "s1", "name": "Acme"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRFQ_NotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/rfqs/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitQuotes_UnknownSupplier(t *testing.T) {
	router := newTestRouter(t)
	rfqID := createTestRFQ(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/rfqs/"+rfqID+"/quotes", map[string]any{
		"quotes": []map[string]any{
			{"supplierId": "ghost", "itemId": "i1", "unitPrice": 10},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComparisonReport(t *testing.T) {
	router := newTestRouter(t)
	rfqID := createTestRFQ(t, router)
	submitTestQuotes(t, router, rfqID)

	w := doJSON(t, router, http.MethodGet, "/api/rfqs/"+rfqID+"/comparison", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)

	info := body["rfqInfo"].(map[string]any)
	assert.Equal(t, "RFQ-2025-014", info["rfqNumber"])
	assert.Equal(t, float64(2), info["totalItems"])
	assert.Equal(t, float64(3), info["totalQuotes"])

	// Defaults: weight 70, every supplier visible.
	assert.Equal(t, float64(70), body["priceWeight"])
	assert.Len(t, body["visibleSupplierIds"], 2)

	// s1 quoted both items and is cheapest on i1, so it must lead.
	assert.Equal(t, "s1", body["recommendedSupplierId"])

	summary := body["supplierSummary"].([]any)
	require.Len(t, summary, 2)
	first := summary[0].(map[string]any)
	assert.Equal(t, "Acme", first["supplier"])
	assert.Equal(t, true, first["recommended"])

	best := body["bestPrices"].([]any)
	require.Len(t, best, 2)
	bp := best[0].(map[string]any)
	assert.Equal(t, "s1", bp["bestSupplierId"])
	assert.Equal(t, float64(100), bp["bestPrice"])
}

func TestUpdatePreferences(t *testing.T) {
	router := newTestRouter(t)
	rfqID := createTestRFQ(t, router)
	submitTestQuotes(t, router, rfqID)

	w := doJSON(t, router, http.MethodPut, "/api/rfqs/"+rfqID+"/preferences", map[string]any{
		"priceWeight":        100,
		"visibleSupplierIds": []string{"s2"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(100), body["priceWeight"])
	assert.Equal(t, []any{"s2"}, body["visibleSupplierIds"])

	// The comparison view reflects the new preferences.
	w = doJSON(t, router, http.MethodGet, "/api/rfqs/"+rfqID+"/comparison", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(100), body["priceWeight"])
	assert.Equal(t, []any{"s2"}, body["visibleSupplierIds"])

	// Scoring still covers hidden suppliers.
	assert.Equal(t, "s1", body["recommendedSupplierId"])
}

func TestCommitAward(t *testing.T) {
	router := newTestRouter(t)
	rfqID := createTestRFQ(t, router)
	submitTestQuotes(t, router, rfqID)

	w := doJSON(t, router, http.MethodPost, "/api/rfqs/"+rfqID+"/award", map[string]any{
		"supplierId": "s2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/rfqs/"+rfqID+"/comparison", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "s2", body["awardedSupplierId"])

	// The committed supplier is marked in the export, not the recommended one.
	w = doJSON(t, router, http.MethodGet, "/api/rfqs/"+rfqID+"/export?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	header := strings.SplitN(w.Body.String(), "\n", 2)[0]
	assert.Contains(t, header, `"Bolt & Co *"`)
	assert.Contains(t, header, `"Acme"`)
}

func TestCommitAward_UnknownSupplier(t *testing.T) {
	router := newTestRouter(t)
	rfqID := createTestRFQ(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/rfqs/"+rfqID+"/award", map[string]any{
		"supplierId": "ghost",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportCSV(t *testing.T) {
	router := newTestRouter(t)
	rfqID := createTestRFQ(t, router)
	submitTestQuotes(t, router, rfqID)

	w := doJSON(t, router, http.MethodGet, "/api/rfqs/"+rfqID+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"Item","Acme *","Bolt & Co"`, lines[0])
	assert.Equal(t, `"Steel pipe","100","110"`, lines[1])
	assert.Equal(t, `"Valve","50",""`, lines[2])
}

func TestExportXLSX(t *testing.T) {
	router := newTestRouter(t)
	rfqID := createTestRFQ(t, router)
	submitTestQuotes(t, router, rfqID)

	w := doJSON(t, router, http.MethodGet, "/api/rfqs/"+rfqID+"/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, w.Body.Len())
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
}

func TestExport_UnknownFormat(t *testing.T) {
	router := newTestRouter(t)
	rfqID := createTestRFQ(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/rfqs/"+rfqID+"/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
