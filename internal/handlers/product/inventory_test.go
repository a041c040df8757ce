package product

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func stockRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/products/:id/stock", UpdateStock)
	return r
}

func putStock(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut,
		"/api/products/9f2c5f32-35a1-11f0-8000-000000000000/stock",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	stockRouter().ServeHTTP(w, req)
	return w
}

func TestUpdateStockAdjustmentToZeroPassesValidation(t *testing.T) {
	t.Setenv("SCYLLA_KS_CATALOG_KEYSPACE", "")

	w := putStock(t, `{"type":"adjustment","quantity":0}`)
	if w.Code == http.StatusBadRequest {
		t.Fatalf("adjustment to zero rejected as invalid: %s", w.Body.String())
	}
	// Without a catalog session the handler can only fail at storage.
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestUpdateStockRestockRequiresPositiveQuantity(t *testing.T) {
	for _, body := range []string{
		`{"type":"restock","quantity":0}`,
		`{"type":"restock","quantity":-3}`,
	} {
		if w := putStock(t, body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: code = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}
}

func TestUpdateStockRejectsNegativeAdjustment(t *testing.T) {
	if w := putStock(t, `{"type":"adjustment","quantity":-1}`); w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateStockRejectsUnknownType(t *testing.T) {
	if w := putStock(t, `{"type":"transfer","quantity":5}`); w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateStockRejectsBadProductID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/products/not-a-uuid/stock",
		strings.NewReader(`{"type":"restock","quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	stockRouter().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
