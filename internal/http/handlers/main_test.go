package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopdesk/backoffice/internal/assets"
	"github.com/shopdesk/backoffice/internal/http/handlers"
	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/repos"
	"github.com/shopdesk/backoffice/internal/server"
	"github.com/shopdesk/backoffice/internal/services"
	"github.com/shopdesk/backoffice/internal/types"
)

type testServer struct {
	router *gin.Engine
	store  assets.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&types.Product{}, &types.Client{}, &types.Order{}, &types.OrderLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logger.Nop()
	store, err := assets.NewLocalStore(t.TempDir(), log)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	productRepo := repos.NewProductRepo(conn, log)
	orderRepo := repos.NewOrderRepo(conn, log)
	productService := services.NewProductService(conn, log, productRepo)
	orderService := services.NewOrderService(conn, log, orderRepo, productRepo)

	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		HealthHandler:  handlers.NewHealthHandler(),
		ProductHandler: handlers.NewProductHandler(productService, store, log),
		OrderHandler:   handlers.NewOrderHandler(orderService, log),
		UploadsDir:     store.Root(),
	})
	return &testServer{router: router, store: store}
}

func (ts *testServer) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) upload(t *testing.T, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func createProduct(t *testing.T, ts *testServer, sku, name, price string) map[string]interface{} {
	t.Helper()
	rec := ts.doJSON(t, http.MethodPost, "/products", gin.H{
		"product": gin.H{"name": name, "sku": sku, "price": json.Number(price)},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create product: status %d body %s", rec.Code, rec.Body.String())
	}
	var product map[string]interface{}
	decode(t, rec, &product)
	return product
}
