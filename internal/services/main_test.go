package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/repos"
	"github.com/shopdesk/backoffice/internal/types"
)

// testDB opens a fresh in-memory database per test. cache=shared keeps the
// database alive across the pool's connections for the test's duration.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&types.Product{}, &types.Client{}, &types.Order{}, &types.OrderLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newProductService(t *testing.T) (ProductService, *gorm.DB) {
	t.Helper()
	conn := testDB(t)
	return NewProductService(conn, logger.Nop(), repos.NewProductRepo(conn, logger.Nop())), conn
}

func newOrderService(t *testing.T) (OrderService, ProductService, *gorm.DB) {
	t.Helper()
	conn := testDB(t)
	products := repos.NewProductRepo(conn, logger.Nop())
	orders := repos.NewOrderRepo(conn, logger.Nop())
	return NewOrderService(conn, logger.Nop(), orders, products),
		NewProductService(conn, logger.Nop(), products),
		conn
}
