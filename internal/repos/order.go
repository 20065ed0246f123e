package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopdesk/backoffice/internal/platform/apierr"
	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/query"
	"github.com/shopdesk/backoffice/internal/types"
)

type OrderRepo interface {
	// List and GetByID hydrate lines, each line's product snapshot, and the
	// client in one read. Products are loaded unscoped so lines keep their
	// snapshot even after the product is soft-deleted.
	List(ctx context.Context, tx *gorm.DB, spec query.Spec, status *types.OrderStatus) ([]*types.Order, error)
	Count(ctx context.Context, tx *gorm.DB, scopes ...Scope) (int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Order, error)
	Create(ctx context.Context, tx *gorm.DB, order *types.Order) error
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error
	ReplaceLines(ctx context.Context, tx *gorm.DB, orderID uint, lines []types.OrderLine) error
	UpdateClient(ctx context.Context, tx *gorm.DB, clientID uint, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uint) error
}

type orderRepo struct {
	*Gateway[types.Order]
	clients *Gateway[types.Client]
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{
		Gateway: NewGateway[types.Order](db, baseLog, "order"),
		clients: NewGateway[types.Client](db, baseLog, "client"),
	}
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Client").
		Preload("Lines").
		Preload("Lines.Product", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
}

func (r *orderRepo) List(ctx context.Context, tx *gorm.DB, spec query.Spec, status *types.OrderStatus) ([]*types.Order, error) {
	scopes := []Scope{withAssociations}
	if status != nil {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", *status)
		})
	}
	return r.Find(ctx, tx, spec, scopes...)
}

func (r *orderRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Order, error) {
	var order types.Order
	err := withAssociations(r.conn(tx).WithContext(ctx)).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, r.readErr(err)
	}
	return &order, nil
}

// Create inserts the order together with its nested client and lines.
// Callers wrap it in a transaction when atomicity matters.
func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *types.Order) error {
	return r.conn(tx).WithContext(ctx).Create(order).Error
}

// ReplaceLines removes every existing line for the order and inserts the
// new set. Lines have no tombstone, so the removal is physical.
func (r *orderRepo) ReplaceLines(ctx context.Context, tx *gorm.DB, orderID uint, lines []types.OrderLine) error {
	db := r.conn(tx).WithContext(ctx)
	if err := db.Where("order_id = ?", orderID).Delete(&types.OrderLine{}).Error; err != nil {
		return err
	}
	for i := range lines {
		lines[i].OrderID = orderID
	}
	if len(lines) == 0 {
		return nil
	}
	return db.Create(&lines).Error
}

func (r *orderRepo) UpdateClient(ctx context.Context, tx *gorm.DB, clientID uint, fields map[string]interface{}) error {
	return r.clients.Update(ctx, tx, clientID, fields)
}
