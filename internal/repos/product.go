package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/query"
	"github.com/shopdesk/backoffice/internal/types"
)

type ProductRepo interface {
	List(ctx context.Context, tx *gorm.DB, spec query.Spec) ([]*types.Product, error)
	Count(ctx context.Context, tx *gorm.DB, scopes ...Scope) (int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Product, error)
	Create(ctx context.Context, tx *gorm.DB, product *types.Product) error
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uint) error
}

type productRepo struct {
	*Gateway[types.Product]
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{Gateway: NewGateway[types.Product](db, baseLog, "product")}
}

func (r *productRepo) List(ctx context.Context, tx *gorm.DB, spec query.Spec) ([]*types.Product, error) {
	return r.Find(ctx, tx, spec, func(db *gorm.DB) *gorm.DB {
		return spec.ApplySearch(db, types.ProductSearchColumns...)
	})
}

func (r *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*types.Product, error) {
	results := []*types.Product{}
	if len(ids) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, r.readErr(err)
	}
	return results, nil
}
