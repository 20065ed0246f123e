package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopdesk/backoffice/internal/money"
	"github.com/shopdesk/backoffice/internal/platform/apierr"
	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/query"
)

// Scope narrows a query before it runs (status filters, search, ...).
type Scope func(*gorm.DB) *gorm.DB

// Gateway implements the generic persistence operations shared by every
// entity. Soft-delete scoping comes from gorm.DeletedAt on the entities
// that carry it; the gateway itself is schema-agnostic. Every method takes
// an optional transaction handle; nil falls back to the root connection.
type Gateway[E any] struct {
	db   *gorm.DB
	log  *logger.Logger
	name string
}

func NewGateway[E any](db *gorm.DB, baseLog *logger.Logger, name string) *Gateway[E] {
	return &Gateway[E]{db: db, log: baseLog.With("entity", name), name: name}
}

func (g *Gateway[E]) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return g.db
}

// readErr classifies errors from read paths. A value that cannot be
// decoded back out of the store is corruption of that record, not a
// generic query failure.
func (g *Gateway[E]) readErr(err error) error {
	if errors.Is(err, money.ErrCorrupt) {
		g.log.Error("corrupt stored value", "error", err)
		return apierr.DataCorruption(err)
	}
	return err
}

// Find returns the rows matching the spec and scopes, materialized eagerly
// in the spec's order.
func (g *Gateway[E]) Find(ctx context.Context, tx *gorm.DB, spec query.Spec, scopes ...Scope) ([]*E, error) {
	db := g.conn(tx).WithContext(ctx).Model(new(E))
	for _, s := range scopes {
		db = s(db)
	}
	db = spec.Apply(db)

	rows := []*E{}
	if err := db.Find(&rows).Error; err != nil {
		return nil, g.readErr(err)
	}
	return rows, nil
}

func (g *Gateway[E]) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*E, error) {
	var row E
	err := g.conn(tx).WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound("%s %d not found", g.name, id)
	}
	if err != nil {
		return nil, g.readErr(err)
	}
	return &row, nil
}

func (g *Gateway[E]) Count(ctx context.Context, tx *gorm.DB, scopes ...Scope) (int64, error) {
	db := g.conn(tx).WithContext(ctx).Model(new(E))
	for _, s := range scopes {
		db = s(db)
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts the row, letting the store assign id and timestamps.
// Uniqueness conflicts surface as constraint violations.
func (g *Gateway[E]) Create(ctx context.Context, tx *gorm.DB, row *E) error {
	err := g.conn(tx).WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierr.ConstraintViolation("%s violates a uniqueness constraint", g.name)
	}
	return err
}

// Update applies only the given fields, leaving all others untouched.
func (g *Gateway[E]) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		_, err := g.GetByID(ctx, tx, id)
		return err
	}
	res := g.conn(tx).WithContext(ctx).Model(new(E)).Where("id = ?", id).Updates(fields)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return apierr.ConstraintViolation("%s violates a uniqueness constraint", g.name)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("%s %d not found", g.name, id)
	}
	return nil
}

// SoftDelete stamps deleted_at. Deleting an already-deleted row is an
// idempotent no-op; re-stamping the tombstone has no observable value.
func (g *Gateway[E]) SoftDelete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := g.conn(tx).WithContext(ctx)
	res := db.Delete(new(E), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: either the row never existed or it is already
	// tombstoned.
	var count int64
	if err := db.Unscoped().Model(new(E)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apierr.NotFound("%s %d not found", g.name, id)
	}
	return nil
}
