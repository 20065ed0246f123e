package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopdesk/backoffice/internal/platform/apierr"
	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/query"
	"github.com/shopdesk/backoffice/internal/repos"
	"github.com/shopdesk/backoffice/internal/types"
)

type OrderLineInput struct {
	ProductID uint
	Count     int
}

type ClientInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Address     string
}

type ClientEditInput struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Address     *string
}

type CreateOrderInput struct {
	Lines  []OrderLineInput
	Client *ClientInput
}

// EditOrderInput is a partial update. A non-nil Lines slice replaces the
// order's entire line set; nil leaves it alone.
type EditOrderInput struct {
	Lines  *[]OrderLineInput
	Client *ClientEditInput
	Status *types.OrderStatus
}

type OrderService interface {
	List(ctx context.Context, spec query.Spec, status *types.OrderStatus) ([]*types.Order, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uint) (*types.Order, error)
	Create(ctx context.Context, in CreateOrderInput) (*types.Order, error)
	Edit(ctx context.Context, id uint, in EditOrderInput) (*types.Order, error)
	SoftDelete(ctx context.Context, id uint) error
}

type orderService struct {
	db       *gorm.DB
	log      *logger.Logger
	orders   repos.OrderRepo
	products repos.ProductRepo
}

func NewOrderService(db *gorm.DB, log *logger.Logger, orders repos.OrderRepo, products repos.ProductRepo) OrderService {
	return &orderService{
		db:       db,
		log:      log.With("service", "OrderService"),
		orders:   orders,
		products: products,
	}
}

func (s *orderService) List(ctx context.Context, spec query.Spec, status *types.OrderStatus) ([]*types.Order, error) {
	if status != nil && !status.Valid() {
		return nil, apierr.InvalidArgument("unknown order status %q", *status)
	}
	return s.orders.List(ctx, nil, spec, status)
}

func (s *orderService) Count(ctx context.Context) (int64, error) {
	return s.orders.Count(ctx, nil)
}

func (s *orderService) GetByID(ctx context.Context, id uint) (*types.Order, error) {
	return s.orders.GetByID(ctx, nil, id)
}

// Create inserts the order, its lines, and the client (when given) as one
// atomic unit. A bad line reference rolls everything back; a partial
// aggregate is never visible.
func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*types.Order, error) {
	if in.Client != nil {
		if err := validateClient(*in.Client); err != nil {
			return nil, err
		}
	}

	var orderID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		lines, err := s.buildLines(ctx, tx, in.Lines)
		if err != nil {
			return err
		}
		order := types.Order{
			Status: types.OrderStatusPending,
			Lines:  lines,
		}
		if in.Client != nil {
			order.Client = &types.Client{
				Name:        in.Client.Name,
				Email:       in.Client.Email,
				PhoneNumber: in.Client.PhoneNumber,
				Address:     in.Client.Address,
			}
		}
		if err := s.orders.Create(ctx, tx, &order); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created", "order_id", orderID, "line_count", len(in.Lines))
	return s.orders.GetByID(ctx, nil, orderID)
}

func (s *orderService) Edit(ctx context.Context, id uint, in EditOrderInput) (*types.Order, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, apierr.InvalidArgument("unknown order status %q", *in.Status)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if in.Client != nil {
			if order.ClientID == nil {
				return apierr.InvalidArgument("order %d has no client to edit", id)
			}
			fields := clientFields(*in.Client)
			if err := s.orders.UpdateClient(ctx, tx, *order.ClientID, fields); err != nil {
				return err
			}
		}

		if in.Lines != nil {
			lines, err := s.buildLines(ctx, tx, *in.Lines)
			if err != nil {
				return err
			}
			if err := s.orders.ReplaceLines(ctx, tx, id, lines); err != nil {
				return err
			}
		}

		if in.Status != nil {
			if err := s.orders.Update(ctx, tx, id, map[string]interface{}{"status": *in.Status}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orders.GetByID(ctx, nil, id)
}

func (s *orderService) SoftDelete(ctx context.Context, id uint) error {
	if err := s.orders.SoftDelete(ctx, nil, id); err != nil {
		return err
	}
	s.log.Info("order soft-deleted", "order_id", id)
	return nil
}

// buildLines validates the requested lines and resolves their product
// references against live products. It runs inside the caller's
// transaction so a stale reference aborts the whole write.
func (s *orderService) buildLines(ctx context.Context, tx *gorm.DB, inputs []OrderLineInput) ([]types.OrderLine, error) {
	if len(inputs) == 0 {
		return nil, apierr.InvalidArgument("an order needs at least one line")
	}

	ids := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		if in.Count < 1 {
			return nil, apierr.InvalidArgument("line count must be at least 1, got %d for product %d", in.Count, in.ProductID)
		}
		ids = append(ids, in.ProductID)
	}

	found, err := s.products.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(found))
	for _, p := range found {
		known[p.ID] = true
	}

	lines := make([]types.OrderLine, 0, len(inputs))
	for _, in := range inputs {
		if !known[in.ProductID] {
			return nil, apierr.InvalidArgument("product %d does not exist", in.ProductID)
		}
		lines = append(lines, types.OrderLine{ProductID: in.ProductID, Count: in.Count})
	}
	return lines, nil
}

func validateClient(c ClientInput) error {
	switch {
	case c.Name == "":
		return apierr.InvalidArgument("client name is required")
	case c.Email == "":
		return apierr.InvalidArgument("client email is required")
	case c.PhoneNumber == "":
		return apierr.InvalidArgument("client phone number is required")
	case c.Address == "":
		return apierr.InvalidArgument("client address is required")
	}
	return nil
}

func clientFields(in ClientEditInput) map[string]interface{} {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.PhoneNumber != nil {
		fields["phone_number"] = *in.PhoneNumber
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	return fields
}
