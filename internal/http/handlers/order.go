package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopdesk/backoffice/internal/http/response"
	"github.com/shopdesk/backoffice/internal/money"
	"github.com/shopdesk/backoffice/internal/platform/apierr"
	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/query"
	"github.com/shopdesk/backoffice/internal/services"
	"github.com/shopdesk/backoffice/internal/types"
)

type OrderHandler struct {
	orders services.OrderService
	log    *logger.Logger
}

func NewOrderHandler(orders services.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		log:    log.With("handler", "OrderHandler"),
	}
}

type orderLineBody struct {
	ID    uint `json:"id"`
	Count int  `json:"count"`
}

type clientBody struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

type clientEditBody struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

type createOrderBody struct {
	Products []orderLineBody `json:"products"`
	Client   *clientBody     `json:"client"`
}

type editOrderBody struct {
	Products *[]orderLineBody `json:"products"`
	Client   *clientEditBody  `json:"client"`
	Status   *string          `json:"status"`
}

// The read model consumers get: lines joined with a product snapshot plus
// the client record.
type productSnapshot struct {
	ID              uint         `json:"id"`
	Name            string       `json:"name"`
	PictureFilename *string      `json:"pictureFilename"`
	Price           money.Amount `json:"price"`
}

type orderItemView struct {
	Product productSnapshot `json:"product"`
	Count   int             `json:"count"`
}

type orderView struct {
	ID        uint              `json:"id"`
	Items     []orderItemView   `json:"items"`
	Client    *clientBody       `json:"client,omitempty"`
	Status    types.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

func orderToView(order *types.Order) orderView {
	view := orderView{
		ID:        order.ID,
		Items:     make([]orderItemView, 0, len(order.Lines)),
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
	for _, line := range order.Lines {
		item := orderItemView{Count: line.Count}
		if line.Product != nil {
			item.Product = productSnapshot{
				ID:              line.Product.ID,
				Name:            line.Product.Name,
				PictureFilename: line.Product.PictureFilename,
				Price:           line.Product.Price,
			}
		}
		view.Items = append(view.Items, item)
	}
	if order.Client != nil {
		view.Client = &clientBody{
			Name:        order.Client.Name,
			Email:       order.Client.Email,
			PhoneNumber: order.Client.PhoneNumber,
			Address:     order.Client.Address,
		}
	}
	return view
}

func linesToInput(lines []orderLineBody) []services.OrderLineInput {
	inputs := make([]services.OrderLineInput, 0, len(lines))
	for _, l := range lines {
		inputs = append(inputs, services.OrderLineInput{ProductID: l.ID, Count: l.Count})
	}
	return inputs
}

// GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	spec, err := query.Build(query.Params{
		Limit:  c.Query("limit"),
		Offset: c.Query("offset"),
	}, nil)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	var status *types.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := types.OrderStatus(raw)
		status = &s
	}

	orders, err := h.orders.List(c.Request.Context(), spec, status)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderToView(order))
	}
	response.RespondOK(c, views)
}

// GET /orders/count
func (h *OrderHandler) Count(c *gin.Context) {
	count, err := h.orders.Count(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": count})
}

// GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, orderToView(order))
}

// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var body createOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}

	in := services.CreateOrderInput{Lines: linesToInput(body.Products)}
	if body.Client != nil {
		in.Client = &services.ClientInput{
			Name:        body.Client.Name,
			Email:       body.Client.Email,
			PhoneNumber: body.Client.PhoneNumber,
			Address:     body.Client.Address,
		}
	}

	order, err := h.orders.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, orderToView(order))
}

// POST /orders/:id/edit
func (h *OrderHandler) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var body editOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}

	in := services.EditOrderInput{}
	if body.Products != nil {
		lines := linesToInput(*body.Products)
		in.Lines = &lines
	}
	if body.Client != nil {
		in.Client = &services.ClientEditInput{
			Name:        body.Client.Name,
			Email:       body.Client.Email,
			PhoneNumber: body.Client.PhoneNumber,
			Address:     body.Client.Address,
		}
	}
	if body.Status != nil {
		s := types.OrderStatus(*body.Status)
		in.Status = &s
	}

	order, err := h.orders.Edit(c.Request.Context(), id, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, orderToView(order))
}

// POST /orders/:id/delete
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.orders.SoftDelete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
