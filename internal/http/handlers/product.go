package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopdesk/backoffice/internal/assets"
	"github.com/shopdesk/backoffice/internal/http/response"
	"github.com/shopdesk/backoffice/internal/money"
	"github.com/shopdesk/backoffice/internal/platform/apierr"
	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/query"
	"github.com/shopdesk/backoffice/internal/services"
	"github.com/shopdesk/backoffice/internal/types"
)

type ProductHandler struct {
	products services.ProductService
	store    assets.Store
	log      *logger.Logger
}

func NewProductHandler(products services.ProductService, store assets.Store, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		store:    store,
		log:      log.With("handler", "ProductHandler"),
	}
}

type productBody struct {
	Name        *string       `json:"name"`
	SKU         *string       `json:"sku"`
	Description *string       `json:"description"`
	Price       *money.Amount `json:"price"`
	InStock     *int          `json:"inStock"`
}

type productEnvelope struct {
	Product productBody `json:"product"`
}

func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apierr.InvalidArgument("invalid id %q", raw)
	}
	return uint(id), nil
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	spec, err := query.Build(query.Params{
		Limit:     c.Query("limit"),
		Offset:    c.Query("offset"),
		SortField: c.Query("sortField"),
		SortOrder: c.Query("sortOrder"),
		Search:    c.Query("query"),
	}, types.ProductSortable)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	products, err := h.products.List(c.Request.Context(), spec)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, products)
}

// GET /products/count
func (h *ProductHandler) Count(c *gin.Context) {
	count, err := h.products.Count(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": count})
}

// GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, product)
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var body productEnvelope
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}

	in := services.CreateProductInput{
		Description: body.Product.Description,
		Price:       body.Product.Price,
		InStock:     body.Product.InStock,
	}
	if body.Product.Name != nil {
		in.Name = *body.Product.Name
	}
	if body.Product.SKU != nil {
		in.SKU = *body.Product.SKU
	}

	product, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, product)
}

// POST /products/:id/edit
func (h *ProductHandler) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var body productEnvelope
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, apierr.InvalidArgument("invalid request body: %v", err))
		return
	}

	product, err := h.products.Edit(c.Request.Context(), id, services.EditProductInput{
		Name:        body.Product.Name,
		SKU:         body.Product.SKU,
		Description: body.Product.Description,
		Price:       body.Product.Price,
		InStock:     body.Product.InStock,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, product)
}

// POST /products/:id/delete
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.products.SoftDelete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /products/:id/picture (multipart, field "file")
//
// The upload is staged first and only promoted once the filename is
// recorded on the product row, so a missing product leaves no orphaned
// file behind.
func (h *ProductHandler) UploadPicture(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, apierr.InvalidArgument("multipart field \"file\" is required: %v", err))
		return
	}

	filename, err := assets.NewFilename(fileHeader.Filename)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, apierr.InvalidArgument("unreadable upload: %v", err))
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		response.RespondError(c, apierr.InvalidArgument("unreadable upload: %v", err))
		return
	}

	if err := h.store.Stage(filename, data); err != nil {
		h.log.Error("failed to stage upload", "filename", filename, "error", err)
		response.RespondError(c, err)
		return
	}

	product, err := h.products.SetPicture(c.Request.Context(), id, filename)
	if err != nil {
		h.store.Discard(filename)
		response.RespondError(c, err)
		return
	}

	if err := h.store.Commit(filename); err != nil {
		h.log.Error("failed to commit upload", "filename", filename, "error", err)
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, product)
}

// POST /products/:id/picture/delete
//
// Clears the association only; the stored file is deliberately kept.
func (h *ProductHandler) DeletePicture(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	product, err := h.products.ClearPicture(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, product)
}
