package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Radityatama/produk_inventory/internal/events"
	"github.com/Radityatama/produk_inventory/internal/logging"
	"github.com/Radityatama/produk_inventory/internal/models"
	"github.com/Radityatama/produk_inventory/internal/service/search"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	ES       *elasticsearch.Client
}

type productRequest struct {
	Name      string  `json:"nama_produk"`
	UnitPrice float64 `json:"harga_satuan"`
	Quantity  int64   `json:"quantity"`
}

func (r *productRequest) validate() error {
	if r.Name == "" {
		return errors.New("nama_produk must not be empty")
	}
	if r.UnitPrice <= 0 {
		return errors.New("harga_satuan must be greater than zero")
	}
	if r.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}

func (h *ProductHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicProductEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *ProductHandler) indexProduct(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, search.Index, p); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index error", "error", err, "product_id", p.ID)
	}
}

func (h *ProductHandler) unindexProduct(c echo.Context, id uuid.UUID) {
	if h.ES == nil {
		return
	}
	if err := search.DeleteProduct(c.Request().Context(), h.ES, search.Index, id.String()); err != nil {
		logging.FromContext(c.Request().Context()).Error("es delete error", "error", err, "product_id", id)
	}
}

// ListProducts returns every product ordered by name, for any signed-in role.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.listOrdered(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("list products failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": products})
}

func (h *ProductHandler) listOrdered(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := h.DB.WithContext(ctx).Order("nama_produk ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.create")

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	prod := models.Product{
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&prod).Error; err != nil {
		l.Error("create failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	h.publish(c, prod.ID.String(), map[string]interface{}{
		"type":         "product_created",
		"product_id":   prod.ID,
		"nama_produk":  prod.Name,
		"harga_satuan": prod.UnitPrice,
		"quantity":     prod.Quantity,
	})
	h.indexProduct(c, &prod)

	l.Info("product created", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	// Single UPDATE with a RowsAffected check, so a row deleted underneath
	// surfaces as 404 just like the delete path. A map is used because a
	// struct update would skip zero values such as quantity 0.
	res := h.DB.WithContext(c.Request().Context()).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"nama_produk":  req.Name,
			"harga_satuan": req.UnitPrice,
			"quantity":     req.Quantity,
		})
	if res.Error != nil {
		l.Error("update failed", "status", 500, "error", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	prod := models.Product{
		ID:        id,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	}

	h.publish(c, prod.ID.String(), map[string]interface{}{
		"type":         "product_updated",
		"product_id":   prod.ID,
		"nama_produk":  prod.Name,
		"harga_satuan": prod.UnitPrice,
		"quantity":     prod.Quantity,
	})
	h.indexProduct(c, &prod)

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	res := h.DB.WithContext(c.Request().Context()).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		l.Error("delete failed", "status", 500, "error", res.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	h.publish(c, id.String(), map[string]interface{}{
		"type":       "product_deleted",
		"product_id": id,
	})
	h.unindexProduct(c, id)

	return c.NoContent(http.StatusNoContent)
}
