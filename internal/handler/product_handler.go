package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventra/internal/identifier"
	"inventra/internal/model"
	"inventra/internal/service"
)

var (
	productRequiredFields = []string{"name", "description", "price", "quantity", "category_id", "supplier_id", "sku"}
	productSortFields     = []string{"name", "price", "quantity", "created_at"}
)

const (
	defaultSortField = "price"
	defaultSortOrder = 1
	defaultLimit     = 10
	defaultSkip      = 0
)

// ProductHandler handles product endpoints, including search, metrics, and
// sorted listing. Product routes use the {status, message, data} envelope.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	CategoryID  string  `json:"category_id"`
	SupplierID  string  `json:"supplier_id"`
	SKU         string  `json:"sku"`
}

func (r *createProductRequest) toModel(categoryID, supplierID primitive.ObjectID) model.Product {
	return model.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		CategoryID:  categoryID,
		SupplierID:  supplierID,
		SKU:         r.SKU,
	}
}

// Create godoc
// @Summary Create a product, or bulk create when the body is an array
// @Tags products
// @Accept json
// @Produce json
// @Param product body createProductRequest true "Product payload"
// @Success 201 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /products/ [post]
func (h *ProductHandler) Create(c echo.Context) error {
	raw, isArray, ok := readBody(c)
	if !ok {
		return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
	}

	if isArray {
		var reqs []createProductRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
		}
		// Every element must carry well-formed FK ids or the batch fails.
		products := make([]model.Product, 0, len(reqs))
		for _, req := range reqs {
			categoryID, err := identifier.Parse(req.CategoryID)
			if err != nil {
				return respondStatus(c, http.StatusBadRequest, statusError, "Failed to create products", nil)
			}
			supplierID, err := identifier.Parse(req.SupplierID)
			if err != nil {
				return respondStatus(c, http.StatusBadRequest, statusError, "Failed to create products", nil)
			}
			products = append(products, req.toModel(categoryID, supplierID))
		}
		created, err := h.svc.BulkCreate(c.Request().Context(), products)
		if err != nil {
			logServerError(c, err)
			return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to create products", nil)
		}
		return respondStatus(c, http.StatusCreated, statusSuccess,
			fmt.Sprintf("Created %d products", len(created)), created)
	}

	if missing := missingFields(raw, productRequiredFields); len(missing) > 0 {
		return respondStatus(c, http.StatusBadRequest, statusError, missingFieldsMessage(missing), nil)
	}
	var req createProductRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
	}
	categoryID, err := identifier.Parse(req.CategoryID)
	if err != nil {
		return respondStatus(c, http.StatusBadRequest, statusError, "Invalid category ID", nil)
	}
	supplierID, err := identifier.Parse(req.SupplierID)
	if err != nil {
		return respondStatus(c, http.StatusBadRequest, statusError, "Invalid supplier ID", nil)
	}

	product := req.toModel(categoryID, supplierID)
	created, err := h.svc.Create(c.Request().Context(), &product)
	if err != nil {
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to create product", nil)
	}
	return respondStatus(c, http.StatusCreated, statusSuccess, "Product created successfully", created)
}

// List godoc
// @Summary List all products with embedded category details
// @Tags products
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /products/ [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.svc.List(c.Request().Context())
	if err != nil {
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to retrieve products", nil)
	}
	return respondStatusList(c, http.StatusOK, statusSuccess,
		fmt.Sprintf("Found %d products", len(products)), products, len(products))
}

// Get godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 404 {object} StatusResponse
// @Router /products/{id}/ [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respondStatus(c, http.StatusBadRequest, statusError, "Invalid product ID format", nil)
	}

	product, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respondStatus(c, status, statusError, "Product not found", nil)
		}
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to retrieve product", nil)
	}
	return respondStatus(c, http.StatusOK, statusSuccess, "Product retrieved successfully", product)
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	CategoryID  *string  `json:"category_id"`
	SupplierID  *string  `json:"supplier_id"`
	SKU         *string  `json:"sku"`
}

// Update godoc
// @Summary Partially update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body updateProductRequest true "Fields to update"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 404 {object} StatusResponse
// @Router /products/{id}/ [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respondStatus(c, http.StatusBadRequest, statusError, "Invalid product ID format", nil)
	}

	raw, _, ok := readBody(c)
	if !ok {
		return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
	}
	var req updateProductRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
	}

	patch := model.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		SKU:         req.SKU,
	}
	if req.CategoryID != nil {
		categoryID, err := identifier.Parse(*req.CategoryID)
		if err != nil {
			return respondStatus(c, http.StatusBadRequest, statusError, "Invalid category ID", nil)
		}
		patch.CategoryID = &categoryID
	}
	if req.SupplierID != nil {
		supplierID, err := identifier.Parse(*req.SupplierID)
		if err != nil {
			return respondStatus(c, http.StatusBadRequest, statusError, "Invalid supplier ID", nil)
		}
		patch.SupplierID = &supplierID
	}

	updated, err := h.svc.Update(c.Request().Context(), id, &patch)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respondStatus(c, status, statusError, "Product not found", nil)
		}
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Product update failed", nil)
	}
	return respondStatus(c, http.StatusOK, statusSuccess, "Product updated successfully", updated)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 404 {object} StatusResponse
// @Router /products/{id}/ [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respondStatus(c, http.StatusBadRequest, statusError, "Invalid product ID format", nil)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respondStatus(c, status, statusError, "Product not found or already deleted", nil)
		}
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to delete product", nil)
	}
	return respondStatus(c, http.StatusOK, statusSuccess, "Product deleted successfully", nil)
}

// Search godoc
// @Summary Search products by optional filters
// @Tags products
// @Produce json
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param name query string false "Substring of product name, case-insensitive"
// @Param category_id query string false "Category ID"
// @Param min_quantity query integer false "Minimum quantity"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Router /products/search/ [get]
func (h *ProductHandler) Search(c echo.Context) error {
	filter := model.ProductFilter{}

	if v := c.QueryParam("min_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return respondStatus(c, http.StatusBadRequest, statusError, "Invalid price value", nil)
		}
		filter.MinPrice = &price
	}
	if v := c.QueryParam("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return respondStatus(c, http.StatusBadRequest, statusError, "Invalid price value", nil)
		}
		filter.MaxPrice = &price
	}
	if v := c.QueryParam("name"); v != "" {
		filter.Name = &v
	}
	if v := c.QueryParam("category_id"); v != "" {
		categoryID, err := identifier.Parse(v)
		if err != nil {
			return respondStatus(c, http.StatusBadRequest, statusError, "Invalid category ID", nil)
		}
		filter.CategoryID = &categoryID
	}
	if v := c.QueryParam("min_quantity"); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil {
			return respondStatus(c, http.StatusBadRequest, statusError, "Invalid quantity value", nil)
		}
		filter.MinQuantity = &qty
	}

	products, err := h.svc.Search(c.Request().Context(), &filter)
	if err != nil {
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to search products", nil)
	}
	return respondStatusList(c, http.StatusOK, statusSuccess,
		fmt.Sprintf("Found %d matching products", len(products)), products, len(products))
}

// Metrics godoc
// @Summary Aggregate metrics over the whole product collection
// @Tags products
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /products/metrics/ [get]
func (h *ProductHandler) Metrics(c echo.Context) error {
	metrics, err := h.svc.Metrics(c.Request().Context())
	if err != nil {
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to calculate metrics", nil)
	}
	return respondStatus(c, http.StatusOK, statusSuccess, "Product metrics calculated", metrics)
}

// Sort godoc
// @Summary List products sorted by one field with offset pagination
// @Tags products
// @Produce json
// @Param sort_by query string false "Sort field: name, price, quantity, created_at" default(price)
// @Param order query integer false "1 ascending, -1 descending" default(1)
// @Param limit query integer false "Page size" default(10)
// @Param skip query integer false "Records to skip" default(0)
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Router /products/sort/ [get]
func (h *ProductHandler) Sort(c echo.Context) error {
	sortBy := defaultSortField
	if v := c.QueryParam("sort_by"); v != "" {
		sortBy = v
	}
	if !validSortField(sortBy) {
		return respondStatus(c, http.StatusBadRequest, statusError,
			"Invalid sort field. Valid fields: "+strings.Join(productSortFields, ", "), nil)
	}

	order := defaultSortOrder
	if v := c.QueryParam("order"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || (parsed != 1 && parsed != -1) {
			return respondStatus(c, http.StatusBadRequest, statusError, "Order must be 1 (asc) or -1 (desc)", nil)
		}
		order = parsed
	}

	limit := defaultLimit
	skip := defaultSkip
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return respondStatus(c, http.StatusBadRequest, statusError, "Invalid pagination parameters", nil)
		}
		limit = parsed
	}
	if v := c.QueryParam("skip"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return respondStatus(c, http.StatusBadRequest, statusError, "Invalid pagination parameters", nil)
		}
		skip = parsed
	}

	products, err := h.svc.Sorted(c.Request().Context(), sortBy, order, limit, skip)
	if err != nil {
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to retrieve products", nil)
	}
	return respondStatusList(c, http.StatusOK, statusSuccess,
		fmt.Sprintf("Retrieved %d products", len(products)), products, len(products))
}

func validSortField(field string) bool {
	for _, f := range productSortFields {
		if f == field {
			return true
		}
	}
	return false
}
