package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"inventra/internal/identifier"
	"inventra/internal/model"
	"inventra/internal/service"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var categoryRequiredFields = []string{"name"}

// CategoryHandler handles category endpoints. Category routes use the
// {status, message, data} envelope.
type CategoryHandler struct {
	svc service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *createCategoryRequest) toModel() model.Category {
	return model.Category{Name: r.Name, Description: r.Description}
}

// Create godoc
// @Summary Create a category, or bulk create when the body is an array
// @Tags categories
// @Accept json
// @Produce json
// @Param category body createCategoryRequest true "Category payload"
// @Success 201 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /categories/ [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	raw, isArray, ok := readBody(c)
	if !ok {
		return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
	}

	if isArray {
		var reqs []createCategoryRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
		}
		cats := make([]model.Category, 0, len(reqs))
		for _, req := range reqs {
			cats = append(cats, req.toModel())
		}
		created, err := h.svc.BulkCreate(c.Request().Context(), cats)
		if err != nil {
			logServerError(c, err)
			return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to create categories", nil)
		}
		return respondStatus(c, http.StatusCreated, statusSuccess,
			fmt.Sprintf("Created %d categories", len(created)), created)
	}

	if missing := missingFields(raw, categoryRequiredFields); len(missing) > 0 {
		return respondStatus(c, http.StatusBadRequest, statusError, missingFieldsMessage(missing), nil)
	}
	var req createCategoryRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
	}

	cat := req.toModel()
	created, err := h.svc.Create(c.Request().Context(), &cat)
	if err != nil {
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to create category", nil)
	}
	return respondStatus(c, http.StatusCreated, statusSuccess, "Category created successfully", created)
}

// List godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /categories/ [get]
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.svc.List(c.Request().Context())
	if err != nil {
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to retrieve categories", nil)
	}
	return respondStatusList(c, http.StatusOK, statusSuccess,
		fmt.Sprintf("Found %d categories", len(cats)), cats, len(cats))
}

// Get godoc
// @Summary Get a category by id
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 404 {object} StatusResponse
// @Router /categories/{id}/ [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respondStatus(c, http.StatusBadRequest, statusError, "Invalid category ID format", nil)
	}

	cat, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respondStatus(c, status, statusError, "Category not found", nil)
		}
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to retrieve category", nil)
	}
	return respondStatus(c, http.StatusOK, statusSuccess, "Category retrieved successfully", cat)
}

// Update godoc
// @Summary Partially update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body model.CategoryPatch true "Fields to update"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 404 {object} StatusResponse
// @Router /categories/{id}/ [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respondStatus(c, http.StatusBadRequest, statusError, "Invalid category ID format", nil)
	}

	raw, _, ok := readBody(c)
	if !ok {
		return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
	}
	var patch model.CategoryPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return respondStatus(c, http.StatusBadRequest, statusError, msgInvalidJSON, nil)
	}
	if patch.Name != nil && *patch.Name == "" {
		return respondStatus(c, http.StatusBadRequest, statusError, "Category name cannot be empty", nil)
	}

	updated, err := h.svc.Update(c.Request().Context(), id, &patch)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respondStatus(c, status, statusError, "Category not found", nil)
		}
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to update category", nil)
	}
	return respondStatus(c, http.StatusOK, statusSuccess, "Category updated successfully", updated)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 404 {object} StatusResponse
// @Router /categories/{id}/ [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respondStatus(c, http.StatusBadRequest, statusError, "Invalid category ID format", nil)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respondStatus(c, status, statusError, "Category not found", nil)
		}
		logServerError(c, err)
		return respondStatus(c, http.StatusInternalServerError, statusError, "Failed to delete category", nil)
	}
	return respondStatus(c, http.StatusOK, statusSuccess, "Category deleted successfully", nil)
}
