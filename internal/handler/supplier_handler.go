package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"inventra/internal/identifier"
	"inventra/internal/model"
	"inventra/internal/service"
)

var supplierRequiredFields = []string{"name", "contact_info", "email", "address", "phone"}

// SupplierHandler handles supplier endpoints.
type SupplierHandler struct {
	svc service.SupplierService
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(svc service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

type createSupplierRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

func (r *createSupplierRequest) toModel() model.Supplier {
	return model.Supplier{
		Name:        r.Name,
		ContactInfo: r.ContactInfo,
		Email:       r.Email,
		Address:     r.Address,
		Phone:       r.Phone,
	}
}

// Create godoc
// @Summary Create a supplier, or bulk create when the body is an array
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body createSupplierRequest true "Supplier payload"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /suppliers/ [post]
func (h *SupplierHandler) Create(c echo.Context) error {
	raw, isArray, ok := readBody(c)
	if !ok {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}

	if isArray {
		var reqs []createSupplierRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
		}
		sups := make([]model.Supplier, 0, len(reqs))
		for _, req := range reqs {
			sups = append(sups, req.toModel())
		}
		created, err := h.svc.BulkCreate(c.Request().Context(), sups)
		if err != nil {
			logServerError(c, err)
			return respond(c, http.StatusInternalServerError, "Failed to create suppliers", nil)
		}
		return respond(c, http.StatusCreated, "Suppliers created successfully", created)
	}

	if missing := missingFields(raw, supplierRequiredFields); len(missing) > 0 {
		return respond(c, http.StatusBadRequest, missingFieldsMessage(missing), nil)
	}
	var req createSupplierRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid email format", nil)
	}

	sup := req.toModel()
	created, err := h.svc.Create(c.Request().Context(), &sup)
	if err != nil {
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to create supplier", nil)
	}
	return respond(c, http.StatusCreated, "Supplier created successfully", created)
}

// List godoc
// @Summary List all suppliers
// @Tags suppliers
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /suppliers/ [get]
func (h *SupplierHandler) List(c echo.Context) error {
	sups, err := h.svc.List(c.Request().Context())
	if err != nil {
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to retrieve suppliers", nil)
	}
	return respondList(c, http.StatusOK, "Suppliers retrieved successfully", sups, len(sups))
}

// Get godoc
// @Summary Get a supplier by id
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /suppliers/{id}/ [get]
func (h *SupplierHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid supplier ID format", nil)
	}

	sup, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "Supplier not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to retrieve supplier", nil)
	}
	return respond(c, http.StatusOK, "Supplier retrieved successfully", sup)
}

// Update godoc
// @Summary Partially update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path string true "Supplier ID"
// @Param supplier body model.SupplierPatch true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /suppliers/{id}/ [put]
func (h *SupplierHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid supplier ID format", nil)
	}

	raw, _, ok := readBody(c)
	if !ok {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}
	var patch model.SupplierPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}

	updated, err := h.svc.Update(c.Request().Context(), id, &patch)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "Supplier not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to update supplier", nil)
	}
	return respond(c, http.StatusOK, "Supplier updated successfully", updated)
}

// Delete godoc
// @Summary Delete a supplier
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /suppliers/{id}/ [delete]
func (h *SupplierHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid supplier ID format", nil)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "Supplier not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to delete supplier", nil)
	}
	return c.JSON(http.StatusOK, DeleteResponse{Message: "Supplier deleted successfully"})
}
