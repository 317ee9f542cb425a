package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"inventra/internal/identifier"
	"inventra/internal/model"
	"inventra/internal/service"
)

var locationRequiredFields = []string{"name", "address", "city", "state", "country", "postal_code"}

// LocationHandler handles location endpoints.
type LocationHandler struct {
	svc service.LocationService
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(svc service.LocationService) *LocationHandler {
	return &LocationHandler{svc: svc}
}

type createLocationRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

func (r *createLocationRequest) toModel() model.Location {
	return model.Location{
		Name:       r.Name,
		Address:    r.Address,
		City:       r.City,
		State:      r.State,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
}

// Create godoc
// @Summary Create a location, or bulk create when the body is an array
// @Tags locations
// @Accept json
// @Produce json
// @Param location body createLocationRequest true "Location payload"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /locations/ [post]
func (h *LocationHandler) Create(c echo.Context) error {
	raw, isArray, ok := readBody(c)
	if !ok {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}

	if isArray {
		var reqs []createLocationRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
		}
		locs := make([]model.Location, 0, len(reqs))
		for _, req := range reqs {
			locs = append(locs, req.toModel())
		}
		created, err := h.svc.BulkCreate(c.Request().Context(), locs)
		if err != nil {
			logServerError(c, err)
			return respond(c, http.StatusInternalServerError, "Failed to create locations", nil)
		}
		return respond(c, http.StatusCreated, "Locations created successfully", created)
	}

	if missing := missingFields(raw, locationRequiredFields); len(missing) > 0 {
		return respond(c, http.StatusBadRequest, missingFieldsMessage(missing), nil)
	}
	var req createLocationRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}

	loc := req.toModel()
	created, err := h.svc.Create(c.Request().Context(), &loc)
	if err != nil {
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to create location", nil)
	}
	return respond(c, http.StatusCreated, "Location created successfully", created)
}

// List godoc
// @Summary List all locations
// @Tags locations
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /locations/ [get]
func (h *LocationHandler) List(c echo.Context) error {
	locs, err := h.svc.List(c.Request().Context())
	if err != nil {
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to retrieve locations", nil)
	}
	return respondList(c, http.StatusOK, "Locations retrieved successfully", locs, len(locs))
}

// Get godoc
// @Summary Get a location by id
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /locations/{id}/ [get]
func (h *LocationHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid location ID format", nil)
	}

	loc, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "Location not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to retrieve location", nil)
	}
	return respond(c, http.StatusOK, "Location retrieved successfully", loc)
}

// Update godoc
// @Summary Partially update a location
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param location body model.LocationPatch true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /locations/{id}/ [put]
func (h *LocationHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid location ID format", nil)
	}

	raw, _, ok := readBody(c)
	if !ok {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}
	var patch model.LocationPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}

	updated, err := h.svc.Update(c.Request().Context(), id, &patch)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "Location not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to update location", nil)
	}
	return respond(c, http.StatusOK, "Location updated successfully", updated)
}

// Delete godoc
// @Summary Delete a location
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /locations/{id}/ [delete]
func (h *LocationHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid location ID format", nil)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "Location not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to delete location", nil)
	}
	return c.JSON(http.StatusOK, DeleteResponse{Message: "Location deleted successfully"})
}
