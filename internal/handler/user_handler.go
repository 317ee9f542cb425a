package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"inventra/internal/identifier"
	"inventra/internal/model"
	"inventra/internal/service"
)

var userRequiredFields = []string{"username", "email", "password"}

// UserHandler handles user endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *createUserRequest) toModel() model.User {
	return model.User{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// Create godoc
// @Summary Create a user, or bulk create when the body is an array
// @Tags users
// @Accept json
// @Produce json
// @Param user body createUserRequest true "User payload"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /users/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	raw, isArray, ok := readBody(c)
	if !ok {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}

	if isArray {
		var reqs []createUserRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
		}
		users := make([]model.User, 0, len(reqs))
		for _, req := range reqs {
			users = append(users, req.toModel())
		}
		created, err := h.svc.BulkCreate(c.Request().Context(), users)
		if err != nil {
			logServerError(c, err)
			return respond(c, http.StatusInternalServerError, "Failed to create users", nil)
		}
		return respond(c, http.StatusCreated, "Users created successfully", created)
	}

	if missing := missingFields(raw, userRequiredFields); len(missing) > 0 {
		return respond(c, http.StatusBadRequest, missingFieldsMessage(missing), nil)
	}
	var req createUserRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid email format", nil)
	}

	user := req.toModel()
	created, err := h.svc.Create(c.Request().Context(), &user)
	if err != nil {
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to create user", nil)
	}
	return respond(c, http.StatusCreated, "User created successfully", created)
}

// List godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /users/ [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to retrieve users", nil)
	}
	return respondList(c, http.StatusOK, "Users retrieved successfully", users, len(users))
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id}/ [get]
func (h *UserHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid user ID format", nil)
	}

	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "User not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to retrieve user", nil)
	}
	return respond(c, http.StatusOK, "User retrieved successfully", user)
}

// Update godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body model.UserPatch true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id}/ [put]
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid user ID format", nil)
	}

	raw, _, ok := readBody(c)
	if !ok {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}
	var patch model.UserPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}

	updated, err := h.svc.Update(c.Request().Context(), id, &patch)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "User not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to update user", nil)
	}
	return respond(c, http.StatusOK, "User updated successfully", updated)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id}/ [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid user ID format", nil)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "User not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to delete user", nil)
	}
	return c.JSON(http.StatusOK, DeleteResponse{Message: "User deleted successfully"})
}
