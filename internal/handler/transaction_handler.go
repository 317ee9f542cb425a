package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventra/internal/identifier"
	"inventra/internal/model"
	"inventra/internal/service"
)

var transactionRequiredFields = []string{"product_id", "quantity", "transaction_type"}

// TransactionHandler handles inventory transaction endpoints.
type TransactionHandler struct {
	svc service.TransactionService
}

// NewTransactionHandler creates a new inventory transaction handler.
func NewTransactionHandler(svc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type createTransactionRequest struct {
	ProductID       string `json:"product_id"`
	Quantity        int    `json:"quantity"`
	TransactionType string `json:"transaction_type"`
	Reference       string `json:"reference"`
}

func (r *createTransactionRequest) toModel(productID primitive.ObjectID) model.InventoryTransaction {
	return model.InventoryTransaction{
		ProductID:       productID,
		Quantity:        r.Quantity,
		TransactionType: r.TransactionType,
		Reference:       r.Reference,
	}
}

// Create godoc
// @Summary Create an inventory transaction, or bulk create when the body is an array
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body createTransactionRequest true "Transaction payload"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /transactions/ [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	raw, isArray, ok := readBody(c)
	if !ok {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}

	if isArray {
		var reqs []createTransactionRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
		}
		// Every element must reference a well-formed product id,
		// otherwise the whole batch is rejected.
		txns := make([]model.InventoryTransaction, 0, len(reqs))
		for _, req := range reqs {
			productID, err := identifier.Parse(req.ProductID)
			if err != nil {
				return respond(c, http.StatusBadRequest, "Invalid product ID format", nil)
			}
			txns = append(txns, req.toModel(productID))
		}
		created, err := h.svc.BulkCreate(c.Request().Context(), txns)
		if err != nil {
			logServerError(c, err)
			return respond(c, http.StatusInternalServerError, "Failed to create transactions", nil)
		}
		return respond(c, http.StatusCreated, "Transactions created successfully", created)
	}

	if missing := missingFields(raw, transactionRequiredFields); len(missing) > 0 {
		return respond(c, http.StatusBadRequest, missingFieldsMessage(missing), nil)
	}
	var req createTransactionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}
	productID, err := identifier.Parse(req.ProductID)
	if err != nil {
		return respond(c, http.StatusBadRequest, "Invalid product ID format", nil)
	}

	txn := req.toModel(productID)
	created, err := h.svc.Create(c.Request().Context(), &txn)
	if err != nil {
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to create transaction", nil)
	}
	return respond(c, http.StatusCreated, "Transaction created successfully", created)
}

// List godoc
// @Summary List all inventory transactions
// @Tags transactions
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /transactions/ [get]
func (h *TransactionHandler) List(c echo.Context) error {
	txns, err := h.svc.List(c.Request().Context())
	if err != nil {
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to retrieve transactions", nil)
	}
	return respondList(c, http.StatusOK, "Transactions retrieved successfully", txns, len(txns))
}

// Get godoc
// @Summary Get an inventory transaction by id
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /transactions/{id}/ [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid transaction ID format", nil)
	}

	txn, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "Transaction not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to retrieve transaction", nil)
	}
	return respond(c, http.StatusOK, "Transaction retrieved successfully", txn)
}

type updateTransactionRequest struct {
	ProductID       *string `json:"product_id"`
	Quantity        *int    `json:"quantity"`
	TransactionType *string `json:"transaction_type"`
	Reference       *string `json:"reference"`
}

// Update godoc
// @Summary Partially update an inventory transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body updateTransactionRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /transactions/{id}/ [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid transaction ID format", nil)
	}

	raw, _, ok := readBody(c)
	if !ok {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}
	var req updateTransactionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return respond(c, http.StatusBadRequest, msgInvalidJSON, nil)
	}

	patch := model.InventoryTransactionPatch{
		Quantity:        req.Quantity,
		TransactionType: req.TransactionType,
		Reference:       req.Reference,
	}
	if req.ProductID != nil {
		productID, err := identifier.Parse(*req.ProductID)
		if err != nil {
			return respond(c, http.StatusBadRequest, "Invalid product ID format", nil)
		}
		patch.ProductID = &productID
	}

	updated, err := h.svc.Update(c.Request().Context(), id, &patch)
	if err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "Transaction not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to update transaction", nil)
	}
	return respond(c, http.StatusOK, "Transaction updated successfully", updated)
}

// Delete godoc
// @Summary Delete an inventory transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /transactions/{id}/ [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return respond(c, http.StatusBadRequest, "Invalid transaction ID format", nil)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if status := failureStatus(err); status == http.StatusNotFound {
			return respond(c, status, "Transaction not found", nil)
		}
		logServerError(c, err)
		return respond(c, http.StatusInternalServerError, "Failed to delete transaction", nil)
	}
	return c.JSON(http.StatusOK, DeleteResponse{Message: "Transaction deleted successfully"})
}
