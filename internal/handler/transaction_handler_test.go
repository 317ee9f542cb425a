package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventra/internal/model"
)

// MockTransactionService is a mock implementation of service.TransactionService.
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, txn *model.InventoryTransaction) (*model.InventoryTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryTransaction), args.Error(1)
}

func (m *MockTransactionService) BulkCreate(ctx context.Context, txns []model.InventoryTransaction) ([]model.InventoryTransaction, error) {
	args := m.Called(ctx, txns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryTransaction), args.Error(1)
}

func (m *MockTransactionService) Get(ctx context.Context, id string) (*model.InventoryTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryTransaction), args.Error(1)
}

func (m *MockTransactionService) List(ctx context.Context) ([]model.InventoryTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryTransaction), args.Error(1)
}

func (m *MockTransactionService) Update(ctx context.Context, id string, patch *model.InventoryTransactionPatch) (*model.InventoryTransaction, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryTransaction), args.Error(1)
}

func (m *MockTransactionService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestTransactionHandler_CreateInvalidProductID(t *testing.T) {
	mockSvc := new(MockTransactionService)
	h := NewTransactionHandler(mockSvc)

	body := `{"product_id":"nope","quantity":5,"transaction_type":"restock"}`
	c, rec := newLocationContext(http.MethodPost, "/transactions/", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid product ID format", resp.Message)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransactionHandler_CreateMissingFields(t *testing.T) {
	mockSvc := new(MockTransactionService)
	h := NewTransactionHandler(mockSvc)

	c, rec := newLocationContext(http.MethodPost, "/transactions/", `{"quantity":5}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Missing required fields: product_id, transaction_type", resp.Message)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransactionHandler_CreateBulkRejectsBadProductID(t *testing.T) {
	mockSvc := new(MockTransactionService)
	h := NewTransactionHandler(mockSvc)
	productID := primitive.NewObjectID().Hex()

	body := `[{"product_id":"` + productID + `","quantity":5,"transaction_type":"restock"},` +
		`{"product_id":"bad","quantity":2,"transaction_type":"sale"}]`
	c, rec := newLocationContext(http.MethodPost, "/transactions/", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid product ID format", resp.Message)
	mockSvc.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything)
}

func TestTransactionHandler_CreateSingle(t *testing.T) {
	mockSvc := new(MockTransactionService)
	h := NewTransactionHandler(mockSvc)
	productID := primitive.NewObjectID()

	created := &model.InventoryTransaction{ID: primitive.NewObjectID(), ProductID: productID}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(txn *model.InventoryTransaction) bool {
		return txn.ProductID == productID && txn.Quantity == 5 && txn.TransactionType == "restock"
	})).Return(created, nil)

	body := `{"product_id":"` + productID.Hex() + `","quantity":5,"transaction_type":"restock"}`
	c, rec := newLocationContext(http.MethodPost, "/transactions/", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Transaction created successfully", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestTransactionHandler_UpdateConvertsProductID(t *testing.T) {
	mockSvc := new(MockTransactionService)
	h := NewTransactionHandler(mockSvc)
	id := primitive.NewObjectID().Hex()
	productID := primitive.NewObjectID()

	mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(p *model.InventoryTransactionPatch) bool {
		return p.ProductID != nil && *p.ProductID == productID && p.Quantity == nil
	})).Return(&model.InventoryTransaction{ProductID: productID}, nil)

	c, rec := newLocationContext(http.MethodPut, "/transactions/"+id+"/", `{"product_id":"`+productID.Hex()+`"}`)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Transaction updated successfully", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestTransactionHandler_UpdateRejectsBadProductID(t *testing.T) {
	mockSvc := new(MockTransactionService)
	h := NewTransactionHandler(mockSvc)
	id := primitive.NewObjectID().Hex()

	c, rec := newLocationContext(http.MethodPut, "/transactions/"+id+"/", `{"product_id":"bad"}`)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid product ID format", resp.Message)
	mockSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
