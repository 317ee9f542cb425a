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

// MockCategoryService is a mock implementation of service.CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, cat *model.Category) (*model.Category, error) {
	args := m.Called(ctx, cat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) BulkCreate(ctx context.Context, cats []model.Category) ([]model.Category, error) {
	args := m.Called(ctx, cats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id string, patch *model.CategoryPatch) (*model.Category, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCategoryHandler_UpdateRejectsEmptyName(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	id := primitive.NewObjectID().Hex()

	c, rec := newLocationContext(http.MethodPut, "/categories/"+id+"/", `{"name":""}`)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Category name cannot be empty", resp.Message)
	mockSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryHandler_List(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	mockSvc.On("List", mock.Anything).
		Return([]model.Category{{Name: "Tools"}, {Name: "Parts"}, {Name: "Consumables"}}, nil)

	c, rec := newLocationContext(http.MethodGet, "/categories/", "")

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Found 3 categories", resp.Message)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 3, *resp.Count)
	mockSvc.AssertExpectations(t)
}

func TestCategoryHandler_CreateBulk(t *testing.T) {
	mockSvc := new(MockCategoryService)
	h := NewCategoryHandler(mockSvc)
	mockSvc.On("BulkCreate", mock.Anything, mock.MatchedBy(func(cats []model.Category) bool {
		return len(cats) == 2
	})).Return([]model.Category{{Name: "Tools"}, {Name: "Parts"}}, nil)

	body := `[{"name":"Tools","description":"d"},{"name":"Parts","description":"d"}]`
	c, rec := newLocationContext(http.MethodPost, "/categories/", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Created 2 categories", resp.Message)
	mockSvc.AssertExpectations(t)
}
