package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	errs "inventra/internal/errors"
	"inventra/internal/model"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) BulkCreate(ctx context.Context, ps []model.Product) ([]model.Product, error) {
	args := m.Called(ctx, ps)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, patch *model.ProductPatch) (*model.Product, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) Search(ctx context.Context, filter *model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Metrics(ctx context.Context) (*model.ProductMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductMetrics), args.Error(1)
}

func (m *MockProductService) Sorted(ctx context.Context, sortBy string, order, limit, skip int) ([]model.Product, error) {
	args := m.Called(ctx, sortBy, order, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func newProductContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeStatusResponse(t *testing.T, rec *httptest.ResponseRecorder) StatusResponse {
	t.Helper()
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestProductHandler_GetInvalidID(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)

	c, rec := newProductContext(http.MethodGet, "/products/abc/", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Invalid product ID format", resp.Message)
	mockSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestProductHandler_GetNotFound(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)
	id := primitive.NewObjectID().Hex()
	mockSvc.On("Get", mock.Anything, id).Return(nil, errs.ErrNotFound)

	c, rec := newProductContext(http.MethodGet, "/products/"+id+"/", "")
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Product not found", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestProductHandler_CreateMissingFields(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)

	c, rec := newProductContext(http.MethodPost, "/products/", `{"name": "Widget", "price": 9.99}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Missing required fields: description, quantity, category_id, supplier_id, sku", resp.Message)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductHandler_CreateInvalidForeignKeys(t *testing.T) {
	categoryID := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "bad category id",
			body:    `{"name":"Widget","description":"d","price":9.99,"quantity":5,"category_id":"bad","supplier_id":"also-bad","sku":"W-1"}`,
			message: "Invalid category ID",
		},
		{
			name:    "bad supplier id",
			body:    `{"name":"Widget","description":"d","price":9.99,"quantity":5,"category_id":"` + categoryID + `","supplier_id":"bad","sku":"W-1"}`,
			message: "Invalid supplier ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockProductService)
			h := NewProductHandler(mockSvc)

			c, rec := newProductContext(http.MethodPost, "/products/", tt.body)

			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decodeStatusResponse(t, rec)
			assert.Equal(t, tt.message, resp.Message)
			mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProductHandler_CreateSingle(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)
	categoryID := primitive.NewObjectID()
	supplierID := primitive.NewObjectID()

	created := &model.Product{ID: primitive.NewObjectID(), Name: "Widget"}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.Name == "Widget" && p.CategoryID == categoryID && p.SupplierID == supplierID
	})).Return(created, nil)

	body := `{"name":"Widget","description":"d","price":9.99,"quantity":5,` +
		`"category_id":"` + categoryID.Hex() + `","supplier_id":"` + supplierID.Hex() + `","sku":"W-1"}`
	c, rec := newProductContext(http.MethodPost, "/products/", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Product created successfully", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestProductHandler_CreateBulk(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)
	categoryID := primitive.NewObjectID().Hex()
	supplierID := primitive.NewObjectID().Hex()

	mockSvc.On("BulkCreate", mock.Anything, mock.AnythingOfType("[]model.Product")).
		Return([]model.Product{{Name: "A"}, {Name: "B"}}, nil)

	body := `[{"name":"A","description":"d","price":1,"quantity":1,"category_id":"` + categoryID +
		`","supplier_id":"` + supplierID + `","sku":"A-1"},` +
		`{"name":"B","description":"d","price":2,"quantity":2,"category_id":"` + categoryID +
		`","supplier_id":"` + supplierID + `","sku":"B-1"}]`
	c, rec := newProductContext(http.MethodPost, "/products/", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Created 2 products", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestProductHandler_CreateBulkRejectsBadForeignKey(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)
	categoryID := primitive.NewObjectID().Hex()
	supplierID := primitive.NewObjectID().Hex()

	// One malformed id fails the whole batch before any service call.
	body := `[{"name":"A","description":"d","price":1,"quantity":1,"category_id":"` + categoryID +
		`","supplier_id":"` + supplierID + `","sku":"A-1"},` +
		`{"name":"B","description":"d","price":2,"quantity":2,"category_id":"bad","supplier_id":"` +
		supplierID + `","sku":"B-1"}]`
	c, rec := newProductContext(http.MethodPost, "/products/", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Failed to create products", resp.Message)
	mockSvc.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything)
}

func TestProductHandler_CreateInvalidJSON(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)

	c, rec := newProductContext(http.MethodPost, "/products/", `{"name": `)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Invalid JSON format", resp.Message)
}

func TestProductHandler_DeleteNotFound(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)
	id := primitive.NewObjectID().Hex()
	mockSvc.On("Delete", mock.Anything, id).Return(errs.ErrNotFound)

	c, rec := newProductContext(http.MethodDelete, "/products/"+id+"/", "")
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Product not found or already deleted", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestProductHandler_SearchValidation(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{name: "bad min_price", query: "min_price=abc", message: "Invalid price value"},
		{name: "bad max_price", query: "max_price=1.2.3", message: "Invalid price value"},
		{name: "bad category_id", query: "category_id=zzz", message: "Invalid category ID"},
		{name: "bad min_quantity", query: "min_quantity=five", message: "Invalid quantity value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockProductService)
			h := NewProductHandler(mockSvc)

			c, rec := newProductContext(http.MethodGet, "/products/search/?"+tt.query, "")

			require.NoError(t, h.Search(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decodeStatusResponse(t, rec)
			assert.Equal(t, tt.message, resp.Message)
			mockSvc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		})
	}
}

func TestProductHandler_SearchBuildsFilter(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)

	mockSvc.On("Search", mock.Anything, mock.MatchedBy(func(f *model.ProductFilter) bool {
		return f.MinPrice != nil && *f.MinPrice == 10 &&
			f.MaxPrice != nil && *f.MaxPrice == 50 &&
			f.Name != nil && *f.Name == "widget" &&
			f.CategoryID == nil && f.MinQuantity == nil
	})).Return([]model.Product{{Name: "Widget"}}, nil)

	c, rec := newProductContext(http.MethodGet, "/products/search/?min_price=10&max_price=50&name=widget", "")

	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Found 1 matching products", resp.Message)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)
	mockSvc.AssertExpectations(t)
}

func TestProductHandler_SortValidation(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{name: "unknown field", query: "sort_by=sku", message: "Invalid sort field. Valid fields: name, price, quantity, created_at"},
		{name: "bad order", query: "order=2", message: "Order must be 1 (asc) or -1 (desc)"},
		{name: "non-numeric order", query: "order=up", message: "Order must be 1 (asc) or -1 (desc)"},
		{name: "zero limit", query: "limit=0", message: "Invalid pagination parameters"},
		{name: "negative skip", query: "skip=-1", message: "Invalid pagination parameters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockProductService)
			h := NewProductHandler(mockSvc)

			c, rec := newProductContext(http.MethodGet, "/products/sort/?"+tt.query, "")

			require.NoError(t, h.Sort(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decodeStatusResponse(t, rec)
			assert.Equal(t, tt.message, resp.Message)
			mockSvc.AssertNotCalled(t, "Sorted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestProductHandler_SortDefaults(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)
	mockSvc.On("Sorted", mock.Anything, "price", 1, 10, 0).
		Return([]model.Product{{Name: "A"}, {Name: "B"}}, nil)

	c, rec := newProductContext(http.MethodGet, "/products/sort/", "")

	require.NoError(t, h.Sort(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Retrieved 2 products", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestProductHandler_UpdateInvalidCategoryID(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)
	id := primitive.NewObjectID().Hex()

	c, rec := newProductContext(http.MethodPut, "/products/"+id+"/", `{"category_id":"nope"}`)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Invalid category ID", resp.Message)
	mockSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductHandler_Metrics(t *testing.T) {
	mockSvc := new(MockProductService)
	h := NewProductHandler(mockSvc)
	mockSvc.On("Metrics", mock.Anything).Return(&model.ProductMetrics{
		TotalProducts: 3,
		TotalQuantity: 42,
		AveragePrice:  12.5,
		MinPrice:      5,
		MaxPrice:      20,
	}, nil)

	c, rec := newProductContext(http.MethodGet, "/products/metrics/", "")

	require.NoError(t, h.Metrics(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeStatusResponse(t, rec)
	assert.Equal(t, "Product metrics calculated", resp.Message)
	mockSvc.AssertExpectations(t)
}
