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

// MockLocationService is a mock implementation of service.LocationService.
type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) Create(ctx context.Context, loc *model.Location) (*model.Location, error) {
	args := m.Called(ctx, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockLocationService) BulkCreate(ctx context.Context, locs []model.Location) ([]model.Location, error) {
	args := m.Called(ctx, locs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *MockLocationService) Get(ctx context.Context, id string) (*model.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockLocationService) List(ctx context.Context) ([]model.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Location), args.Error(1)
}

func (m *MockLocationService) Update(ctx context.Context, id string, patch *model.LocationPatch) (*model.Location, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

func (m *MockLocationService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newLocationContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
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

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const validLocationBody = `{"name":"Main Warehouse","address":"1 Dock St","city":"Hamburg",` +
	`"state":"HH","country":"DE","postal_code":"20095"}`

func TestLocationHandler_CreateSingle(t *testing.T) {
	mockSvc := new(MockLocationService)
	h := NewLocationHandler(mockSvc)

	created := &model.Location{ID: primitive.NewObjectID(), Name: "Main Warehouse"}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(loc *model.Location) bool {
		return loc.Name == "Main Warehouse" && loc.PostalCode == "20095"
	})).Return(created, nil)

	c, rec := newLocationContext(http.MethodPost, "/locations/", validLocationBody)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Location created successfully", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestLocationHandler_CreateBulk(t *testing.T) {
	mockSvc := new(MockLocationService)
	h := NewLocationHandler(mockSvc)

	mockSvc.On("BulkCreate", mock.Anything, mock.MatchedBy(func(locs []model.Location) bool {
		return len(locs) == 2
	})).Return([]model.Location{{Name: "A"}, {Name: "B"}}, nil)

	body := `[` + validLocationBody + `,` + validLocationBody + `]`
	c, rec := newLocationContext(http.MethodPost, "/locations/", body)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Locations created successfully", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestLocationHandler_CreateMissingFields(t *testing.T) {
	mockSvc := new(MockLocationService)
	h := NewLocationHandler(mockSvc)

	c, rec := newLocationContext(http.MethodPost, "/locations/", `{"name":"Main Warehouse","city":"Hamburg"}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Missing required fields: address, state, country, postal_code", resp.Message)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLocationHandler_CreateInvalidJSON(t *testing.T) {
	mockSvc := new(MockLocationService)
	h := NewLocationHandler(mockSvc)

	c, rec := newLocationContext(http.MethodPost, "/locations/", `{not json`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid JSON format", resp.Message)
}

func TestLocationHandler_List(t *testing.T) {
	mockSvc := new(MockLocationService)
	h := NewLocationHandler(mockSvc)
	mockSvc.On("List", mock.Anything).Return([]model.Location{{Name: "A"}, {Name: "B"}}, nil)

	c, rec := newLocationContext(http.MethodGet, "/locations/", "")

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Locations retrieved successfully", resp.Message)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
	mockSvc.AssertExpectations(t)
}

func TestLocationHandler_GetInvalidID(t *testing.T) {
	mockSvc := new(MockLocationService)
	h := NewLocationHandler(mockSvc)

	c, rec := newLocationContext(http.MethodGet, "/locations/nope/", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid location ID format", resp.Message)
	mockSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestLocationHandler_UpdateNotFound(t *testing.T) {
	mockSvc := new(MockLocationService)
	h := NewLocationHandler(mockSvc)
	id := primitive.NewObjectID().Hex()
	mockSvc.On("Update", mock.Anything, id, mock.AnythingOfType("*model.LocationPatch")).
		Return(nil, errs.ErrNotFound)

	c, rec := newLocationContext(http.MethodPut, "/locations/"+id+"/", `{"city":"Berlin"}`)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Location not found", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestLocationHandler_Delete(t *testing.T) {
	mockSvc := new(MockLocationService)
	h := NewLocationHandler(mockSvc)
	id := primitive.NewObjectID().Hex()
	mockSvc.On("Delete", mock.Anything, id).Return(nil)

	c, rec := newLocationContext(http.MethodDelete, "/locations/"+id+"/", "")
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp DeleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Location deleted successfully", resp.Message)
	mockSvc.AssertExpectations(t)
}

func TestLocationHandler_DeleteNotFound(t *testing.T) {
	mockSvc := new(MockLocationService)
	h := NewLocationHandler(mockSvc)
	id := primitive.NewObjectID().Hex()
	mockSvc.On("Delete", mock.Anything, id).Return(errs.ErrNotFound)

	c, rec := newLocationContext(http.MethodDelete, "/locations/"+id+"/", "")
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "Location not found", resp.Message)
	mockSvc.AssertExpectations(t)
}
