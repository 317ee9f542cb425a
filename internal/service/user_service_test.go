package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	errs "inventra/internal/errors"
	"inventra/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) BulkCreate(ctx context.Context, users []model.User) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, users)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, patch *model.UserPatch) (bool, error) {
	args := m.Called(ctx, id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	id := primitive.NewObjectID()

	var stored string
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.User).Password
		}).
		Return(id, nil)
	mockRepo.On("FindByID", mock.Anything, id.Hex()).
		Return(&model.User{ID: id, Username: "jdoe"}, nil)

	svc := NewUserService(mockRepo)
	created, err := svc.Create(context.Background(), &model.User{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "s3cret",
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotEqual(t, "s3cret", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("s3cret")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_BulkCreateHashesEveryPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	var stored []model.User
	mockRepo.On("BulkCreate", mock.Anything, mock.AnythingOfType("[]model.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).([]model.User)
		}).
		Return(ids, nil)
	for _, id := range ids {
		mockRepo.On("FindByID", mock.Anything, id.Hex()).
			Return(&model.User{ID: id}, nil)
	}

	svc := NewUserService(mockRepo)
	created, err := svc.BulkCreate(context.Background(), []model.User{
		{Username: "a", Password: "first"},
		{Username: "b", Password: "second"},
	})

	assert.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Len(t, stored, 2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored[0].Password), []byte("first")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored[1].Password), []byte("second")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateHashesPatchedPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	id := primitive.NewObjectID()
	plain := "newpass"

	var patched *model.UserPatch
	mockRepo.On("Update", mock.Anything, id.Hex(), mock.AnythingOfType("*model.UserPatch")).
		Run(func(args mock.Arguments) {
			patched = args.Get(2).(*model.UserPatch)
		}).
		Return(true, nil)
	mockRepo.On("FindByID", mock.Anything, id.Hex()).
		Return(&model.User{ID: id}, nil)

	svc := NewUserService(mockRepo)
	updated, err := svc.Update(context.Background(), id.Hex(), &model.UserPatch{Password: &plain})

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.NotNil(t, patched.Password)
	assert.NotEqual(t, "newpass", *patched.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*patched.Password), []byte("newpass")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateWithoutPasswordLeavesPatchAlone(t *testing.T) {
	mockRepo := new(MockUserRepository)
	id := primitive.NewObjectID()
	email := "new@example.com"

	mockRepo.On("Update", mock.Anything, id.Hex(), mock.MatchedBy(func(p *model.UserPatch) bool {
		return p.Password == nil && p.Email != nil && *p.Email == email
	})).Return(true, nil)
	mockRepo.On("FindByID", mock.Anything, id.Hex()).
		Return(&model.User{ID: id, Email: email}, nil)

	svc := NewUserService(mockRepo)
	updated, err := svc.Update(context.Background(), id.Hex(), &model.UserPatch{Email: &email})

	assert.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	id := primitive.NewObjectID().Hex()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, errs.ErrNotFound)

	svc := NewUserService(mockRepo)
	user, err := svc.Get(context.Background(), id)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
