package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	errs "inventra/internal/errors"
	"inventra/internal/identifier"
	"inventra/internal/model"
)

const userCollection = "users"

// UserRepository defines user persistence operations. Password hashing is the
// service layer's responsibility; this layer stores what it is given.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (primitive.ObjectID, error)
	BulkCreate(ctx context.Context, users []model.User) ([]primitive.ObjectID, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, patch *model.UserPatch) (bool, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection(userCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	ts := now()
	user.ID = primitive.NilObjectID
	user.CreatedAt = ts
	user.UpdatedAt = ts

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, errs.NewStoreError("users: insert", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *userRepository) BulkCreate(ctx context.Context, users []model.User) ([]primitive.ObjectID, error) {
	ts := now()
	docs := make([]interface{}, 0, len(users))
	for i := range users {
		users[i].ID = primitive.NilObjectID
		users[i].CreatedAt = ts
		users[i].UpdatedAt = ts
		docs = append(docs, users[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, errs.NewStoreError("users: insert many", err)
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := identifier.Parse(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	var user model.User
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}
		return nil, errs.NewStoreError("users: find one", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.NewStoreError("users: find", err)
	}
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, errs.NewStoreError("users: decode", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id string, patch *model.UserPatch) (bool, error) {
	oid, err := identifier.Parse(id)
	if err != nil {
		return false, errs.ErrInvalidID
	}

	fields := patch.Fields()
	set := bson.M{"updated_at": now()}
	for k, v := range fields {
		set[k] = v
	}

	var prev bson.M
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}).Decode(&prev)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, errs.ErrNotFound
		}
		return false, errs.NewStoreError("users: update", err)
	}
	return changedFields(prev, fields), nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	oid, err := identifier.Parse(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errs.NewStoreError("users: delete", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
