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

const locationCollection = "locations"

// LocationRepository defines location persistence operations.
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) (primitive.ObjectID, error)
	BulkCreate(ctx context.Context, locs []model.Location) ([]primitive.ObjectID, error)
	FindByID(ctx context.Context, id string) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
	Update(ctx context.Context, id string, patch *model.LocationPatch) (bool, error)
	Delete(ctx context.Context, id string) error
}

type locationRepository struct {
	col *mongo.Collection
}

// NewLocationRepository creates a new location repository.
func NewLocationRepository(db *mongo.Database) LocationRepository {
	return &locationRepository{col: db.Collection(locationCollection)}
}

func (r *locationRepository) Create(ctx context.Context, loc *model.Location) (primitive.ObjectID, error) {
	ts := now()
	loc.ID = primitive.NilObjectID
	loc.CreatedAt = ts
	loc.UpdatedAt = ts

	res, err := r.col.InsertOne(ctx, loc)
	if err != nil {
		return primitive.NilObjectID, errs.NewStoreError("locations: insert", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *locationRepository) BulkCreate(ctx context.Context, locs []model.Location) ([]primitive.ObjectID, error) {
	ts := now()
	docs := make([]interface{}, 0, len(locs))
	for i := range locs {
		locs[i].ID = primitive.NilObjectID
		locs[i].CreatedAt = ts
		locs[i].UpdatedAt = ts
		docs = append(docs, locs[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, errs.NewStoreError("locations: insert many", err)
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

func (r *locationRepository) FindByID(ctx context.Context, id string) (*model.Location, error) {
	oid, err := identifier.Parse(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	var loc model.Location
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&loc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}
		return nil, errs.NewStoreError("locations: find one", err)
	}
	return &loc, nil
}

func (r *locationRepository) List(ctx context.Context) ([]model.Location, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.NewStoreError("locations: find", err)
	}
	locs := []model.Location{}
	if err := cur.All(ctx, &locs); err != nil {
		return nil, errs.NewStoreError("locations: decode", err)
	}
	return locs, nil
}

func (r *locationRepository) Update(ctx context.Context, id string, patch *model.LocationPatch) (bool, error) {
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
		return false, errs.NewStoreError("locations: update", err)
	}
	return changedFields(prev, fields), nil
}

func (r *locationRepository) Delete(ctx context.Context, id string) error {
	oid, err := identifier.Parse(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errs.NewStoreError("locations: delete", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
