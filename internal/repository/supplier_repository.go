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

const supplierCollection = "suppliers"

// SupplierRepository defines supplier persistence operations.
type SupplierRepository interface {
	Create(ctx context.Context, sup *model.Supplier) (primitive.ObjectID, error)
	BulkCreate(ctx context.Context, sups []model.Supplier) ([]primitive.ObjectID, error)
	FindByID(ctx context.Context, id string) (*model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
	Update(ctx context.Context, id string, patch *model.SupplierPatch) (bool, error)
	Delete(ctx context.Context, id string) error
}

type supplierRepository struct {
	col *mongo.Collection
}

// NewSupplierRepository creates a new supplier repository.
func NewSupplierRepository(db *mongo.Database) SupplierRepository {
	return &supplierRepository{col: db.Collection(supplierCollection)}
}

func (r *supplierRepository) Create(ctx context.Context, sup *model.Supplier) (primitive.ObjectID, error) {
	ts := now()
	sup.ID = primitive.NilObjectID
	sup.CreatedAt = ts
	sup.UpdatedAt = ts

	res, err := r.col.InsertOne(ctx, sup)
	if err != nil {
		return primitive.NilObjectID, errs.NewStoreError("suppliers: insert", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *supplierRepository) BulkCreate(ctx context.Context, sups []model.Supplier) ([]primitive.ObjectID, error) {
	ts := now()
	docs := make([]interface{}, 0, len(sups))
	for i := range sups {
		sups[i].ID = primitive.NilObjectID
		sups[i].CreatedAt = ts
		sups[i].UpdatedAt = ts
		docs = append(docs, sups[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, errs.NewStoreError("suppliers: insert many", err)
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

func (r *supplierRepository) FindByID(ctx context.Context, id string) (*model.Supplier, error) {
	oid, err := identifier.Parse(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	var sup model.Supplier
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&sup); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}
		return nil, errs.NewStoreError("suppliers: find one", err)
	}
	return &sup, nil
}

func (r *supplierRepository) List(ctx context.Context) ([]model.Supplier, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.NewStoreError("suppliers: find", err)
	}
	sups := []model.Supplier{}
	if err := cur.All(ctx, &sups); err != nil {
		return nil, errs.NewStoreError("suppliers: decode", err)
	}
	return sups, nil
}

func (r *supplierRepository) Update(ctx context.Context, id string, patch *model.SupplierPatch) (bool, error) {
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
		return false, errs.NewStoreError("suppliers: update", err)
	}
	return changedFields(prev, fields), nil
}

func (r *supplierRepository) Delete(ctx context.Context, id string) error {
	oid, err := identifier.Parse(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errs.NewStoreError("suppliers: delete", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
