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

const categoryCollection = "categories"

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, cat *model.Category) (primitive.ObjectID, error)
	BulkCreate(ctx context.Context, cats []model.Category) ([]primitive.ObjectID, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id string, patch *model.CategoryPatch) (bool, error)
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	col *mongo.Collection
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &categoryRepository{col: db.Collection(categoryCollection)}
}

func (r *categoryRepository) Create(ctx context.Context, cat *model.Category) (primitive.ObjectID, error) {
	ts := now()
	cat.ID = primitive.NilObjectID
	cat.CreatedAt = ts
	cat.UpdatedAt = ts

	res, err := r.col.InsertOne(ctx, cat)
	if err != nil {
		return primitive.NilObjectID, errs.NewStoreError("categories: insert", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *categoryRepository) BulkCreate(ctx context.Context, cats []model.Category) ([]primitive.ObjectID, error) {
	ts := now()
	docs := make([]interface{}, 0, len(cats))
	for i := range cats {
		cats[i].ID = primitive.NilObjectID
		cats[i].CreatedAt = ts
		cats[i].UpdatedAt = ts
		docs = append(docs, cats[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, errs.NewStoreError("categories: insert many", err)
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	oid, err := identifier.Parse(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	var cat model.Category
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&cat); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}
		return nil, errs.NewStoreError("categories: find one", err)
	}
	return &cat, nil
}

// FindByIDs fetches the given categories in one query, keyed by id. Missing
// ids are simply absent from the result.
func (r *categoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Category, error) {
	out := map[primitive.ObjectID]model.Category{}
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errs.NewStoreError("categories: find", err)
	}
	var cats []model.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, errs.NewStoreError("categories: decode", err)
	}
	for _, cat := range cats {
		out[cat.ID] = cat
	}
	return out, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.NewStoreError("categories: find", err)
	}
	cats := []model.Category{}
	if err := cur.All(ctx, &cats); err != nil {
		return nil, errs.NewStoreError("categories: decode", err)
	}
	return cats, nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, patch *model.CategoryPatch) (bool, error) {
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
		return false, errs.NewStoreError("categories: update", err)
	}
	return changedFields(prev, fields), nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := identifier.Parse(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errs.NewStoreError("categories: delete", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
