package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "inventra/internal/errors"
	"inventra/internal/identifier"
	"inventra/internal/model"
)

const productCollection = "products"

// ProductRepository defines product persistence operations, including the
// search, metrics, and sorted-listing extensions.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (primitive.ObjectID, error)
	BulkCreate(ctx context.Context, ps []model.Product) ([]primitive.ObjectID, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id string, patch *model.ProductPatch) (bool, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter *model.ProductFilter) ([]model.Product, error)
	Metrics(ctx context.Context) (*model.ProductMetrics, error)
	Sorted(ctx context.Context, sortBy string, order, limit, skip int) ([]model.Product, error)
}

type productRepository struct {
	col        *mongo.Collection
	categories CategoryRepository
}

// NewProductRepository creates a new product repository. The category
// repository is used to embed category snapshots on list reads.
func NewProductRepository(db *mongo.Database, categories CategoryRepository) ProductRepository {
	return &productRepository{
		col:        db.Collection(productCollection),
		categories: categories,
	}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) (primitive.ObjectID, error) {
	ts := now()
	p.ID = primitive.NilObjectID
	p.Category = nil
	p.CreatedAt = ts
	p.UpdatedAt = ts

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, errs.NewStoreError("products: insert", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *productRepository) BulkCreate(ctx context.Context, ps []model.Product) ([]primitive.ObjectID, error) {
	ts := now()
	docs := make([]interface{}, 0, len(ps))
	for i := range ps {
		ps[i].ID = primitive.NilObjectID
		ps[i].Category = nil
		ps[i].CreatedAt = ts
		ps[i].UpdatedAt = ts
		docs = append(docs, ps[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, errs.NewStoreError("products: insert many", err)
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := identifier.Parse(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	var p model.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}
		return nil, errs.NewStoreError("products: find one", err)
	}
	return &p, nil
}

// List returns all products with their category snapshot embedded. Categories
// are fetched in one batch over the distinct id set rather than per row.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.NewStoreError("products: find", err)
	}
	products := []model.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, errs.NewStoreError("products: decode", err)
	}

	if err := r.embedCategories(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) embedCategories(ctx context.Context, products []model.Product) error {
	seen := map[primitive.ObjectID]struct{}{}
	ids := []primitive.ObjectID{}
	for _, p := range products {
		if _, ok := seen[p.CategoryID]; !ok {
			seen[p.CategoryID] = struct{}{}
			ids = append(ids, p.CategoryID)
		}
	}

	cats, err := r.categories.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range products {
		if cat, ok := cats[products[i].CategoryID]; ok {
			c := cat
			products[i].Category = &c
		}
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, id string, patch *model.ProductPatch) (bool, error) {
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
		return false, errs.NewStoreError("products: update", err)
	}
	return changedFields(prev, fields), nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	oid, err := identifier.Parse(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errs.NewStoreError("products: delete", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Search returns products matching the conjunction of set predicates. An
// empty filter matches the whole collection.
func (r *productRepository) Search(ctx context.Context, filter *model.ProductFilter) ([]model.Product, error) {
	cur, err := r.col.Find(ctx, buildSearchQuery(filter))
	if err != nil {
		return nil, errs.NewStoreError("products: search", err)
	}
	products := []model.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, errs.NewStoreError("products: decode", err)
	}
	return products, nil
}

func buildSearchQuery(filter *model.ProductFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}
	if filter.Name != nil {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(*filter.Name), "$options": "i"}
	}
	if filter.CategoryID != nil {
		query["category_id"] = *filter.CategoryID
	}
	if filter.MinQuantity != nil {
		query["quantity"] = bson.M{"$gte": *filter.MinQuantity}
	}
	return query
}

// Metrics aggregates the whole collection in one $group pass. An empty
// collection yields the zero value, never an error.
func (r *productRepository) Metrics(ctx context.Context) (*model.ProductMetrics, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_products", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_quantity", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
			{Key: "average_price", Value: bson.D{{Key: "$avg", Value: "$price"}}},
			{Key: "min_price", Value: bson.D{{Key: "$min", Value: "$price"}}},
			{Key: "max_price", Value: bson.D{{Key: "$max", Value: "$price"}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errs.NewStoreError("products: aggregate", err)
	}
	var results []model.ProductMetrics
	if err := cur.All(ctx, &results); err != nil {
		return nil, errs.NewStoreError("products: decode", err)
	}
	if len(results) == 0 {
		return &model.ProductMetrics{}, nil
	}
	return &results[0], nil
}

// Sorted returns one sorted page: sort, then skip, then limit.
func (r *productRepository) Sorted(ctx context.Context, sortBy string, order, limit, skip int) ([]model.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.NewStoreError("products: sorted find", err)
	}
	products := []model.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, errs.NewStoreError("products: decode", err)
	}
	return products, nil
}
