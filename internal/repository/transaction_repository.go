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

const transactionCollection = "inventory_transactions"

// TransactionRepository defines inventory transaction persistence operations.
// Product references are not validated against the products collection.
type TransactionRepository interface {
	Create(ctx context.Context, txn *model.InventoryTransaction) (primitive.ObjectID, error)
	BulkCreate(ctx context.Context, txns []model.InventoryTransaction) ([]primitive.ObjectID, error)
	FindByID(ctx context.Context, id string) (*model.InventoryTransaction, error)
	List(ctx context.Context) ([]model.InventoryTransaction, error)
	Update(ctx context.Context, id string, patch *model.InventoryTransactionPatch) (bool, error)
	Delete(ctx context.Context, id string) error
}

type transactionRepository struct {
	col *mongo.Collection
}

// NewTransactionRepository creates a new inventory transaction repository.
func NewTransactionRepository(db *mongo.Database) TransactionRepository {
	return &transactionRepository{col: db.Collection(transactionCollection)}
}

func (r *transactionRepository) Create(ctx context.Context, txn *model.InventoryTransaction) (primitive.ObjectID, error) {
	ts := now()
	txn.ID = primitive.NilObjectID
	txn.CreatedAt = ts
	txn.UpdatedAt = ts

	res, err := r.col.InsertOne(ctx, txn)
	if err != nil {
		return primitive.NilObjectID, errs.NewStoreError("transactions: insert", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *transactionRepository) BulkCreate(ctx context.Context, txns []model.InventoryTransaction) ([]primitive.ObjectID, error) {
	ts := now()
	docs := make([]interface{}, 0, len(txns))
	for i := range txns {
		txns[i].ID = primitive.NilObjectID
		txns[i].CreatedAt = ts
		txns[i].UpdatedAt = ts
		docs = append(docs, txns[i])
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, errs.NewStoreError("transactions: insert many", err)
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

func (r *transactionRepository) FindByID(ctx context.Context, id string) (*model.InventoryTransaction, error) {
	oid, err := identifier.Parse(id)
	if err != nil {
		return nil, errs.ErrInvalidID
	}

	var txn model.InventoryTransaction
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&txn); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}
		return nil, errs.NewStoreError("transactions: find one", err)
	}
	return &txn, nil
}

func (r *transactionRepository) List(ctx context.Context) ([]model.InventoryTransaction, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.NewStoreError("transactions: find", err)
	}
	txns := []model.InventoryTransaction{}
	if err := cur.All(ctx, &txns); err != nil {
		return nil, errs.NewStoreError("transactions: decode", err)
	}
	return txns, nil
}

func (r *transactionRepository) Update(ctx context.Context, id string, patch *model.InventoryTransactionPatch) (bool, error) {
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
		return false, errs.NewStoreError("transactions: update", err)
	}
	return changedFields(prev, fields), nil
}

func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	oid, err := identifier.Parse(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errs.NewStoreError("transactions: delete", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
