package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryTransaction records a stock movement against a product. The
// transaction type is free-form ("in", "out", "adjustment" by convention).
type InventoryTransaction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID       primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	TransactionType string             `bson:"transaction_type" json:"transaction_type"`
	Reference       string             `bson:"reference" json:"reference"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// InventoryTransactionPatch carries a partial update; nil fields are left untouched.
type InventoryTransactionPatch struct {
	ProductID       *primitive.ObjectID
	Quantity        *int
	TransactionType *string
	Reference       *string
}

// Fields returns the patch as a field-name to value map, skipping nil entries.
func (p *InventoryTransactionPatch) Fields() map[string]interface{} {
	m := map[string]interface{}{}
	if p.ProductID != nil {
		m["product_id"] = *p.ProductID
	}
	putInt(m, "quantity", p.Quantity)
	putString(m, "transaction_type", p.TransactionType)
	putString(m, "reference", p.Reference)
	return m
}
