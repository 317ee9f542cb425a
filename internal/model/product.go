package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the central inventory entity. CategoryID and SupplierID point at
// other collections; no referential integrity is enforced by the store.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	CategoryID  primitive.ObjectID `bson:"category_id" json:"category_id"`
	SupplierID  primitive.ObjectID `bson:"supplier_id" json:"supplier_id"`
	SKU         string             `bson:"sku" json:"sku"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`

	// Category snapshot resolved on list reads, never stored.
	Category *Category `bson:"-" json:"category,omitempty"`
}

// ProductPatch carries a partial update; nil fields are left untouched.
// FK fields hold the already-parsed identifiers.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	CategoryID  *primitive.ObjectID
	SupplierID  *primitive.ObjectID
	SKU         *string
}

// Fields returns the patch as a field-name to value map, skipping nil entries.
func (p *ProductPatch) Fields() map[string]interface{} {
	m := map[string]interface{}{}
	putString(m, "name", p.Name)
	putString(m, "description", p.Description)
	putFloat(m, "price", p.Price)
	putInt(m, "quantity", p.Quantity)
	if p.CategoryID != nil {
		m["category_id"] = *p.CategoryID
	}
	if p.SupplierID != nil {
		m["supplier_id"] = *p.SupplierID
	}
	putString(m, "sku", p.SKU)
	return m
}

// ProductFilter is a conjunction of optional search predicates. Nil fields
// impose no constraint; the zero value matches every product.
type ProductFilter struct {
	MinPrice    *float64
	MaxPrice    *float64
	Name        *string
	CategoryID  *primitive.ObjectID
	MinQuantity *int
}

// ProductMetrics aggregates the whole product collection.
type ProductMetrics struct {
	TotalProducts int     `bson:"total_products" json:"total_products"`
	TotalQuantity int     `bson:"total_quantity" json:"total_quantity"`
	AveragePrice  float64 `bson:"average_price" json:"average_price"`
	MinPrice      float64 `bson:"min_price" json:"min_price"`
	MaxPrice      float64 `bson:"max_price" json:"max_price"`
}
