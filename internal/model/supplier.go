package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supplier represents a product vendor.
type Supplier struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	ContactInfo string             `bson:"contact_info" json:"contact_info"`
	Email       string             `bson:"email" json:"email"`
	Address     string             `bson:"address" json:"address"`
	Phone       string             `bson:"phone" json:"phone"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// SupplierPatch carries a partial update; nil fields are left untouched.
type SupplierPatch struct {
	Name        *string `json:"name"`
	ContactInfo *string `json:"contact_info"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
}

// Fields returns the patch as a field-name to value map, skipping nil entries.
func (p *SupplierPatch) Fields() map[string]interface{} {
	m := map[string]interface{}{}
	putString(m, "name", p.Name)
	putString(m, "contact_info", p.ContactInfo)
	putString(m, "email", p.Email)
	putString(m, "address", p.Address)
	putString(m, "phone", p.Phone)
	return m
}
