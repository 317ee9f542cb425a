package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location represents a warehouse or storefront location.
type Location struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Address    string             `bson:"address" json:"address"`
	City       string             `bson:"city" json:"city"`
	State      string             `bson:"state" json:"state"`
	Country    string             `bson:"country" json:"country"`
	PostalCode string             `bson:"postal_code" json:"postal_code"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// LocationPatch carries a partial update; nil fields are left untouched.
type LocationPatch struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	Country    *string `json:"country"`
	PostalCode *string `json:"postal_code"`
}

// Fields returns the patch as a field-name to value map, skipping nil entries.
func (p *LocationPatch) Fields() map[string]interface{} {
	m := map[string]interface{}{}
	putString(m, "name", p.Name)
	putString(m, "address", p.Address)
	putString(m, "city", p.City)
	putString(m, "state", p.State)
	putString(m, "country", p.Country)
	putString(m, "postal_code", p.PostalCode)
	return m
}
