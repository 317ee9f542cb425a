package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products. Description is optional.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CategoryPatch carries a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Fields returns the patch as a field-name to value map, skipping nil entries.
func (p *CategoryPatch) Fields() map[string]interface{} {
	m := map[string]interface{}{}
	putString(m, "name", p.Name)
	putString(m, "description", p.Description)
	return m
}
