package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an API user account.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never exposed in JSON
	FirstName string             `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  string             `bson:"last_name,omitempty" json:"last_name,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserPatch carries a partial update; nil fields are left untouched.
// Password, when set, must already be hashed by the service layer.
type UserPatch struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Fields returns the patch as a field-name to value map, skipping nil entries.
func (p *UserPatch) Fields() map[string]interface{} {
	m := map[string]interface{}{}
	putString(m, "username", p.Username)
	putString(m, "email", p.Email)
	putString(m, "password", p.Password)
	putString(m, "first_name", p.FirstName)
	putString(m, "last_name", p.LastName)
	return m
}
