// Package identifier validates and converts the external string form of
// document identifiers (24-character hex) to and from ObjectID.
package identifier

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValid reports whether s is a syntactically valid document identifier.
func IsValid(s string) bool {
	return primitive.IsValidObjectID(s)
}

// Parse converts the external string form into an ObjectID.
func Parse(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}

// Format returns the external string form of an ObjectID.
func Format(id primitive.ObjectID) string {
	return id.Hex()
}
