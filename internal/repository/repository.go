// Package repository owns all persistence against MongoDB. Repositories take
// external string identifiers, validate them through the identifier codec,
// and return typed models with store errors wrapped.
package repository

import (
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// changedFields reports whether applying fields to the previous document
// would change at least one value. The updated_at stamp is set on every
// update and deliberately not part of fields, so a no-op patch reports false.
func changedFields(prev bson.M, fields map[string]interface{}) bool {
	for k, v := range fields {
		old, ok := prev[k]
		if !ok {
			return true
		}
		if !equalValue(old, v) {
			return true
		}
	}
	return false
}

// equalValue compares a decoded BSON value against a patch value. Numeric
// types are compared by value since BSON decodes integers as int32/int64.
func equalValue(a, b interface{}) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	if aok != bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
