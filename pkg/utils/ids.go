package utils

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewObjectID returns a new 24 character hex object id.
func NewObjectID() string {
	return primitive.NewObjectID().Hex()
}

// IsObjectID reports whether s is a well-formed object id.
func IsObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}
