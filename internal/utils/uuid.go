package utils

import "github.com/google/uuid"

// UUIDGenerator hands out ids for items inserted without one.
// Ids are time-ordered UUIDv7 values, falling back to random v4.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
