package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/tabletoprandom/internal/common/uuid UUID

// UUID generates identifiers for dice and decks held by the table service
type UUID interface {
	NewUUID() string
}

// RandomUUID generates version 4 UUIDs
type RandomUUID struct{}

func New() *RandomUUID {
	return &RandomUUID{}
}

// NewUUID returns a new random UUID string
func (g *RandomUUID) NewUUID() string {
	return uuid.NewString()
}
