package auction

import "github.com/google/uuid"

// User is the projection of a registered user needed by the auction domain.
type User struct {
	ID uuid.UUID
}

// ItemStatus is the catalog status of an item. Only Available items can go
// on auction; every other catalog state is carried through as-is.
type ItemStatus string

const ItemStatusAvailable ItemStatus = "AVAILABLE"

// Item is the projection of a catalog item needed by the auction domain.
type Item struct {
	ID       uuid.UUID
	Status   ItemStatus
	SellerID uuid.UUID
}

func (i Item) IsAvailable() bool { return i.Status == ItemStatusAvailable }

func (i Item) IsOwnedBy(user User) bool { return i.SellerID == user.ID }
