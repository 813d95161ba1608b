package entity

import "github.com/google/uuid"

// Favorite is a user's wish list. Each user has at most one.
type Favorite struct {
	ID       int64
	UserID   uuid.UUID
	Products []*Product
}

// Contains reports whether productID is in the list.
func (f *Favorite) Contains(productID int64) bool {
	for _, p := range f.Products {
		if p.ID == productID {
			return true
		}
	}

	return false
}
