package entity

import (
	"time"

	"github.com/google/uuid"
)

// AddressType distinguishes billing from shipping addresses.
type AddressType string

const (
	AddressTypeBilling  AddressType = "B"
	AddressTypeShipping AddressType = "S"
)

// Address is a postal address in a user's address book.
// At most one address per (user, type) has Default set.
type Address struct {
	ID        int64
	UserID    uuid.UUID
	Street    string
	Apartment string
	Country   string // ISO 3166-1 alpha-2
	Zip       string
	Type      AddressType
	Default   bool
	CreatedAt time.Time
}

// CloneAs copies the postal fields into a new, non-default address of type t.
func (a *Address) CloneAs(t AddressType) *Address {
	return &Address{
		UserID:    a.UserID,
		Street:    a.Street,
		Apartment: a.Apartment,
		Country:   a.Country,
		Zip:       a.Zip,
		Type:      t,
	}
}
