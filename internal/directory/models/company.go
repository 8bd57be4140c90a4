// Package models defines the core domain models for the directory:
// the Company entity and the singleton Counters record.
package models

import (
	"time"
)

// Company defines the domain model for a company entry in the directory.
type Company struct {
	// ID is the server-assigned identifier for the company.
	ID uint
	// Name is the company’s name.
	Name string
	// Location is the company’s location, if provided.
	Location *string
	// Email is the company’s contact email, if provided.
	Email *string
	// Number is the company’s contact phone number, if provided.
	Number *string
	// LinkedinLink is the company’s LinkedIn profile URL, if provided.
	LinkedinLink *string
	// CompanyWebsiteLink is the company’s website URL, if provided.
	CompanyWebsiteLink *string
	// CreatedAt records the timestamp when the company was created.
	CreatedAt time.Time
	// UpdatedAt records the timestamp when the company was last updated.
	UpdatedAt time.Time
}

// CompanyUpdate represents the fields that can be updated for a Company.
// Pointer types are used to allow partial updates; a nil field is left
// untouched, a present-but-blank field is cleared to NULL.
type CompanyUpdate struct {
	// ID is the identifier of the company to update.
	ID uint
	// Name is the new name for the company.
	Name *string
	// Location is the new location.
	Location *string
	// Email is the new contact email.
	Email *string
	// Number is the new contact phone number.
	Number *string
	// LinkedinLink is the new LinkedIn profile URL.
	LinkedinLink *string
	// CompanyWebsiteLink is the new website URL.
	CompanyWebsiteLink *string
}
