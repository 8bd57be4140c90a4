// Package models contains the persistence models for the directory tables,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Company represents a row of the company_details table. Soft delete goes
// through gorm.DeletedAt: deleted rows keep their data but carry a deletion
// timestamp and are excluded from every query.
type Company struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	Location           *string
	Email              *string
	Number             *string
	LinkedinLink       *string
	CompanyWebsiteLink *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName maps Company onto the table the dashboard was built against.
func (Company) TableName() string {
	return "company_details"
}

// Counters represents the single row of the about_counting table. The row id
// is pinned to CountersRowID so concurrent upserts conflict on the primary
// key instead of inserting duplicates.
type Counters struct {
	ID        uint `gorm:"primaryKey"`
	Partners  int
	Booking   int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName maps Counters onto the about_counting table.
func (Counters) TableName() string {
	return "about_counting"
}

// CountersRowID is the well-known primary key of the singleton counters row.
const CountersRowID uint = 1
