package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	dbmodels "github.com/companydesk/directory/internal/directory/db/models"
	e "github.com/companydesk/directory/internal/directory/errors"
	"github.com/companydesk/directory/internal/directory/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewRepository opens the PostgreSQL connection, retrying with exponential
// backoff while the database comes up, and migrates both tables.
func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	var db *gorm.DB
	connect := func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(connect, bo); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewRepositoryFromDB(db)
}

// NewRepositoryFromDB wraps an already-open gorm connection and migrates the
// tables; used by tests and tools that manage their own connection.
func NewRepositoryFromDB(gdb *gorm.DB) (*Repository, error) {
	if err := gdb.AutoMigrate(&dbmodels.Company{}, &dbmodels.Counters{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Repository{db: gdb}, nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	var rows []dbmodels.Company
	result := r.db.WithContext(ctx).Order("id DESC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	companies := make([]*models.Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, companyToDomain(&rows[i]))
	}
	return companies, nil
}

func (r *Repository) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	var row dbmodels.Company
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return companyToDomain(&row), nil
}

func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	row := companyToRow(company)
	result := r.db.WithContext(ctx).Create(row)
	if result.Error != nil {
		return result.Error
	}
	company.ID = row.ID
	company.CreatedAt = row.CreatedAt
	company.UpdatedAt = row.UpdatedAt
	return nil
}

// UpdateCompany applies the non-nil fields of the update to the live row.
// Blank values clear the column to NULL, matching what the dashboard sends
// when a field is emptied.
func (r *Repository) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error {
	values := map[string]interface{}{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	setNullable(values, "location", update.Location)
	setNullable(values, "email", update.Email)
	setNullable(values, "number", update.Number)
	setNullable(values, "linkedin_link", update.LinkedinLink)
	setNullable(values, "company_website_link", update.CompanyWebsiteLink)
	if len(values) == 0 {
		// Empty update still refreshes updated_at, like the original PUT.
		values["updated_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&dbmodels.Company{}).
		Where("id = ?", update.ID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteCompany(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&dbmodels.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) GetCounters(ctx context.Context) (*models.Counters, error) {
	var row dbmodels.Counters
	result := r.db.WithContext(ctx).First(&row, "id = ?", dbmodels.CountersRowID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return countersToDomain(&row), nil
}

// UpsertCounters writes the singleton counters row as one atomic statement:
// INSERT ... ON CONFLICT (id) DO UPDATE keyed on the fixed row id. Concurrent
// callers serialize on the primary key instead of racing a check-then-act.
func (r *Repository) UpsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error) {
	row := dbmodels.Counters{ID: dbmodels.CountersRowID, Partners: partners, Booking: booking}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"partners", "booking", "updated_at"}),
	}).Create(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	return countersToDomain(&row), nil
}

// InsertCounters creates the counters row only if none exists yet.
func (r *Repository) InsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error) {
	row := dbmodels.Counters{ID: dbmodels.CountersRowID, Partners: partners, Booking: booking}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, e.ErrAlreadyExists
	}
	return countersToDomain(&row), nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func setNullable(values map[string]interface{}, column string, field *string) {
	if field == nil {
		return
	}
	if *field == "" {
		values[column] = nil
		return
	}
	values[column] = *field
}

func companyToRow(c *models.Company) *dbmodels.Company {
	return &dbmodels.Company{
		ID:                 c.ID,
		Name:               c.Name,
		Location:           c.Location,
		Email:              c.Email,
		Number:             c.Number,
		LinkedinLink:       c.LinkedinLink,
		CompanyWebsiteLink: c.CompanyWebsiteLink,
	}
}

func companyToDomain(row *dbmodels.Company) *models.Company {
	return &models.Company{
		ID:                 row.ID,
		Name:               row.Name,
		Location:           row.Location,
		Email:              row.Email,
		Number:             row.Number,
		LinkedinLink:       row.LinkedinLink,
		CompanyWebsiteLink: row.CompanyWebsiteLink,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func countersToDomain(row *dbmodels.Counters) *models.Counters {
	return &models.Counters{
		ID:        row.ID,
		Partners:  row.Partners,
		Booking:   row.Booking,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
