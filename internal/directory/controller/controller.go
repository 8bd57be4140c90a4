// Package controller implements the core business logic (service layer)
// for the company directory, orchestrating repository operations and
// sending relevant events. The server-side rules here are authoritative;
// the dashboard duplicates a subset of them only to save round-trips.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	e "github.com/companydesk/directory/internal/directory/errors"
	"github.com/companydesk/directory/internal/directory/events"
	"github.com/companydesk/directory/internal/directory/models"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(eventType events.EventType, company *models.Company)
	ProduceCounters(counters *models.Counters)
}

// CompanyRepository defines the storage interface for Company records.
type CompanyRepository interface {
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
	CreateCompany(ctx context.Context, company *models.Company) error
	UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error
	DeleteCompany(ctx context.Context, id uint) error
}

// DirectoryService provides methods to manage company records via
// repository operations and event production.
type DirectoryService struct {
	repo     CompanyRepository
	producer EventProducer
	logger   *zap.Logger
}

// NewDirectoryService constructs a DirectoryService with a repository,
// an event producer, and a logger.
func NewDirectoryService(repo CompanyRepository, producer EventProducer, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("directory_service"),
	}
}

// ListCompanies returns every live company, newest first.
func (s *DirectoryService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// GetCompany retrieves a live company by ID, returning ErrNotFound for
// missing or soft-deleted rows.
func (s *DirectoryService) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// CreateCompany adds a new company after validating input data and
// triggers a creation event. Name is required; blank optional fields are
// stored as NULL.
func (s *DirectoryService) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	company.Name = strings.TrimSpace(company.Name)
	if company.Name == "" {
		return nil, fmt.Errorf("%w: missing 'name' field", e.ErrInvalidInput)
	}
	company.Location = normalizeOptional(company.Location)
	company.Email = normalizeOptional(company.Email)
	company.Number = normalizeOptional(company.Number)
	company.LinkedinLink = normalizeOptional(company.LinkedinLink)
	company.CompanyWebsiteLink = normalizeOptional(company.CompanyWebsiteLink)
	if err := validateOptionalFields(company.Email, company.Number, company.LinkedinLink, company.CompanyWebsiteLink); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	go func() {
		s.producer.Produce(events.CompanyCreated, company)
	}()
	return company, nil
}

// UpdateCompany modifies the provided fields of a live company,
// then fetches the updated version for returning and event production.
func (s *DirectoryService) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	if update.ID == 0 {
		return nil, fmt.Errorf("%w: invalid company ID", e.ErrInvalidInput)
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: missing 'name' field", e.ErrInvalidInput)
		}
		update.Name = &trimmed
	}
	if err := validateOptionalFields(update.Email, update.Number, update.LinkedinLink, update.CompanyWebsiteLink); err != nil {
		return nil, err
	}

	err := s.repo.UpdateCompany(ctx, update)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	updated, err := s.repo.GetCompany(context.Background(), update.ID)
	if err != nil {
		s.logger.Error("Failed to get company for event",
			zap.Error(err),
			zap.Uint("company_id", update.ID),
		)
		return nil, err
	}
	go func() {
		s.producer.Produce(events.CompanyUpdated, updated)
	}()
	return updated, nil
}

// DeleteCompany soft-deletes a live company by ID and fires a deletion
// event. A second delete of the same ID returns ErrNotFound: the row is no
// longer live.
func (s *DirectoryService) DeleteCompany(ctx context.Context, id uint) error {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get company for deletion: %w", err)
	}

	if err := s.repo.DeleteCompany(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	go func() {
		s.producer.Produce(events.CompanyDeleted, company)
	}()

	return nil
}

// validateOptionalFields enforces the per-field rules on whichever optional
// fields carry a value: email must contain "@", number must be at least ten
// characters, links must start with "http". Blank values are skipped; on
// update a blank field means "clear to NULL".
func validateOptionalFields(email, number, linkedin, website *string) error {
	if email != nil && *email != "" && !strings.Contains(*email, "@") {
		return fmt.Errorf("%w: invalid email", e.ErrInvalidInput)
	}
	if number != nil && *number != "" && len(*number) < 10 {
		return fmt.Errorf("%w: number must be at least 10 characters", e.ErrInvalidInput)
	}
	if linkedin != nil && *linkedin != "" && !strings.HasPrefix(*linkedin, "http") {
		return fmt.Errorf("%w: linkedin_link must start with http", e.ErrInvalidInput)
	}
	if website != nil && *website != "" && !strings.HasPrefix(*website, "http") {
		return fmt.Errorf("%w: company_website_link must start with http", e.ErrInvalidInput)
	}
	return nil
}

func normalizeOptional(field *string) *string {
	if field == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*field)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
