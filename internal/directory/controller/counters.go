package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/companydesk/directory/internal/directory/errors"
	"github.com/companydesk/directory/internal/directory/models"
	"go.uber.org/zap"
)

// CountersRepository defines the storage interface for the singleton
// about-counting record.
type CountersRepository interface {
	GetCounters(ctx context.Context) (*models.Counters, error)
	UpsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error)
	InsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error)
}

// CountersService manages the about-counting record. The record has no
// caller-supplied key: there is at most one, and once created it is only
// ever mutated in place.
type CountersService struct {
	repo     CountersRepository
	producer EventProducer
	logger   *zap.Logger
}

// NewCountersService constructs a CountersService with a repository,
// an event producer, and a logger.
func NewCountersService(repo CountersRepository, producer EventProducer, logger *zap.Logger) *CountersService {
	return &CountersService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("counters_service"),
	}
}

// GetCounters returns the current record, or nil if none has ever been
// created.
func (s *CountersService) GetCounters(ctx context.Context) (*models.Counters, error) {
	counters, err := s.repo.GetCounters(ctx)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get counters: %w", err)
	}
	return counters, nil
}

// UpsertCounters writes both values in one atomic statement: insert when no
// record exists, update in place otherwise.
func (s *CountersService) UpsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error) {
	counters, err := s.repo.UpsertCounters(ctx, partners, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert counters: %w", err)
	}
	go func() {
		s.producer.ProduceCounters(counters)
	}()
	return counters, nil
}

// InsertCounters creates the record, failing with ErrAlreadyExists when one
// is present. Kept for clients written against the insert-only POST of the
// old backend.
func (s *CountersService) InsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error) {
	counters, err := s.repo.InsertCounters(ctx, partners, booking)
	if err != nil {
		if errors.Is(err, e.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to insert counters: %w", err)
	}
	go func() {
		s.producer.ProduceCounters(counters)
	}()
	return counters, nil
}
