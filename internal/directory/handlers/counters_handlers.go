package handlers

import (
	"context"
	"net/http"

	"github.com/companydesk/directory/internal/directory/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CountersController defines the business logic interface that the
// about-counting HTTP handlers invoke.
type CountersController interface {
	GetCounters(ctx context.Context) (*models.Counters, error)
	UpsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error)
	InsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error)
}

// CountersHandler serves the singleton about-counting record. The resource
// carries no identifier in the request: it is always "the" record.
type CountersHandler struct {
	service CountersController
	logger  *zap.Logger
}

// NewCountersHandler constructs a new CountersHandler with the given service and logger.
func NewCountersHandler(service CountersController, logger *zap.Logger) *CountersHandler {
	return &CountersHandler{
		service: service,
		logger:  logger.Named("counters_handler"),
	}
}

// Get returns the current partners/booking pair, or data: null when no
// record has ever been created.
func (h *CountersHandler) Get(c *gin.Context) {
	counters, err := h.service.GetCounters(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if counters == nil {
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": countersToResponse(counters)})
}

// Upsert writes both values, inserting the record when absent and updating
// it in place otherwise.
func (h *CountersHandler) Upsert(c *gin.Context) {
	req, ok := bindCountersRequest(c)
	if !ok {
		return
	}

	if _, err := h.service.UpsertCounters(c.Request.Context(), *req.Partners, *req.Booking); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Updated successfully"})
}

// Insert creates the record, failing when one already exists. Kept for
// clients written against the insert-only POST of the old backend.
func (h *CountersHandler) Insert(c *gin.Context) {
	req, ok := bindCountersRequest(c)
	if !ok {
		return
	}

	created, err := h.service.InsertCounters(c.Request.Context(), *req.Partners, *req.Booking)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":     "success",
		"message":    "Inserted successfully",
		"insertedId": created.ID,
	})
}

func bindCountersRequest(c *gin.Context) (*countersRequest, bool) {
	var req countersRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Partners == nil || req.Booking == nil {
		respondErrorMessage(c, http.StatusBadRequest, "partners and booking fields are required")
		return nil, false
	}
	return &req, true
}
