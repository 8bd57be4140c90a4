package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/companydesk/directory/internal/directory/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CompanyController defines the business logic interface that the company
// HTTP handlers invoke.
type CompanyController interface {
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
	CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error)
	UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error)
	DeleteCompany(ctx context.Context, id uint) error
}

// CompanyHandler provides HTTP methods for company operations, mapping
// requests to a CompanyController interface.
type CompanyHandler struct {
	service CompanyController
	logger  *zap.Logger
}

// NewCompanyHandler constructs a new CompanyHandler with the given service and logger.
func NewCompanyHandler(service CompanyController, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		logger:  logger.Named("company_handler"),
	}
}

// List returns every live company, newest first.
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	data := make([]*companyResponse, 0, len(companies))
	for _, company := range companies {
		data = append(data, modelToResponse(company))
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

// Create inserts a new company and returns the stored row, including the
// server-assigned id and timestamps.
func (h *CompanyHandler) Create(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.CreateCompany(c.Request.Context(), requestToModel(&req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": modelToResponse(created)})
}

// Get fetches a single live company by id.
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	company, err := h.service.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": modelToResponse(company)})
}

// Update replaces the provided fields of a live company.
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.service.UpdateCompany(c.Request.Context(), requestToUpdate(&req, id)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Delete soft-deletes a live company. A second delete of the same id yields
// 404: the row is no longer live.
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCompany(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// parseID reads the :id path parameter as a positive integer, writing a 400
// response (and never touching the store) when it isn't one.
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondErrorMessage(c, http.StatusBadRequest, fmt.Sprintf("Invalid ID: %s", raw))
		return 0, false
	}
	return uint(id), true
}
