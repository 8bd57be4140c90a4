package handlers

import (
	"errors"
	"net/http"
	"time"

	e "github.com/companydesk/directory/internal/directory/errors"
	"github.com/companydesk/directory/internal/directory/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// companyRequest is the JSON body accepted by POST and PUT /company. All
// fields are pointers so a PUT can distinguish "absent" from "blank".
type companyRequest struct {
	Name               *string `json:"name"`
	Location           *string `json:"location"`
	Email              *string `json:"email"`
	Number             *string `json:"number"`
	LinkedinLink       *string `json:"linkedin_link"`
	CompanyWebsiteLink *string `json:"company_website_link"`
}

// companyResponse mirrors the columns the dashboard renders.
type companyResponse struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Location           *string   `json:"location"`
	Email              *string   `json:"email"`
	Number             *string   `json:"number"`
	LinkedinLink       *string   `json:"linkedin_link"`
	CompanyWebsiteLink *string   `json:"company_website_link"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type countersRequest struct {
	Partners *int `json:"partners" binding:"required"`
	Booking  *int `json:"booking" binding:"required"`
}

type countersResponse struct {
	Partners int `json:"partners"`
	Booking  int `json:"booking"`
}

// requestToModel converts a create request into a Company model. Missing
// fields become nil and end up as NULL columns.
func requestToModel(req *companyRequest) *models.Company {
	company := &models.Company{
		Location:           req.Location,
		Email:              req.Email,
		Number:             req.Number,
		LinkedinLink:       req.LinkedinLink,
		CompanyWebsiteLink: req.CompanyWebsiteLink,
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	return company
}

// requestToUpdate converts an update request into a CompanyUpdate carrying
// only the fields present in the body.
func requestToUpdate(req *companyRequest, id uint) *models.CompanyUpdate {
	return &models.CompanyUpdate{
		ID:                 id,
		Name:               req.Name,
		Location:           req.Location,
		Email:              req.Email,
		Number:             req.Number,
		LinkedinLink:       req.LinkedinLink,
		CompanyWebsiteLink: req.CompanyWebsiteLink,
	}
}

// modelToResponse converts an internal Company model into its JSON shape.
func modelToResponse(company *models.Company) *companyResponse {
	return &companyResponse{
		ID:                 company.ID,
		Name:               company.Name,
		Location:           company.Location,
		Email:              company.Email,
		Number:             company.Number,
		LinkedinLink:       company.LinkedinLink,
		CompanyWebsiteLink: company.CompanyWebsiteLink,
		CreatedAt:          company.CreatedAt,
		UpdatedAt:          company.UpdatedAt,
	}
}

func countersToResponse(counters *models.Counters) *countersResponse {
	return &countersResponse{
		Partners: counters.Partners,
		Booking:  counters.Booking,
	}
}

// respondError maps domain or repository errors to HTTP statuses: invalid
// input → 400, not found → 404, already exists → 400, anything from the
// store → 500 with the underlying message surfaced verbatim.
func (h *CompanyHandler) respondError(c *gin.Context, err error) {
	respondServiceError(c, h.logger, err)
}

func (h *CountersHandler) respondError(c *gin.Context, err error) {
	respondServiceError(c, h.logger, err)
}

func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		respondErrorMessage(c, http.StatusNotFound, "Company not found or deleted")
	case errors.Is(err, e.ErrInvalidInput):
		respondErrorMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, e.ErrAlreadyExists):
		respondErrorMessage(c, http.StatusBadRequest, "Record already exists")
	default:
		logger.Error("Internal server error", zap.Error(err))
		respondErrorMessage(c, http.StatusInternalServerError, err.Error())
	}
}

func respondErrorMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"status": "error", "error": message})
}
