package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	e "github.com/companydesk/directory/internal/directory/errors"
	"github.com/companydesk/directory/internal/directory/models"
	"github.com/companydesk/directory/internal/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestRequestToModel(t *testing.T) {
	req := &companyRequest{
		Name:     utils.Ptr("Acme"),
		Location: utils.Ptr("NYC"),
		Email:    utils.Ptr("x@acme.com"),
	}

	company := requestToModel(req)
	assert.Equal(t, "Acme", company.Name)
	assert.Equal(t, "NYC", *company.Location)
	assert.Equal(t, "x@acme.com", *company.Email)
	assert.Nil(t, company.Number, "absent fields stay nil")
	assert.Nil(t, company.LinkedinLink)

	// Missing name maps to the empty string; the service rejects it.
	company = requestToModel(&companyRequest{})
	assert.Equal(t, "", company.Name)
}

func TestRequestToUpdate(t *testing.T) {
	req := &companyRequest{
		Name:  utils.Ptr("Acme Corp"),
		Email: utils.Ptr(""),
	}

	update := requestToUpdate(req, 9)
	assert.EqualValues(t, 9, update.ID)
	assert.Equal(t, "Acme Corp", *update.Name)
	assert.Equal(t, "", *update.Email, "blank is carried through to clear the column")
	assert.Nil(t, update.Location, "absent fields stay nil and are not touched")
}

func TestModelToResponse(t *testing.T) {
	now := time.Now()
	company := &models.Company{
		ID:                 3,
		Name:               "Acme",
		Location:           utils.Ptr("NYC"),
		LinkedinLink:       utils.Ptr("https://linkedin.com/company/acme"),
		CompanyWebsiteLink: utils.Ptr("https://acme.com"),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	resp := modelToResponse(company)
	assert.EqualValues(t, 3, resp.ID)
	assert.Equal(t, "Acme", resp.Name)
	assert.Equal(t, "NYC", *resp.Location)
	assert.Nil(t, resp.Email)
	assert.Equal(t, "https://acme.com", *resp.CompanyWebsiteLink)
	assert.Equal(t, now, resp.CreatedAt)
}

func TestCountersToResponse(t *testing.T) {
	resp := countersToResponse(&models.Counters{ID: 1, Partners: 5, Booking: 10})
	assert.Equal(t, 5, resp.Partners)
	assert.Equal(t, 10, resp.Booking)
}

func TestRespondServiceError(t *testing.T) {
	logger := zaptest.NewLogger(t)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", e.ErrNotFound, http.StatusNotFound},
		{"invalid input", e.ErrInvalidInput, http.StatusBadRequest},
		{"already exists", e.ErrAlreadyExists, http.StatusBadRequest},
		{"store error", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, logger, tc.err)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"error"`)
		})
	}
}
