package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	e "github.com/companydesk/directory/internal/directory/errors"
	"github.com/companydesk/directory/internal/directory/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockCompanyController is a simple mock implementation of CompanyController.
type mockCompanyController struct {
	listCompaniesFunc func(ctx context.Context) ([]*models.Company, error)
	getCompanyFunc    func(ctx context.Context, id uint) (*models.Company, error)
	createCompanyFunc func(ctx context.Context, company *models.Company) (*models.Company, error)
	updateCompanyFunc func(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error)
	deleteCompanyFunc func(ctx context.Context, id uint) error
}

func (m *mockCompanyController) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	return m.listCompaniesFunc(ctx)
}

func (m *mockCompanyController) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	return m.getCompanyFunc(ctx, id)
}

func (m *mockCompanyController) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	return m.createCompanyFunc(ctx, company)
}

func (m *mockCompanyController) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) (*models.Company, error) {
	return m.updateCompanyFunc(ctx, update)
}

func (m *mockCompanyController) DeleteCompany(ctx context.Context, id uint) error {
	return m.deleteCompanyFunc(ctx, id)
}

// mockCountersController is a simple mock implementation of CountersController.
type mockCountersController struct {
	getCountersFunc    func(ctx context.Context) (*models.Counters, error)
	upsertCountersFunc func(ctx context.Context, partners, booking int) (*models.Counters, error)
	insertCountersFunc func(ctx context.Context, partners, booking int) (*models.Counters, error)
}

func (m *mockCountersController) GetCounters(ctx context.Context) (*models.Counters, error) {
	return m.getCountersFunc(ctx)
}

func (m *mockCountersController) UpsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error) {
	return m.upsertCountersFunc(ctx, partners, booking)
}

func (m *mockCountersController) InsertCounters(ctx context.Context, partners, booking int) (*models.Counters, error) {
	return m.insertCountersFunc(ctx, partners, booking)
}

// envelope matches the JSON response shape of every endpoint.
type envelope struct {
	Status     string          `json:"status"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	InsertedID *uint           `json:"insertedId"`
}

func setupRouter(t *testing.T, companies CompanyController, counters CountersController) http.Handler {
	logger := zaptest.NewLogger(t)
	server := NewServer(0, logger)
	server.RegisterRoutes(
		NewCompanyHandler(companies, logger),
		NewCountersHandler(counters, logger),
		nil,
	)
	return server.httpServer.Handler
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var env envelope
	if raw := w.Body.Bytes(); len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", w.Body.String())
	}
	return w, env
}

func TestCompanyHandler_InvalidID(t *testing.T) {
	// No controller funcs wired: reaching the service would panic the test.
	handler := setupRouter(t, &mockCompanyController{}, &mockCountersController{})

	for _, path := range []string{"/company/abc", "/company/0", "/company/-3"} {
		w, env := doRequest(t, handler, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "GET %s", path)
		assert.Equal(t, "error", env.Status)
	}

	w, _ := doRequest(t, handler, http.MethodPut, "/company/abc", gin.H{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, handler, http.MethodDelete, "/company/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompanyHandler_ErrorMapping(t *testing.T) {
	companies := &mockCompanyController{
		getCompanyFunc: func(_ context.Context, _ uint) (*models.Company, error) {
			return nil, e.ErrNotFound
		},
		createCompanyFunc: func(_ context.Context, _ *models.Company) (*models.Company, error) {
			return nil, fmt.Errorf("%w: missing 'name' field", e.ErrInvalidInput)
		},
		listCompaniesFunc: func(_ context.Context) ([]*models.Company, error) {
			return nil, errors.New("connection refused")
		},
	}
	handler := setupRouter(t, companies, &mockCountersController{})

	w, env := doRequest(t, handler, http.MethodGet, "/company/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", env.Status)

	w, env = doRequest(t, handler, http.MethodPost, "/company", gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "missing 'name' field")

	w, env = doRequest(t, handler, http.MethodGet, "/company", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "connection refused", env.Error, "store errors surface verbatim")
}

func TestCountersHandler_Get(t *testing.T) {
	t.Run("null before first write", func(t *testing.T) {
		counters := &mockCountersController{
			getCountersFunc: func(_ context.Context) (*models.Counters, error) {
				return nil, nil
			},
		}
		handler := setupRouter(t, &mockCompanyController{}, counters)

		w, env := doRequest(t, handler, http.MethodGet, "/aboutCounting", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", env.Status)
		assert.Equal(t, "null", string(env.Data))
	})

	t.Run("present record", func(t *testing.T) {
		counters := &mockCountersController{
			getCountersFunc: func(_ context.Context) (*models.Counters, error) {
				return &models.Counters{ID: 1, Partners: 5, Booking: 10}, nil
			},
		}
		handler := setupRouter(t, &mockCompanyController{}, counters)

		w, env := doRequest(t, handler, http.MethodGet, "/aboutCounting", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"partners":5,"booking":10}`, string(env.Data))
	})
}

func TestCountersHandler_MissingFields(t *testing.T) {
	handler := setupRouter(t, &mockCompanyController{}, &mockCountersController{})

	bodies := []gin.H{
		{},
		{"partners": 5},
		{"booking": 10},
	}
	for _, method := range []string{http.MethodPut, http.MethodPost} {
		for _, body := range bodies {
			w, env := doRequest(t, handler, method, "/aboutCounting", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "%s %v", method, body)
			assert.Equal(t, "partners and booking fields are required", env.Error)
		}
	}
}

func TestCountersHandler_ZeroValuesAccepted(t *testing.T) {
	counters := &mockCountersController{
		upsertCountersFunc: func(_ context.Context, partners, booking int) (*models.Counters, error) {
			assert.Equal(t, 0, partners)
			assert.Equal(t, 0, booking)
			return &models.Counters{ID: 1}, nil
		},
	}
	handler := setupRouter(t, &mockCompanyController{}, counters)

	w, env := doRequest(t, handler, http.MethodPut, "/aboutCounting", gin.H{"partners": 0, "booking": 0})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Updated successfully", env.Message)
}

func TestCountersHandler_InsertConflict(t *testing.T) {
	counters := &mockCountersController{
		insertCountersFunc: func(_ context.Context, _, _ int) (*models.Counters, error) {
			return nil, e.ErrAlreadyExists
		},
	}
	handler := setupRouter(t, &mockCompanyController{}, counters)

	w, env := doRequest(t, handler, http.MethodPost, "/aboutCounting", gin.H{"partners": 5, "booking": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Record already exists", env.Error)
}

func TestHealthRoute(t *testing.T) {
	handler := setupRouter(t, &mockCompanyController{}, &mockCountersController{})

	w, _ := doRequest(t, handler, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}
