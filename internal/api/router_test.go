package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	v1 "github.com/facturio/facturio/internal/api/v1"
	"github.com/facturio/facturio/internal/config"
	"github.com/facturio/facturio/internal/logger"
	"github.com/facturio/facturio/internal/service"
	"github.com/facturio/facturio/internal/testutil"
)

type RouterSuite struct {
	suite.Suite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	log := logger.L

	params := service.NewServiceParams(
		log,
		cfg,
		testutil.NewInMemoryClientStore(),
		testutil.NewInMemoryInvoiceStore(),
	)
	clientService := service.NewClientService(params)
	invoiceService := service.NewInvoiceService(params)
	dashboardService := service.NewDashboardService(params)

	s.router = NewRouter(Handlers{
		Health:    v1.NewHealthHandler(log),
		Client:    v1.NewClientHandler(clientService, log),
		Invoice:   v1.NewInvoiceHandler(invoiceService, log),
		Dashboard: v1.NewDashboardHandler(dashboardService, log),
	}, cfg, log)
}

func (s *RouterSuite) request(method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestClientLifecycle() {
	w := s.request(http.MethodPost, "/api/clients", `{"nom":"Acme SARL","ville":"Lyon"}`)
	s.Equal(http.StatusOK, w.Code)

	var created struct {
		ID      string `json:"id"`
		Name    string `json:"nom"`
		Country string `json:"pays"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.NotEmpty(created.ID)
	s.Equal("Acme SARL", created.Name)
	s.Equal("France", created.Country)

	w = s.request(http.MethodGet, "/api/clients/"+created.ID, "")
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPut, "/api/clients/"+created.ID, `{"ville":"Paris"}`)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodDelete, "/api/clients/"+created.ID, "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Client supprimé avec succès")
}

func (s *RouterSuite) TestCreateClientValidationError() {
	w := s.request(http.MethodPost, "/api/clients", `{}`)
	s.Equal(http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Success)
	s.NotEmpty(resp.Error.Message)
}

func (s *RouterSuite) TestGetClientNotFound() {
	w := s.request(http.MethodGet, "/api/clients/client_missing", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestDeleteClientWithInvoicesRefused() {
	w := s.request(http.MethodPost, "/api/clients", `{"nom":"Acme SARL"}`)
	s.Equal(http.StatusOK, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = s.request(http.MethodPost, "/api/invoices", `{"client_id":"`+created.ID+`"}`)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodDelete, "/api/clients/"+created.ID, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Impossible de supprimer un client avec des factures")
}

func (s *RouterSuite) TestInvoiceLifecycle() {
	w := s.request(http.MethodPost, "/api/clients", `{"nom":"Acme SARL"}`)
	var created struct {
		ID string `json:"id"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &created))

	body := `{"client_id":"` + created.ID + `","items":[{"description":"Conseil","quantite":2,"prix_unitaire":510}]}`
	w = s.request(http.MethodPost, "/api/invoices", body)
	s.Equal(http.StatusOK, w.Code)

	var inv struct {
		ID       string          `json:"id"`
		Number   string          `json:"numero"`
		Subtotal json.RawMessage `json:"sous_total"`
		Total    json.RawMessage `json:"total"`
		Status   string          `json:"statut"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &inv))
	s.Equal("FAC-000001", inv.Number)
	s.Equal("brouillon", inv.Status)
	// decimals render as bare JSON numbers
	s.Equal("1020", string(inv.Subtotal))
	s.Equal("1224", string(inv.Total))

	w = s.request(http.MethodPut, "/api/invoices/"+inv.ID, `{"statut":"payée"}`)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"payée"`)

	w = s.request(http.MethodGet, "/api/dashboard/stats", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"total_invoices":1`)
	s.Contains(w.Body.String(), `"total_revenue":1224`)

	w = s.request(http.MethodDelete, "/api/invoices/"+inv.ID, "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Facture supprimée avec succès")
}

func (s *RouterSuite) TestUpdateInvoiceInvalidStatus() {
	w := s.request(http.MethodPost, "/api/clients", `{"nom":"Acme SARL"}`)
	var created struct {
		ID string `json:"id"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = s.request(http.MethodPost, "/api/invoices", `{"client_id":"`+created.ID+`"}`)
	s.Equal(http.StatusOK, w.Code)
	var inv struct {
		ID string `json:"id"`
	}
	s.NoError(json.Unmarshal(w.Body.Bytes(), &inv))

	w = s.request(http.MethodPut, "/api/invoices/"+inv.ID, `{"statut":"annulée"}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestCreateInvoiceUnknownClient() {
	w := s.request(http.MethodPost, "/api/invoices", `{"client_id":"client_missing"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Client inconnu")
}
