package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/facturio/facturio/internal/api/dto"
	"github.com/facturio/facturio/internal/domain/invoice"
	ierr "github.com/facturio/facturio/internal/errors"
	"github.com/facturio/facturio/internal/testutil"
	"github.com/facturio/facturio/internal/types"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service       InvoiceService
	clientService ClientService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		ClientRepo:  s.GetStores().ClientRepo,
		InvoiceRepo: s.GetStores().InvoiceRepo,
	}
	s.service = NewInvoiceService(params)
	s.clientService = NewClientService(params)
}

func (s *InvoiceServiceSuite) createClient(name string) string {
	resp, err := s.clientService.CreateClient(s.GetContext(), dto.CreateClientRequest{Name: name})
	s.NoError(err)
	return resp.ID
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	clientID := s.createClient("Acme SARL")

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID: clientID,
		Items: []dto.LineItemRequest{
			{Description: "Développement", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(250)},
			{Description: "Hébergement", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(120)},
		},
	})
	s.NoError(err)

	s.Equal("FAC-000001", resp.Number)
	s.Equal(clientID, resp.ClientID)
	s.Equal("Acme SARL", resp.ClientName)
	s.Equal(types.InvoiceStatusDraft, resp.Status)
	s.Equal(types.Today().String(), resp.IssueDate.String())

	// default 20% VAT
	s.True(decimal.NewFromInt(870).Equal(resp.Subtotal))
	s.True(decimal.NewFromFloat(20.0).Equal(resp.TaxRate))
	s.True(decimal.NewFromInt(174).Equal(resp.TaxAmount))
	s.True(decimal.NewFromInt(1044).Equal(resp.Total))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceSequentialNumbers() {
	clientID := s.createClient("Acme SARL")

	for i, expected := range []string{"FAC-000001", "FAC-000002", "FAC-000003"} {
		resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
			ClientID: clientID,
		})
		s.NoError(err, "invoice %d", i)
		s.Equal(expected, resp.Number)
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoiceNumberingSurvivesDeletion() {
	clientID := s.createClient("Acme SARL")

	first, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
	s.NoError(err)
	second, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
	s.NoError(err)
	s.NoError(s.service.DeleteInvoice(s.GetContext(), first.ID))

	// the sequence continues from the remaining maximum
	third, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
	s.NoError(err)
	s.Equal("FAC-000002", second.Number)
	s.Equal("FAC-000003", third.Number)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceUnknownClient() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID: "client_missing",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceCustomTaxRate() {
	clientID := s.createClient("Acme SARL")

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID: clientID,
		Items: []dto.LineItemRequest{
			{Description: "Livres", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(20)},
		},
		TaxRate: lo.ToPtr(decimal.NewFromFloat(5.5)),
	})
	s.NoError(err)
	s.True(decimal.NewFromInt(200).Equal(resp.Subtotal))
	s.True(decimal.NewFromInt(11).Equal(resp.TaxAmount))
	s.True(decimal.NewFromInt(211).Equal(resp.Total))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceNegativeQuantity() {
	clientID := s.createClient("Acme SARL")

	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID: clientID,
		Items: []dto.LineItemRequest{
			{Description: "Avoir", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestClientNameSnapshotIsStable() {
	clientID := s.createClient("Acme SARL")

	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
	s.NoError(err)
	s.Equal("Acme SARL", created.ClientName)

	// renaming the client does not rewrite existing invoices
	_, err = s.clientService.UpdateClient(s.GetContext(), clientID, dto.UpdateClientRequest{
		Name: lo.ToPtr("Acme SAS"),
	})
	s.NoError(err)

	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("Acme SARL", got.ClientName)
}

func (s *InvoiceServiceSuite) TestGetInvoicesNewestFirst() {
	clientID := s.createClient("Acme SARL")

	var ids []string
	for i := 0; i < 3; i++ {
		resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
		s.NoError(err)
		ids = append(ids, resp.ID)
	}

	resp, err := s.service.GetInvoices(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(3, resp.Pagination.Total)
	s.Len(resp.Items, 3)
	s.Equal(ids[2], resp.Items[0].ID)
	s.Equal(ids[1], resp.Items[1].ID)
	s.Equal(ids[0], resp.Items[2].ID)
}

func (s *InvoiceServiceSuite) TestGetInvoicesCapsUnpaginatedRequests() {
	clientID := s.createClient("Acme SARL")

	// one more invoice than the list cap, seeded through the repository to
	// keep the test fast
	now := time.Now().UTC()
	for i := 0; i < types.DefaultListLimit+1; i++ {
		err := s.GetStores().InvoiceRepo.Create(s.GetContext(), &invoice.Invoice{
			ID:         fmt.Sprintf("inv_%04d", i),
			Number:     invoice.FormatNumber(int64(i + 1)),
			IssueDate:  types.Today(),
			ClientID:   clientID,
			ClientName: "Acme SARL",
			Subtotal:   decimal.NewFromInt(100),
			TaxRate:    decimal.NewFromFloat(20.0),
			TaxAmount:  decimal.NewFromInt(20),
			Total:      decimal.NewFromInt(120),
			Status:     types.InvoiceStatusDraft,
			CreatedAt:  now.Add(time.Duration(i) * time.Millisecond),
			UpdatedAt:  now,
		})
		s.NoError(err)
	}

	// a request with no pagination params binds to the zero-value filter
	resp, err := s.service.GetInvoices(s.GetContext(), &types.QueryFilter{})
	s.NoError(err)
	s.Equal(types.DefaultListLimit+1, resp.Pagination.Total)
	s.Len(resp.Items, types.DefaultListLimit)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceStatus() {
	clientID := s.createClient("Acme SARL")
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
	s.NoError(err)

	updated, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatusPaid),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, updated.Status)
	// number and totals untouched
	s.Equal(created.Number, updated.Number)
	s.True(created.Total.Equal(updated.Total))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceInvalidStatus() {
	clientID := s.createClient("Acme SARL")
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
	s.NoError(err)

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatus("annulée")),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceItemsRecomputesWithStoredRate() {
	clientID := s.createClient("Acme SARL")
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID: clientID,
		Items: []dto.LineItemRequest{
			{Description: "Conseil", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
		TaxRate: lo.ToPtr(decimal.NewFromFloat(10.0)),
	})
	s.NoError(err)

	// new items, no tax rate in the patch: the stored 10% still applies
	updated, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.LineItemRequest{
			{Description: "Conseil", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(510)},
		},
	})
	s.NoError(err)
	s.True(decimal.NewFromInt(1020).Equal(updated.Subtotal))
	s.True(decimal.NewFromFloat(10.0).Equal(updated.TaxRate))
	s.True(decimal.NewFromInt(102).Equal(updated.TaxAmount))
	s.True(decimal.NewFromInt(1122).Equal(updated.Total))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceTaxRateOnlyRecomputes() {
	clientID := s.createClient("Acme SARL")
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID: clientID,
		Items: []dto.LineItemRequest{
			{Description: "Conseil", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(510)},
		},
	})
	s.NoError(err)
	s.True(decimal.NewFromInt(1224).Equal(created.Total))

	updated, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		TaxRate: lo.ToPtr(decimal.NewFromFloat(10.0)),
	})
	s.NoError(err)
	s.True(decimal.NewFromInt(1020).Equal(updated.Subtotal))
	s.True(decimal.NewFromInt(102).Equal(updated.TaxAmount))
	s.True(decimal.NewFromInt(1122).Equal(updated.Total))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceReassignClient() {
	firstID := s.createClient("Acme SARL")
	secondID := s.createClient("Bureau Veritas")

	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: firstID})
	s.NoError(err)

	updated, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		ClientID: lo.ToPtr(secondID),
	})
	s.NoError(err)
	s.Equal(secondID, updated.ClientID)
	s.Equal("Bureau Veritas", updated.ClientName)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceReassignUnknownClient() {
	clientID := s.createClient("Acme SARL")
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
	s.NoError(err)

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		ClientID: lo.ToPtr("client_missing"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceEmptyPayload() {
	clientID := s.createClient("Acme SARL")
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
	s.NoError(err)

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestDeleteInvoice() {
	clientID := s.createClient("Acme SARL")
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{ClientID: clientID})
	s.NoError(err)

	s.NoError(s.service.DeleteInvoice(s.GetContext(), created.ID))

	_, err = s.service.GetInvoice(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestDeleteInvoiceNotFound() {
	err := s.service.DeleteInvoice(s.GetContext(), "inv_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
