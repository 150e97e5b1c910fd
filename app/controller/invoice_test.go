package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/repository"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/service"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/types"
)

type controllerInvoiceRepo struct {
	createFn  func(ctx context.Context, invoice *entity.Invoice) error
	findMaxFn func(ctx context.Context, prefix string) (string, error)
	findFn    func(ctx context.Context, id uint64) (*entity.Invoice, error)
	listFn    func(ctx context.Context, limit, offset int32) ([]*entity.Invoice, error)
	deleteFn  func(ctx context.Context, id uint64) error
}

func (r *controllerInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if r.createFn != nil {
		return r.createFn(ctx, invoice)
	}
	return nil
}

func (r *controllerInvoiceRepo) FindMaxInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	if r.findMaxFn != nil {
		return r.findMaxFn(ctx, prefix)
	}
	return "", nil
}

func (r *controllerInvoiceRepo) FindByID(ctx context.Context, id uint64) (*entity.Invoice, error) {
	if r.findFn != nil {
		return r.findFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerInvoiceRepo) List(ctx context.Context, limit, offset int32) ([]*entity.Invoice, error) {
	if r.listFn != nil {
		return r.listFn(ctx, limit, offset)
	}
	return []*entity.Invoice{}, nil
}

func (r *controllerInvoiceRepo) Delete(ctx context.Context, id uint64) error {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return nil
}

func newInvoiceControllerForTest(repo *controllerInvoiceRepo) *InvoiceController {
	return NewInvoiceController(service.NewInvoiceService(repo))
}

func TestCreateInvoiceBadBody(t *testing.T) {
	ctrl := newInvoiceControllerForTest(&controllerInvoiceRepo{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/invoices", bytes.NewBufferString("{bad"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := ctrl.CreateInvoice(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateInvoiceMissingFields(t *testing.T) {
	ctrl := newInvoiceControllerForTest(&controllerInvoiceRepo{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/invoices", bytes.NewBufferString(`{"montant_total":45000}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	_ = ctrl.CreateInvoice(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateInvoiceGeneratesNumber(t *testing.T) {
	repo := &controllerInvoiceRepo{createFn: func(_ context.Context, invoice *entity.Invoice) error {
		invoice.ID = 7
		return nil
	}}
	ctrl := newInvoiceControllerForTest(repo)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/invoices", bytes.NewBufferString(`{"paiement_id":3,"montant_total":45000,"devise":"USD","type_service":"hebergement","client_id":5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	_ = ctrl.CreateInvoice(ctx)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload types.InvoiceEnvelopeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Invoice == nil {
		t.Fatal("expected invoice in response")
	}
	if !strings.HasPrefix(payload.Invoice.NumeroFacture, "FAC-") || !strings.HasSuffix(payload.Invoice.NumeroFacture, "-0001") {
		t.Fatalf("unexpected generated invoice number %q", payload.Invoice.NumeroFacture)
	}
	if payload.Invoice.Statut != entity.InvoiceStatusPaid {
		t.Fatalf("expected default payee status, got %q", payload.Invoice.Statut)
	}
}

func TestCreateInvoiceDuplicate(t *testing.T) {
	repo := &controllerInvoiceRepo{createFn: func(context.Context, *entity.Invoice) error {
		return repository.ErrInvoiceAlreadyExists
	}}
	ctrl := newInvoiceControllerForTest(repo)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/invoices", bytes.NewBufferString(`{"paiement_id":3,"montant_total":45000,"devise":"USD","type_service":"hebergement","client_id":5,"numero_facture":"FAC-2026-0001"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	_ = ctrl.CreateInvoice(ctx)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	ctrl := newInvoiceControllerForTest(&controllerInvoiceRepo{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/invoices/9", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("9")

	_ = ctrl.GetInvoice(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteInvoiceNotFound(t *testing.T) {
	repo := &controllerInvoiceRepo{deleteFn: func(context.Context, uint64) error {
		return repository.ErrInvoiceNotFound
	}}
	ctrl := newInvoiceControllerForTest(repo)
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/admin/invoices/9", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("9")

	_ = ctrl.DeleteInvoice(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListInvoicesBadLimit(t *testing.T) {
	ctrl := newInvoiceControllerForTest(&controllerInvoiceRepo{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/invoices?limit=9000", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	_ = ctrl.ListInvoices(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
