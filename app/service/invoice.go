package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/repository"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/types"
)

const invoiceNumberPrefix = "FAC"

type invoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	FindMaxInvoiceNumber(ctx context.Context, prefix string) (string, error)
	FindByID(ctx context.Context, id uint64) (*entity.Invoice, error)
	List(ctx context.Context, limit, offset int32) ([]*entity.Invoice, error)
	Delete(ctx context.Context, id uint64) error
}

type InvoiceService struct {
	invoiceRepo invoiceRepository
}

func NewInvoiceService(invoiceRepo invoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// GenerateInvoiceNumber mints the next number for the current year, format
// FAC-<year>-<zero-padded sequence>. The sequence is the numeric suffix of
// the greatest existing number for the year plus one, starting at 0001.
// Sequences past 9999 grow beyond four digits.
func (s *InvoiceService) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	year := time.Now().UTC().Year()
	prefix := fmt.Sprintf("%s-%d-", invoiceNumberPrefix, year)

	maxNumber, err := s.invoiceRepo.FindMaxInvoiceNumber(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("invoice number generation failed: %w", err)
	}

	sequence := 1
	if maxNumber != "" {
		suffix := maxNumber[strings.LastIndex(maxNumber, "-")+1:]
		parsed, err := strconv.Atoi(suffix)
		if err != nil {
			return "", fmt.Errorf("invoice number generation failed: malformed number %q", maxNumber)
		}
		sequence = parsed + 1
	}

	return fmt.Sprintf("%s%04d", prefix, sequence), nil
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, req *types.CreateInvoiceRequest) (*entity.Invoice, error) {
	number := strings.TrimSpace(req.NumeroFacture)
	if number == "" {
		generated, err := s.GenerateInvoiceNumber(ctx)
		if err != nil {
			return nil, err
		}
		number = generated
	}

	status := strings.TrimSpace(req.Statut)
	if status == "" {
		status = entity.InvoiceStatusPaid
	}

	now := time.Now().UTC()
	invoice := &entity.Invoice{
		InvoiceNumber: number,
		PaymentID:     req.PaiementID,
		ClientID:      req.ClientID,
		IssueDate:     now,
		AmountCents:   req.MontantTotal,
		Currency:      strings.ToUpper(strings.TrimSpace(req.Devise)),
		ServiceType:   strings.TrimSpace(req.TypeService),
		Status:        status,
		PDFLink:       normalizeOptionalString(req.LienPDF),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		if errors.Is(err, repository.ErrInvoiceAlreadyExists) {
			return nil, ErrInvoiceAlreadyExists
		}
		return nil, err
	}

	return invoice, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id uint64) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, limit, offset int32) ([]*entity.Invoice, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.invoiceRepo.List(ctx, limit, offset)
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uint64) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return ErrInvoiceNotFound
		}
		return err
	}
	return nil
}

func normalizeOptionalString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
