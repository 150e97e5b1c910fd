package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
)

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceAlreadyExists = errors.New("invoice already exists")
)

type InvoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (
			invoice_number, payment_id, client_id, issue_date,
			amount_cents, currency, service_type, status, pdf_link,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		invoice.InvoiceNumber,
		invoice.PaymentID,
		invoice.ClientID,
		invoice.IssueDate,
		invoice.AmountCents,
		invoice.Currency,
		invoice.ServiceType,
		invoice.Status,
		nullableStringValue(invoice.PDFLink),
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrInvoiceAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	invoice.ID = uint64(id)
	return nil
}

// FindMaxInvoiceNumber returns the lexicographically greatest invoice number
// with the given prefix, or "" when none exists. Fixed-width zero padding
// makes lexicographic order match numeric order within a year.
func (r *InvoiceRepository) FindMaxInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT invoice_number
		FROM invoices
		WHERE invoice_number LIKE ?
		ORDER BY invoice_number DESC
		LIMIT 1
	`

	var number string
	err := r.db.QueryRowContext(ctx, query, prefix+"%").Scan(&number)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return number, nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id uint64) (*entity.Invoice, error) {
	query := `
		SELECT id, invoice_number, payment_id, client_id, issue_date,
			amount_cents, currency, service_type, status, pdf_link,
			created_at, updated_at
		FROM invoices
		WHERE id = ?
	`

	invoice := &entity.Invoice{}
	if err := scanInvoice(r.db.QueryRowContext(ctx, query, id), invoice); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *InvoiceRepository) List(ctx context.Context, limit, offset int32) ([]*entity.Invoice, error) {
	query := `
		SELECT id, invoice_number, payment_id, client_id, issue_date,
			amount_cents, currency, service_type, status, pdf_link,
			created_at, updated_at
		FROM invoices
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]*entity.Invoice, 0)
	for rows.Next() {
		item := &entity.Invoice{}
		if err := scanInvoice(rows, item); err != nil {
			return nil, err
		}
		invoices = append(invoices, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func scanInvoice(scan rowScanner, invoice *entity.Invoice) error {
	var pdfLink sql.NullString

	err := scan.Scan(
		&invoice.ID,
		&invoice.InvoiceNumber,
		&invoice.PaymentID,
		&invoice.ClientID,
		&invoice.IssueDate,
		&invoice.AmountCents,
		&invoice.Currency,
		&invoice.ServiceType,
		&invoice.Status,
		&pdfLink,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)
	if err != nil {
		return err
	}

	invoice.PDFLink = stringPtrFromNull(pdfLink)
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
