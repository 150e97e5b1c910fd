package mapper

import (
	"time"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/entity"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/types"
)

func InvoiceToResponse(item *entity.Invoice) *types.Invoice {
	if item == nil {
		return nil
	}

	return &types.Invoice{
		ID:            item.ID,
		NumeroFacture: item.InvoiceNumber,
		PaiementID:    item.PaymentID,
		ClientID:      item.ClientID,
		DateEmission:  item.IssueDate.UTC().Format(time.RFC3339),
		MontantTotal:  item.AmountCents,
		Devise:        item.Currency,
		TypeService:   item.ServiceType,
		Statut:        item.Status,
		LienPDF:       derefString(item.PDFLink),
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func InvoicesToResponse(items []*entity.Invoice) []*types.Invoice {
	result := make([]*types.Invoice, 0, len(items))
	for _, item := range items {
		result = append(result, InvoiceToResponse(item))
	}
	return result
}

func ReservationToResponse(item *entity.Reservation) *types.Reservation {
	if item == nil {
		return nil
	}

	return &types.Reservation{
		ID:            item.ID,
		Code:          item.Code,
		ClientID:      item.ClientID,
		RoomID:        item.RoomID,
		CheckIn:       item.CheckIn.UTC().Format(time.RFC3339),
		CheckOut:      item.CheckOut.UTC().Format(time.RFC3339),
		Statut:        item.Status,
		PaymentStatus: item.PaymentStatus,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func ReservationsToResponse(items []*entity.Reservation) []*types.Reservation {
	result := make([]*types.Reservation, 0, len(items))
	for _, item := range items {
		result = append(result, ReservationToResponse(item))
	}
	return result
}

func PaymentToResponse(item *entity.Payment) *types.Payment {
	if item == nil {
		return nil
	}

	return &types.Payment{
		ID:            item.ID,
		ReservationID: item.ReservationID,
		Montant:       item.AmountCents,
		Devise:        item.Currency,
		Methode:       item.Method,
		Statut:        item.Status,
		Reference:     item.Reference,
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func PaymentsToResponse(items []*entity.Payment) []*types.Payment {
	result := make([]*types.Payment, 0, len(items))
	for _, item := range items {
		result = append(result, PaymentToResponse(item))
	}
	return result
}

func RoomToResponse(item *entity.Room) *types.Room {
	if item == nil {
		return nil
	}

	return &types.Room{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		PriceCents:  item.PriceCents,
		Currency:    item.Currency,
		Capacity:    item.Capacity,
		ImageURL:    derefString(item.ImageURL),
		Available:   item.Available,
	}
}

func RoomsToResponse(items []*entity.Room) []*types.Room {
	result := make([]*types.Room, 0, len(items))
	for _, item := range items {
		result = append(result, RoomToResponse(item))
	}
	return result
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
