package types

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}

type Invoice struct {
	ID            uint64 `json:"id"`
	NumeroFacture string `json:"numero_facture"`
	PaiementID    uint64 `json:"paiement_id"`
	ClientID      uint64 `json:"client_id"`
	DateEmission  string `json:"date_emission"`
	MontantTotal  int64  `json:"montant_total"`
	Devise        string `json:"devise"`
	TypeService   string `json:"type_service"`
	Statut        string `json:"statut"`
	LienPDF       string `json:"lien_pdf,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type InvoiceEnvelopeResponse struct {
	Invoice *Invoice `json:"invoice"`
}

type ListInvoicesResponse struct {
	Invoices []*Invoice `json:"invoices"`
}

type Reservation struct {
	ID            uint64 `json:"id"`
	Code          string `json:"code"`
	ClientID      uint64 `json:"client_id"`
	RoomID        uint64 `json:"room_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Statut        string `json:"statut"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type ReservationEnvelopeResponse struct {
	Reservation *Reservation `json:"reservation"`
}

type CreateReservationResponse struct {
	Reservation *Reservation `json:"reservation"`
	WhatsAppURL string       `json:"whatsapp_url,omitempty"`
}

type ListReservationsResponse struct {
	Reservations []*Reservation `json:"reservations"`
}

type Payment struct {
	ID            uint64 `json:"id"`
	ReservationID uint64 `json:"reservation_id"`
	Montant       int64  `json:"montant"`
	Devise        string `json:"devise"`
	Methode       string `json:"methode"`
	Statut        string `json:"statut"`
	Reference     string `json:"reference"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type PaymentEnvelopeResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type Room struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	Capacity    int32  `json:"capacity"`
	ImageURL    string `json:"image_url,omitempty"`
	Available   bool   `json:"available"`
}

type RoomEnvelopeResponse struct {
	Room *Room `json:"room"`
}

type ListRoomsResponse struct {
	Rooms []*Room `json:"rooms"`
}
