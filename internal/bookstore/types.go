package bookstore

import (
	"strings"
	"time"
)

// Book mirrors a book record from GET /books.
type Book struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
}

// Image mirrors an image record from GET /books/{isbn}/images. Each image
// belongs to exactly one book; at most one per book carries the primary flag.
type Image struct {
	ID          int64  `json:"id"`
	ScalewayURL string `json:"scaleway_url"`
	AltText     string `json:"alt_text"`
	IsPrimary   bool   `json:"is_primary"`
}

// Status enumerates the order lifecycle states. Any status may be set from
// any other; the backend enforces no transition graph.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSent       Status = "sent"
	StatusCompleted  Status = "completed"
)

// Statuses lists all order statuses in display order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusSent, StatusCompleted}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusSent, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus normalizes a raw status string, returning ok=false for
// anything outside the enumeration.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Order mirrors an order record from GET /orders, including nested items.
type Order struct {
	OrderID            string      `json:"order_id"`
	CustomerName       string      `json:"customer_name"`
	CustomerEmail      string      `json:"customer_email"`
	CustomerAddress    string      `json:"customer_address"`
	CustomerCity       string      `json:"customer_city"`
	CustomerPostalCode string      `json:"customer_postal_code"`
	CustomerCountry    string      `json:"customer_country"`
	Status             Status      `json:"status"`
	Total              float64     `json:"total"`
	CreatedAt          string      `json:"created_at"`
	Items              []OrderItem `json:"items"`
}

// OrderItem is a single line item on an order.
type OrderItem struct {
	Title    string  `json:"title"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// LineTotal returns quantity times unit price.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (o Order) ParsedCreatedAt() time.Time {
	return parseTime(o.CreatedAt)
}

// LoginResponse mirrors the payload returned by POST /admin/login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type imageUploadResponse struct {
	Image Image `json:"image"`
}

const storeTimestampLayout = "2006-01-02 15:04:05"

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(storeTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
