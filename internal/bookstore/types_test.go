package bookstore

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw    string
		want   Status
		wantOK bool
	}{
		{"pending", StatusPending, true},
		{"  Processing ", StatusProcessing, true},
		{"SENT", StatusSent, true},
		{"completed", StatusCompleted, true},
		{"shipped", Status("shipped"), false},
		{"", Status(""), false},
	}
	for _, tc := range cases {
		got, ok := ParseStatus(tc.raw)
		if ok != tc.wantOK {
			t.Fatalf("ParseStatus(%q) ok = %v, want %v", tc.raw, ok, tc.wantOK)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestOrder_DecodesWireSchema(t *testing.T) {
	raw := `{
		"order_id": "ord-7",
		"customer_name": "Jo March",
		"customer_email": "jo@example.com",
		"customer_address": "1 Orchard House",
		"customer_city": "Concord",
		"customer_postal_code": "01742",
		"customer_country": "US",
		"status": "pending",
		"total": 41.97,
		"created_at": "2026-08-30T10:15:00Z",
		"items": [
			{"title": "Little Women", "quantity": 3, "price": 13.99}
		]
	}`

	var order Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if order.OrderID != "ord-7" || order.CustomerName != "Jo March" {
		t.Fatalf("order = %#v, want ord-7 / Jo March", order)
	}
	if !order.Status.Valid() {
		t.Fatalf("status %q not valid", order.Status)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 3 {
		t.Fatalf("items = %#v, want one item qty=3", order.Items)
	}
	if got := order.Items[0].LineTotal(); got != 41.97 {
		t.Fatalf("LineTotal = %v, want 41.97", got)
	}
	want := time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC)
	if !order.ParsedCreatedAt().Equal(want) {
		t.Fatalf("ParsedCreatedAt = %v, want %v", order.ParsedCreatedAt(), want)
	}
}

func TestParseTime_FallbacksAndZero(t *testing.T) {
	if !parseTime("").IsZero() {
		t.Fatal("parseTime(\"\") should be zero")
	}
	if !parseTime("not a time").IsZero() {
		t.Fatal("parseTime(garbage) should be zero")
	}
	if parseTime("2026-08-30 10:15:00").IsZero() {
		t.Fatal("parseTime should accept the plain layout")
	}
}
