package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/rarefinebooks/backroom/internal/bookstore"
	"github.com/rarefinebooks/backroom/internal/images"
)

// Snapshot represents the latest server-derived data available to the UI.
// Collections are replaced wholesale on refresh, never patched locally.
type Snapshot struct {
	Books        []images.Listing
	Orders       []bookstore.Order
	BooksError   error
	OrdersError  error
	BooksLoaded  bool
	OrdersLoaded bool
	LastUpdated  time.Time
}

// Stats aggregates the dashboard tiles from the snapshot.
type Stats struct {
	TotalOrders   int
	PendingOrders int
	TotalRevenue  float64
	TotalBooks    int
	LowStock      int
}

// LowStockThreshold marks books that need reordering attention.
const LowStockThreshold = 5

// Stats computes dashboard aggregates over the snapshot.
func (s Snapshot) Stats() Stats {
	stats := Stats{
		TotalOrders: len(s.Orders),
		TotalBooks:  len(s.Books),
	}
	for _, order := range s.Orders {
		stats.TotalRevenue += order.Total
		if order.Status == bookstore.StatusPending {
			stats.PendingOrders++
		}
	}
	for _, book := range s.Books {
		if book.Stock < LowStockThreshold {
			stats.LowStock++
		}
	}
	return stats
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// UpdateBooks replaces the book collection. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) UpdateBooks(books []images.Listing, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.BooksError = err
		return
	}
	s.snapshot.Books = cloneBooks(books)
	s.snapshot.BooksError = nil
	s.snapshot.BooksLoaded = true
}

// UpdateOrders replaces the order collection, with the same error semantics
// as UpdateBooks.
func (s *Store) UpdateOrders(orders []bookstore.Order, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.OrdersError = err
		return
	}
	s.snapshot.Orders = cloneOrders(orders)
	s.snapshot.OrdersError = nil
	s.snapshot.OrdersLoaded = true
}

// Reset drops all cached data. Used on logout; the next login starts from a
// clean snapshot.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Books = cloneBooks(s.snapshot.Books)
	snap.Orders = cloneOrders(s.snapshot.Orders)
	if s.snapshot.BooksError != nil {
		snap.BooksError = fmt.Errorf("%w", s.snapshot.BooksError)
	}
	if s.snapshot.OrdersError != nil {
		snap.OrdersError = fmt.Errorf("%w", s.snapshot.OrdersError)
	}
	return snap
}

func cloneBooks(items []images.Listing) []images.Listing {
	if len(items) == 0 {
		return nil
	}
	dup := make([]images.Listing, len(items))
	copy(dup, items)
	return dup
}

func cloneOrders(items []bookstore.Order) []bookstore.Order {
	if len(items) == 0 {
		return nil
	}
	dup := make([]bookstore.Order, len(items))
	copy(dup, items)
	return dup
}
