package ui

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rarefinebooks/backroom/internal/bookstore"
	"github.com/rarefinebooks/backroom/internal/state"
)

// stubAPI fails every call with a fixed error.
type stubAPI struct {
	err error
}

func (s *stubAPI) Login(context.Context, string, string) (*bookstore.Session, error) {
	return nil, s.err
}
func (s *stubAPI) FetchBooks(context.Context) ([]bookstore.Book, error) { return nil, s.err }
func (s *stubAPI) CreateBook(context.Context, *bookstore.Session, bookstore.Book) error {
	return s.err
}
func (s *stubAPI) UpdateBook(context.Context, *bookstore.Session, bookstore.Book) error {
	return s.err
}
func (s *stubAPI) DeleteBook(context.Context, *bookstore.Session, string) error { return s.err }
func (s *stubAPI) FetchImages(context.Context, string) ([]bookstore.Image, error) {
	return nil, s.err
}
func (s *stubAPI) UploadImage(context.Context, *bookstore.Session, string, bookstore.ImageUpload) (bookstore.Image, error) {
	return bookstore.Image{}, s.err
}
func (s *stubAPI) DeleteImage(context.Context, *bookstore.Session, string, int64) error {
	return s.err
}
func (s *stubAPI) FetchOrders(context.Context) ([]bookstore.Order, error) { return nil, s.err }
func (s *stubAPI) UpdateOrderStatus(context.Context, *bookstore.Session, string, bookstore.Status) error {
	return s.err
}

var _ bookstore.API = (*stubAPI)(nil)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestLogErr(t *testing.T) {
	buf := captureLog(t)

	logErr("fetch books", nil)
	if buf.Len() != 0 {
		t.Fatalf("nil error produced log output: %q", buf.String())
	}

	logErr("fetch books", errors.New("connection refused"))
	got := buf.String()
	if !strings.Contains(got, "fetch books") || !strings.Contains(got, "connection refused") {
		t.Fatalf("log output = %q, want operation and cause", got)
	}
}

func TestRefreshBooksCmdLogsFailure(t *testing.T) {
	buf := captureLog(t)

	client := &stubAPI{err: errors.New("dial tcp: connection refused")}
	store := &state.Store{}

	msg := refreshBooksCmd(context.Background(), client, store)()
	snapshot, ok := msg.(snapshotMsg)
	if !ok {
		t.Fatalf("msg type = %T, want snapshotMsg", msg)
	}
	if snapshot.BooksError == nil {
		t.Fatal("snapshot carries no books error after failed fetch")
	}
	if !strings.Contains(buf.String(), "connection refused") {
		t.Fatalf("failure not logged, log = %q", buf.String())
	}
}

func TestSetOrderStatusCmdLogsFailure(t *testing.T) {
	buf := captureLog(t)

	client := &stubAPI{err: errors.New("status 500")}
	sess := &bookstore.Session{Token: "tok"}

	msg := setOrderStatusCmd(context.Background(), client, sess, "ord-1", bookstore.StatusSent)()
	result, ok := msg.(orderStatusMsg)
	if !ok {
		t.Fatalf("msg type = %T, want orderStatusMsg", msg)
	}
	if result.err == nil {
		t.Fatal("expected error from failing client")
	}
	if !strings.Contains(buf.String(), "ord-1") {
		t.Fatalf("failure not logged, log = %q", buf.String())
	}
}
