package bookstore

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:4000/api/")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "/api" {
		t.Fatalf("path = %q, want /api (trailing slash trimmed)", u.Path)
	}

	u, err = parseBaseURL("https://shop.example.com/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_LoginIssuesTokenAndSurfacesRejection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		w.Header().Set("Content-Type", "application/json")
		if creds.Username == "admin" && creds.Password == "secret" {
			_ = json.NewEncoder(w).Encode(LoginResponse{Success: true, Token: "tok-123"})
			return
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{Success: false, Message: "bad credentials"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	sess, err := c.Login(ctx, "admin", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if sess.Token != "tok-123" {
		t.Fatalf("token = %q, want tok-123", sess.Token)
	}

	_, err = c.Login(ctx, "admin", "wrong")
	if err == nil || err.Error() != "bad credentials" {
		t.Fatalf("Login error = %v, want server message", err)
	}
}

func TestClient_MutationsRequireSession(t *testing.T) {
	// Server that fails the test if any request arrives.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s without session", r.Method, r.URL.Path)
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	calls := []struct {
		name string
		call func(sess *Session) error
	}{
		{"CreateBook", func(s *Session) error { return c.CreateBook(ctx, s, Book{ISBN: "1"}) }},
		{"UpdateBook", func(s *Session) error { return c.UpdateBook(ctx, s, Book{ISBN: "1"}) }},
		{"DeleteBook", func(s *Session) error { return c.DeleteBook(ctx, s, "1") }},
		{"UploadImage", func(s *Session) error {
			_, err := c.UploadImage(ctx, s, "1", ImageUpload{FileName: "x.png", Data: strings.NewReader("x")})
			return err
		}},
		{"DeleteImage", func(s *Session) error { return c.DeleteImage(ctx, s, "1", 7) }},
		{"UpdateOrderStatus", func(s *Session) error { return c.UpdateOrderStatus(ctx, s, "o1", StatusSent) }},
	}

	for _, tc := range calls {
		if err := tc.call(nil); !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("%s(nil session) error = %v, want ErrNotAuthenticated", tc.name, err)
		}
		if err := tc.call(&Session{Token: "   "}); !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("%s(blank token) error = %v, want ErrNotAuthenticated", tc.name, err)
		}
	}
}

func TestClient_BookCRUDCarriesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth []string
	var gotMethods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		gotMethods = append(gotMethods, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()
	sess := &Session{Token: "tok"}

	book := Book{ISBN: "978-0-06-112008-4", Title: "To Kill a Mockingbird", Author: "Harper Lee", Price: 12.5}
	if err := c.CreateBook(ctx, sess, book); err != nil {
		t.Fatalf("CreateBook returned error: %v", err)
	}
	if err := c.UpdateBook(ctx, sess, book); err != nil {
		t.Fatalf("UpdateBook returned error: %v", err)
	}
	if err := c.DeleteBook(ctx, sess, book.ISBN); err != nil {
		t.Fatalf("DeleteBook returned error: %v", err)
	}
	if err := c.UpdateOrderStatus(ctx, sess, "ord-1", StatusCompleted); err != nil {
		t.Fatalf("UpdateOrderStatus returned error: %v", err)
	}

	wantMethods := []string{
		"POST /books",
		"PUT /books/978-0-06-112008-4",
		"DELETE /books/978-0-06-112008-4",
		"PATCH /orders/ord-1/status",
	}
	if len(gotMethods) != len(wantMethods) {
		t.Fatalf("requests = %v, want %v", gotMethods, wantMethods)
	}
	for i := range wantMethods {
		if gotMethods[i] != wantMethods[i] {
			t.Fatalf("request %d = %q, want %q", i, gotMethods[i], wantMethods[i])
		}
		if gotAuth[i] != "Bearer tok" {
			t.Fatalf("Authorization for %q = %q, want Bearer tok", gotMethods[i], gotAuth[i])
		}
	}
}

func TestClient_UpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	err = c.UpdateOrderStatus(context.Background(), &Session{Token: "tok"}, "ord-1", Status("shipped"))
	if err == nil || !strings.Contains(err.Error(), "unknown order status") {
		t.Fatalf("UpdateOrderStatus error = %v, want unknown status error", err)
	}
}

func TestClient_UploadImageSendsMultipartFields(t *testing.T) {
	t.Parallel()

	var gotAltText, gotIsPrimary, gotFileName, gotPartType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/books/978-0-06-112008-4/images" {
			http.NotFound(w, r)
			return
		}
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("Content-Type = %q, want multipart/form-data", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		gotAltText = r.FormValue("altText")
		gotIsPrimary = r.FormValue("isPrimary")
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			http.Error(w, "no file", http.StatusBadRequest)
			return
		}
		defer func() { _ = file.Close() }()
		gotFileName = header.Filename
		gotPartType = header.Header.Get("Content-Type")
		raw := make([]byte, header.Size)
		_, _ = file.Read(raw)
		gotBody = string(raw)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]Image{
			"image": {ID: 9, ScalewayURL: "https://img.example/9.png", AltText: gotAltText, IsPrimary: true},
		})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	img, err := c.UploadImage(context.Background(), &Session{Token: "tok"}, "978-0-06-112008-4", ImageUpload{
		FileName:    "cover.png",
		ContentType: "image/png",
		Data:        strings.NewReader("png-bytes"),
		AltText:     "Cover",
		Primary:     true,
	})
	if err != nil {
		t.Fatalf("UploadImage returned error: %v", err)
	}

	if gotFileName != "cover.png" || gotPartType != "image/png" || gotBody != "png-bytes" {
		t.Fatalf("file part = (%q, %q, %q), want (cover.png, image/png, png-bytes)", gotFileName, gotPartType, gotBody)
	}
	if gotAltText != "Cover" || gotIsPrimary != "true" {
		t.Fatalf("fields = (altText=%q, isPrimary=%q), want (Cover, true)", gotAltText, gotIsPrimary)
	}
	if img.ID != 9 || !img.IsPrimary || img.AltText != "Cover" {
		t.Fatalf("created image = %#v, want id=9 primary alt=Cover", img)
	}
}

func TestClient_DeleteImageThenRefetchShrinksList(t *testing.T) {
	t.Parallel()

	images := []Image{
		{ID: 1, ScalewayURL: "https://img.example/1.png"},
		{ID: 2, ScalewayURL: "https://img.example/2.png", IsPrimary: true},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/books/isbn-1/images/1":
			kept := images[:0:0]
			for _, img := range images {
				if img.ID != 1 {
					kept = append(kept, img)
				}
			}
			images = kept
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/books/isbn-1/images":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(images)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if err := c.DeleteImage(ctx, &Session{Token: "tok"}, "isbn-1", 1); err != nil {
		t.Fatalf("DeleteImage returned error: %v", err)
	}
	got, err := c.FetchImages(ctx, "isbn-1")
	if err != nil {
		t.Fatalf("FetchImages returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("image list length = %d, want 1", len(got))
	}
	for _, img := range got {
		if img.ID == 1 {
			t.Fatalf("deleted image id still present: %#v", got)
		}
	}
}

func TestClient_OrderStatusPatchVisibleAfterReload(t *testing.T) {
	t.Parallel()

	orders := []Order{{OrderID: "ord-1", Status: StatusPending, Total: 31.98}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch && r.URL.Path == "/orders/ord-1/status":
			var body struct {
				Status Status `json:"status"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			orders[0].Status = body.Status
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
		case r.Method == http.MethodGet && r.URL.Path == "/orders":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(orders)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if err := c.UpdateOrderStatus(ctx, &Session{Token: "tok"}, "ord-1", StatusProcessing); err != nil {
		t.Fatalf("UpdateOrderStatus returned error: %v", err)
	}
	got, err := c.FetchOrders(ctx)
	if err != nil {
		t.Fatalf("FetchOrders returned error: %v", err)
	}
	if len(got) != 1 || got[0].Status != StatusProcessing {
		t.Fatalf("orders after reload = %#v, want status processing", got)
	}
	if !got[0].Status.Valid() {
		t.Fatalf("status %q not in enumeration", got[0].Status)
	}
}

func TestClient_HTTPErrorPreservesServerDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/books":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"duplicate isbn","details":"book 978-1 already exists"}`))
		case "/orders":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	err = c.CreateBook(ctx, &Session{Token: "tok"}, Book{ISBN: "978-1"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("CreateBook error = %v, want *APIError", err)
	}
	if apiErr.Error() != "book 978-1 already exists" {
		t.Fatalf("APIError message = %q, want server detail", apiErr.Error())
	}

	_, err = c.FetchOrders(ctx)
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchOrders error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("APIError status = %d, want 500", apiErr.Status)
	}
}

func TestClient_DecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchBooks(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchBooks error = %v, want decode response error", err)
	}
}
