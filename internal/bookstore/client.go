package bookstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API defines the operations the console issues against the bookstore
// backend. This interface is implemented by *Client and can be used for
// testing.
type API interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	FetchBooks(ctx context.Context) ([]Book, error)
	CreateBook(ctx context.Context, sess *Session, book Book) error
	UpdateBook(ctx context.Context, sess *Session, book Book) error
	DeleteBook(ctx context.Context, sess *Session, isbn string) error
	FetchImages(ctx context.Context, isbn string) ([]Image, error)
	UploadImage(ctx context.Context, sess *Session, isbn string, upload ImageUpload) (Image, error)
	DeleteImage(ctx context.Context, sess *Session, isbn string, imageID int64) error
	FetchOrders(ctx context.Context) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, sess *Session, orderID string, status Status) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// ErrNotAuthenticated is returned by privileged calls when no session token
// is present. The request is never issued.
var ErrNotAuthenticated = errors.New("not authenticated")

// Session is the bearer credential issued at login. It lives for the
// duration of the console session and is never persisted.
type Session struct {
	Token string
}

func (s *Session) valid() bool {
	return s != nil && strings.TrimSpace(s.Token) != ""
}

// APIError carries an HTTP failure from the backend, preserving the
// server-supplied detail when the body includes one.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Details
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api returned status %d", e.Status)
}

// Client talks to the bookstore REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://localhost:3001/api"
	defaultUserAgent = "backroom/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client for the given base URL. An empty base URL falls
// back to the local development default. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Login exchanges credentials for a bearer session. Failures surface the
// server message when one is present.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var payload LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "", []string{"admin", "login"}, body, &payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.Message != "" {
				return nil, errors.New(apiErr.Message)
			}
			return nil, errors.New("invalid credentials")
		}
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	if !payload.Success || strings.TrimSpace(payload.Token) == "" {
		if payload.Message != "" {
			return nil, errors.New(payload.Message)
		}
		return nil, errors.New("invalid credentials")
	}
	return &Session{Token: payload.Token}, nil
}

// FetchBooks retrieves the full book collection. Read access requires no
// session.
func (c *Client) FetchBooks(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var books []Book
	if err := c.doJSON(ctx, http.MethodGet, "", []string{"books"}, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook adds a new book record.
func (c *Client) CreateBook(ctx context.Context, sess *Session, book Book) error {
	if !sess.valid() {
		return ErrNotAuthenticated
	}
	return c.doJSON(ctx, http.MethodPost, sess.Token, []string{"books"}, book, nil)
}

// UpdateBook replaces the mutable fields of an existing book. The ISBN
// identifies the record and cannot change.
func (c *Client) UpdateBook(ctx context.Context, sess *Session, book Book) error {
	if !sess.valid() {
		return ErrNotAuthenticated
	}
	if strings.TrimSpace(book.ISBN) == "" {
		return fmt.Errorf("isbn required")
	}
	return c.doJSON(ctx, http.MethodPut, sess.Token, []string{"books", book.ISBN}, book, nil)
}

// DeleteBook removes a book record.
func (c *Client) DeleteBook(ctx context.Context, sess *Session, isbn string) error {
	if !sess.valid() {
		return ErrNotAuthenticated
	}
	if strings.TrimSpace(isbn) == "" {
		return fmt.Errorf("isbn required")
	}
	return c.doJSON(ctx, http.MethodDelete, sess.Token, []string{"books", isbn}, nil, nil)
}

// FetchImages retrieves the image list for one book.
func (c *Client) FetchImages(ctx context.Context, isbn string) ([]Image, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(isbn) == "" {
		return nil, fmt.Errorf("isbn required")
	}
	var images []Image
	if err := c.doJSON(ctx, http.MethodGet, "", []string{"books", isbn, "images"}, nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// ImageUpload carries a staged file plus its metadata for UploadImage.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        io.Reader
	AltText     string
	Primary     bool
}

// UploadImage sends the staged file as a multipart body scoped to one book
// and returns the created image record.
func (c *Client) UploadImage(ctx context.Context, sess *Session, isbn string, upload ImageUpload) (Image, error) {
	if !sess.valid() {
		return Image{}, ErrNotAuthenticated
	}
	if strings.TrimSpace(isbn) == "" {
		return Image{}, fmt.Errorf("isbn required")
	}
	if upload.Data == nil {
		return Image{}, fmt.Errorf("no file staged")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, upload.FileName))
	if upload.ContentType != "" {
		header.Set("Content-Type", upload.ContentType)
	}
	part, err := form.CreatePart(header)
	if err != nil {
		return Image{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, upload.Data); err != nil {
		return Image{}, fmt.Errorf("copy file contents: %w", err)
	}
	if err := form.WriteField("altText", upload.AltText); err != nil {
		return Image{}, fmt.Errorf("write altText field: %w", err)
	}
	if err := form.WriteField("isPrimary", strconv.FormatBool(upload.Primary)); err != nil {
		return Image{}, fmt.Errorf("write isPrimary field: %w", err)
	}
	if err := form.Close(); err != nil {
		return Image{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	var payload imageUploadResponse
	err = c.do(ctx, http.MethodPost, sess.Token, []string{"books", isbn, "images"}, &buf, form.FormDataContentType(), &payload)
	if err != nil {
		return Image{}, err
	}
	return payload.Image, nil
}

// DeleteImage removes one image from a book's image set.
func (c *Client) DeleteImage(ctx context.Context, sess *Session, isbn string, imageID int64) error {
	if !sess.valid() {
		return ErrNotAuthenticated
	}
	if strings.TrimSpace(isbn) == "" {
		return fmt.Errorf("isbn required")
	}
	return c.doJSON(ctx, http.MethodDelete, sess.Token,
		[]string{"books", isbn, "images", strconv.FormatInt(imageID, 10)}, nil, nil)
}

// FetchOrders retrieves the full order collection including line items.
func (c *Client) FetchOrders(ctx context.Context) ([]Order, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var orders []Order
	if err := c.doJSON(ctx, http.MethodGet, "", []string{"orders"}, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus patches one order to the given status. Callers should
// re-fetch the order collection afterwards; local state is never patched
// optimistically.
func (c *Client) UpdateOrderStatus(ctx context.Context, sess *Session, orderID string, status Status) error {
	if !sess.valid() {
		return ErrNotAuthenticated
	}
	if strings.TrimSpace(orderID) == "" {
		return fmt.Errorf("order id required")
	}
	if !status.Valid() {
		return fmt.Errorf("unknown order status %q", status)
	}
	body := struct {
		Status Status `json:"status"`
	}{status}
	return c.doJSON(ctx, http.MethodPatch, sess.Token, []string{"orders", orderID, "status"}, body, nil)
}

func (c *Client) doJSON(ctx context.Context, method, token string, path []string, payload, dest any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.do(ctx, method, token, path, body, contentType, dest)
}

func (c *Client) do(ctx context.Context, method, token string, path []string, body io.Reader, contentType string, dest any) error {
	reqURL := c.baseURL.JoinPath(path...)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		apiErr.Details = strings.TrimSpace(body.Details)
		apiErr.Message = strings.TrimSpace(body.Error)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(body.Message)
		}
	}
	return apiErr
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
