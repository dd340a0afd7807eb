package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/vibecart/internal/client/metrics"
	"github.com/dmitrijs2005/vibecart/internal/client/models"
	"github.com/dmitrijs2005/vibecart/internal/common"
	"github.com/dmitrijs2005/vibecart/internal/logging"
	"github.com/google/uuid"
)

const maxResponseBytes = 10 << 20

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	metrics   *metrics.Metrics
	log       logging.Logger
	requestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (tests use the
// httptest server's client).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "http://localhost:5000"; paths always start with /api).
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		log:       logging.Discard(),
		requestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "api")
	return c
}

// BaseURL is the API root the client was built with.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

type call struct {
	method      string
	route       string // template used as the metrics label
	path        string
	token       string
	body        io.Reader
	contentType string
}

func jsonCall(method, route, path, token string, payload any) (call, error) {
	cl := call{method: method, route: route, path: path, token: token}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return call{}, fmt.Errorf("encode request: %w", err)
		}
		cl.body = bytes.NewReader(b)
		cl.contentType = "application/json"
	}
	return cl, nil
}

// do sends cl and decodes the envelope's data into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, cl call, out any) error {
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, cl.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if cl.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+cl.token)
	}
	reqID := c.requestID()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	label := cl.method + " " + cl.route
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Observe(label, metrics.OutcomeTransport, time.Since(start))
		c.log.Warn(ctx, "request failed", "route", label, "request_id", reqID, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.Observe(label, metrics.OutcomeTransport, elapsed)
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done", "route", label, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", elapsed)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.Observe(label, outcomeFor(resp.StatusCode), elapsed)
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Message
			apiErr.Errors = env.fieldErrors()
		}
		return apiErr
	}

	if decodeErr != nil {
		c.metrics.Observe(label, metrics.OutcomeServerError, elapsed)
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if !env.Success {
		c.metrics.Observe(label, metrics.OutcomeClientError, elapsed)
		return &APIError{Status: resp.StatusCode, Message: env.Message, Errors: env.fieldErrors()}
	}

	c.metrics.Observe(label, metrics.OutcomeOK, elapsed)
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func outcomeFor(status int) string {
	if status >= 500 {
		return metrics.OutcomeServerError
	}
	return metrics.OutcomeClientError
}

func (c *HTTPClient) doJSON(ctx context.Context, method, route, path, token string, payload, out any) error {
	cl, err := jsonCall(method, route, path, token, payload)
	if err != nil {
		return err
	}
	return c.do(ctx, cl, out)
}

// ---- auth ----

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (*models.AuthPayload, error) {
	var p models.AuthPayload
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", "/api/auth/signup", "", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	var p models.AuthPayload
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "/api/auth/login", "", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", "/api/auth/me", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token, name, email string) (*models.User, error) {
	var u models.User
	body := map[string]string{"name": name, "email": email}
	if err := c.doJSON(ctx, http.MethodPut, "/api/auth/updateprofile", "/api/auth/updateprofile", token, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ---- products ----

func (c *HTTPClient) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/api/products", "/api/products", token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, token, id string) (*models.Product, error) {
	var p models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products/{id}", "/api/products/"+url.PathEscape(id), token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) MyProducts(ctx context.Context, token string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/api/products/my/products", "/api/products/my/products", token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, token string, in models.ProductInput) (*models.Product, error) {
	var p models.Product
	if err := c.doJSON(ctx, http.MethodPost, "/api/products", "/api/products", token, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, token, id string, in models.ProductInput) (*models.Product, error) {
	var p models.Product
	if err := c.doJSON(ctx, http.MethodPut, "/api/products/{id}", "/api/products/"+url.PathEscape(id), token, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/products/{id}", "/api/products/"+url.PathEscape(id), token, nil, nil)
}

// ---- cart ----

func (c *HTTPClient) cartCall(ctx context.Context, method, route, path, token string, payload any) (*models.Cart, error) {
	var cart models.Cart
	if err := c.doJSON(ctx, method, route, path, token, payload, &cart); err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	return &cart, nil
}

func (c *HTTPClient) GetCart(ctx context.Context, token string) (*models.Cart, error) {
	return c.cartCall(ctx, http.MethodGet, "/api/cart", "/api/cart", token, nil)
}

func (c *HTTPClient) AddToCart(ctx context.Context, token, productID string, quantity int) (*models.Cart, error) {
	body := map[string]any{"productId": productID, "quantity": quantity}
	return c.cartCall(ctx, http.MethodPost, "/api/cart/add", "/api/cart/add", token, body)
}

func (c *HTTPClient) UpdateCartItem(ctx context.Context, token, productID string, quantity int) (*models.Cart, error) {
	body := map[string]any{"quantity": quantity}
	return c.cartCall(ctx, http.MethodPut, "/api/cart/update/{id}", "/api/cart/update/"+url.PathEscape(productID), token, body)
}

func (c *HTTPClient) RemoveCartItem(ctx context.Context, token, productID string) (*models.Cart, error) {
	return c.cartCall(ctx, http.MethodDelete, "/api/cart/remove/{id}", "/api/cart/remove/"+url.PathEscape(productID), token, nil)
}

func (c *HTTPClient) ClearCart(ctx context.Context, token string) (*models.Cart, error) {
	return c.cartCall(ctx, http.MethodDelete, "/api/cart/clear", "/api/cart/clear", token, nil)
}

// ---- uploads ----

func multipartCall(route, token, field string, files []UploadFile) (call, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return call{}, fmt.Errorf("create part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return call{}, fmt.Errorf("write part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return call{}, fmt.Errorf("close multipart: %w", err)
	}
	return call{
		method:      http.MethodPost,
		route:       route,
		path:        route,
		token:       token,
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, nil
}

func (c *HTTPClient) UploadImage(ctx context.Context, token string, file UploadFile) (*models.UploadedImage, error) {
	cl, err := multipartCall("/api/upload/single", token, "image", []UploadFile{file})
	if err != nil {
		return nil, err
	}
	var img models.UploadedImage
	if err := c.do(ctx, cl, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (c *HTTPClient) UploadImages(ctx context.Context, token string, files []UploadFile) ([]models.UploadedImage, error) {
	cl, err := multipartCall("/api/upload/multiple", token, "images", files)
	if err != nil {
		return nil, err
	}
	imgs := make([]models.UploadedImage, 0, len(files))
	if err := c.do(ctx, cl, &imgs); err != nil {
		return nil, err
	}
	return imgs, nil
}
