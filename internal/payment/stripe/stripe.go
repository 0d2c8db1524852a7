package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("stripe config invalid")
	ErrRequestFailed   = errors.New("stripe request failed")
	ErrResponseInvalid = errors.New("stripe response invalid")
	ErrNotFound        = errors.New("stripe resource not found")
)

const (
	defaultAPIBaseURL   = "https://api.stripe.com"
	defaultTimeout      = 12 * time.Second
	defaultCurrency     = "NGN"
	defaultProductLimit = 100
)

// Config holds the Stripe credentials and storefront URLs.
type Config struct {
	SecretKey      string `json:"secret_key"`
	PublishableKey string `json:"publishable_key"`
	APIBaseURL     string `json:"api_base_url"`
	SuccessURL     string `json:"success_url"`
	CancelURL      string `json:"cancel_url"`
	Currency       string `json:"currency"`
	TimeoutMS      int    `json:"timeout_ms"`
}

// LineItem is one checkout line sent to Stripe. UnitAmount is in minor
// currency units (kobo for NGN).
type LineItem struct {
	Name       string
	Image      string
	UnitAmount int64
	Quantity   int
}

// CheckoutInput describes a hosted checkout session to create.
type CheckoutInput struct {
	Reference  string
	Currency   string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// CheckoutResult is the created session. URL is the hosted payment page.
type CheckoutResult struct {
	SessionID string
	URL       string
	Status    string
	Raw       map[string]interface{}
}

// SessionResult is a retrieved checkout session, used to confirm payment
// after the shopper returns to the success page.
type SessionResult struct {
	SessionID     string
	PaymentStatus string
	Status        string
	AmountTotal   int64
	Currency      string
	Reference     string
	Raw           map[string]interface{}
}

// Product is a catalog entry with its default price resolved.
type Product struct {
	ID          string
	Name        string
	Description string
	Images      []string
	Metadata    map[string]string
	PriceID     string
	UnitAmount  int64
	Currency    string
	Created     int64
}

// ValidateConfig checks the fields every API call needs.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return fmt.Errorf("%w: secret_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.SuccessURL) == "" {
		return fmt.Errorf("%w: success_url is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.CancelURL) == "" {
		return fmt.Errorf("%w: cancel_url is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.SuccessURL)); err != nil {
		return fmt.Errorf("%w: success_url is invalid", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.CancelURL)); err != nil {
		return fmt.Errorf("%w: cancel_url is invalid", ErrConfigInvalid)
	}
	if base := strings.TrimSpace(cfg.APIBaseURL); base != "" {
		if _, err := url.ParseRequestURI(base); err != nil {
			return fmt.Errorf("%w: api_base_url is invalid", ErrConfigInvalid)
		}
	}
	return nil
}

// CreateCheckoutSession builds a hosted checkout session from the cart lines.
func CreateCheckoutSession(ctx context.Context, cfg *Config, input CheckoutInput) (*CheckoutResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(input.LineItems) == 0 {
		return nil, fmt.Errorf("%w: line_items is empty", ErrConfigInvalid)
	}
	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = strings.ToLower(cfg.currencyOrDefault())
	}
	successURL := strings.TrimSpace(input.SuccessURL)
	if successURL == "" {
		successURL = strings.TrimSpace(cfg.SuccessURL)
	}
	cancelURL := strings.TrimSpace(input.CancelURL)
	if cancelURL == "" {
		cancelURL = strings.TrimSpace(cfg.CancelURL)
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Add("payment_method_types[]", "card")
	if ref := strings.TrimSpace(input.Reference); ref != "" {
		form.Set("client_reference_id", ref)
		form.Set("metadata[reference]", ref)
	}
	for i, item := range input.LineItems {
		name := strings.TrimSpace(item.Name)
		if name == "" || item.UnitAmount <= 0 || item.Quantity < 1 {
			return nil, fmt.Errorf("%w: line item %d is invalid", ErrConfigInvalid, i)
		}
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", name)
		if image := strings.TrimSpace(item.Image); image != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", image)
		}
	}

	respBody, statusCode, err := doFormRequest(ctx, cfg, http.MethodPost, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: create checkout session status %d", ErrResponseInvalid, statusCode)
	}
	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	result := &CheckoutResult{
		SessionID: strings.TrimSpace(readString(raw, "id")),
		URL:       strings.TrimSpace(readString(raw, "url")),
		Status:    strings.TrimSpace(readString(raw, "status")),
		Raw:       raw,
	}
	if result.SessionID == "" || result.URL == "" {
		return nil, fmt.Errorf("%w: missing session id or url", ErrResponseInvalid)
	}
	return result, nil
}

// GetCheckoutSession retrieves a session so the caller can confirm payment.
func GetCheckoutSession(ctx context.Context, cfg *Config, sessionID string) (*SessionResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session_id is required", ErrConfigInvalid)
	}
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	respBody, statusCode, err := doJSONRequest(ctx, cfg, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if statusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: checkout session %s", ErrNotFound, sessionID)
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: get checkout session status %d", ErrResponseInvalid, statusCode)
	}
	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	result := &SessionResult{
		SessionID:     strings.TrimSpace(readString(raw, "id")),
		PaymentStatus: strings.TrimSpace(readString(raw, "payment_status")),
		Status:        strings.TrimSpace(readString(raw, "status")),
		AmountTotal:   readInt64(raw, "amount_total"),
		Currency:      strings.ToUpper(strings.TrimSpace(readString(raw, "currency"))),
		Reference:     strings.TrimSpace(readString(raw, "client_reference_id")),
		Raw:           raw,
	}
	if result.SessionID == "" {
		return nil, fmt.Errorf("%w: missing checkout session id", ErrResponseInvalid)
	}
	return result, nil
}

// IsPaid reports whether the session's payment has settled.
func (r *SessionResult) IsPaid() bool {
	if r == nil {
		return false
	}
	status := strings.ToLower(r.PaymentStatus)
	return status == "paid" || status == "no_payment_required"
}

// ListProducts returns the active catalog with each default price expanded.
func ListProducts(ctx context.Context, cfg *Config, limit int) ([]Product, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if limit <= 0 {
		limit = defaultProductLimit
	}
	query := url.Values{}
	query.Set("active", "true")
	query.Set("limit", strconv.Itoa(limit))
	query.Add("expand[]", "data.default_price")
	respBody, statusCode, err := doJSONRequest(ctx, cfg, http.MethodGet, "/v1/products?"+query.Encode())
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: list products status %d", ErrResponseInvalid, statusCode)
	}
	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	dataRaw, ok := raw["data"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing product list", ErrResponseInvalid)
	}
	products := make([]Product, 0, len(dataRaw))
	for _, entry := range dataRaw {
		entryMap, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		products = append(products, parseProduct(entryMap))
	}
	return products, nil
}

// GetProduct returns one product with its default price expanded.
func GetProduct(ctx context.Context, cfg *Config, productID string) (*Product, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id is required", ErrConfigInvalid)
	}
	path := "/v1/products/" + url.PathEscape(productID) + "?expand[]=default_price"
	respBody, statusCode, err := doJSONRequest(ctx, cfg, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if statusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: get product status %d", ErrResponseInvalid, statusCode)
	}
	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	product := parseProduct(raw)
	if product.ID == "" {
		return nil, fmt.Errorf("%w: missing product id", ErrResponseInvalid)
	}
	return &product, nil
}

func parseProduct(raw map[string]interface{}) Product {
	product := Product{
		ID:          strings.TrimSpace(readString(raw, "id")),
		Name:        strings.TrimSpace(readString(raw, "name")),
		Description: strings.TrimSpace(readString(raw, "description")),
		Images:      readStringSlice(raw, "images"),
		Metadata:    readStringMap(raw, "metadata"),
		Created:     readInt64(raw, "created"),
	}
	if price := readMap(raw, "default_price"); price != nil {
		product.PriceID = strings.TrimSpace(readString(price, "id"))
		product.UnitAmount = readInt64(price, "unit_amount")
		product.Currency = strings.ToUpper(strings.TrimSpace(readString(price, "currency")))
	}
	return product
}

func (c *Config) currencyOrDefault() string {
	currency := strings.ToUpper(strings.TrimSpace(c.Currency))
	if currency == "" {
		return defaultCurrency
	}
	return currency
}

func (c *Config) timeout() time.Duration {
	if c.TimeoutMS > 0 {
		return time.Duration(c.TimeoutMS) * time.Millisecond
	}
	return defaultTimeout
}

func (c *Config) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if base == "" {
		return defaultAPIBaseURL
	}
	return base
}

func doFormRequest(ctx context.Context, cfg *Config, method, path string, form url.Values) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := cfg.baseURL() + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := (&http.Client{Timeout: cfg.timeout()}).Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return body, resp.StatusCode, nil
}

func doJSONRequest(ctx context.Context, cfg *Config, method, path string) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := cfg.baseURL() + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SecretKey)

	resp, err := (&http.Client{Timeout: cfg.timeout()}).Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return body, resp.StatusCode, nil
}

func decodeRawMap(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return raw, nil
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil || strings.TrimSpace(key) == "" {
		return ""
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return strings.TrimSpace(typed.String())
	case float64:
		return strings.TrimSpace(strconv.FormatInt(int64(typed), 10))
	case int64:
		return strings.TrimSpace(strconv.FormatInt(typed, 10))
	case int:
		return strings.TrimSpace(strconv.Itoa(typed))
	default:
		return ""
	}
}

func readInt64(raw map[string]interface{}, key string) int64 {
	if raw == nil || strings.TrimSpace(key) == "" {
		return 0
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return 0
	}
	switch typed := value.(type) {
	case int64:
		return typed
	case int:
		return int64(typed)
	case float64:
		return int64(typed)
	case json.Number:
		parsed, err := typed.Int64()
		if err == nil {
			return parsed
		}
		floatVal, err := typed.Float64()
		if err != nil {
			return 0
		}
		return int64(floatVal)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func readMap(raw map[string]interface{}, key string) map[string]interface{} {
	if raw == nil || strings.TrimSpace(key) == "" {
		return nil
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	mapped, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	return mapped
}

func readStringSlice(raw map[string]interface{}, key string) []string {
	if raw == nil || strings.TrimSpace(key) == "" {
		return nil
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func readStringMap(raw map[string]interface{}, key string) map[string]string {
	mapped := readMap(raw, key)
	if mapped == nil {
		return nil
	}
	out := make(map[string]string, len(mapped))
	for k, v := range mapped {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
