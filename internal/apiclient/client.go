// Package apiclient is the single chokepoint through which every outbound
// HTTP request to the EcoDeli backend is issued. It attaches the bearer
// credential, normalizes failures into *Error values, and reacts to
// authorization rejections by invalidating the local session.
//
// The facade performs no retries, no request deduplication and no response
// caching; the backend is the sole arbiter of consistency.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TokenFunc returns the current bearer token, or "" when no session exists.
type TokenFunc func() string

// Config parameterizes a Client. BaseURL already carries the /api prefix.
type Config struct {
	BaseURL string
	// HTTPClient defaults to http.DefaultClient. The facade enforces no
	// timeout of its own; inject a client with one if the caller wants it.
	HTTPClient *http.Client
	Logger     zerolog.Logger
	// Token supplies the credential attached to every request.
	Token TokenFunc
	// OnUnauthorized is invoked when the backend answers 401 (or 403 with
	// LogoutOnForbidden). The callback must be idempotent: concurrent
	// in-flight requests may each observe a rejection.
	OnUnauthorized func()
	// LogoutOnForbidden extends the forced-logout reaction to 403.
	LogoutOnForbidden bool
}

// Client implements the API access facade.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	token   TokenFunc
	onUnauthorized    func()
	logoutOnForbidden bool
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		http:              hc,
		log:               cfg.Logger,
		token:             cfg.Token,
		onUnauthorized:    cfg.OnUnauthorized,
		logoutOnForbidden: cfg.LogoutOnForbidden,
	}
}

// Get issues a GET request and decodes the JSON response into out (out may
// be nil when the body is irrelevant).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, r, "application/json", out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, r, "application/json", out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out)
}

// PostMultipart uploads file under field name, with extra form fields, as
// multipart/form-data. Content-type negotiation is left to the multipart
// writer.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "préparation du fichier impossible", wrapped: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Kind: KindTransport, Message: "lecture du fichier impossible", wrapped: err}
	}
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindTransport, Message: "préparation du formulaire impossible", wrapped: err}
	}

	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		RequestsTotal.WithLabelValues(method, KindTransport.String()).Inc()
		return &Error{Kind: KindTransport, Message: "requête invalide", wrapped: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		RequestsTotal.WithLabelValues(method, KindTransport.String()).Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &Error{Kind: KindTransport, Message: "le serveur est injoignable", wrapped: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		RequestsTotal.WithLabelValues(method, KindTransport.String()).Inc()
		return &Error{Kind: KindTransport, Message: "lecture de la réponse impossible", wrapped: err}
	}

	if resp.StatusCode == http.StatusUnauthorized ||
		(c.logoutOnForbidden && resp.StatusCode == http.StatusForbidden) {
		SessionExpirationsTotal.Inc()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		apiErr := newHTTPError(resp.StatusCode, raw)
		RequestsTotal.WithLabelValues(method, apiErr.Kind.String()).Inc()
		c.log.Info().Int("status", resp.StatusCode).Str("path", path).Msg("session invalidated by backend")
		return apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newHTTPError(resp.StatusCode, raw)
		RequestsTotal.WithLabelValues(method, apiErr.Kind.String()).Inc()
		return apiErr
	}

	RequestsTotal.WithLabelValues(method, "success").Inc()

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Kind: KindTransport, Message: "réponse illisible du serveur", wrapped: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "encodage de la requête impossible", wrapped: err}
	}
	return bytes.NewReader(b), nil
}
