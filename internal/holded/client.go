// Package holded talks to the Holded invoicing API. Pushes are
// best-effort: the app works fully offline, and a tripped breaker
// degrades sync to a no-op instead of blocking the CLI.
package holded

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/danivilar/atelier/internal/config"
	"github.com/danivilar/atelier/internal/domain"
)

// Contact is Holded's view of a client.
type Contact struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Code  string `json:"code,omitempty"`
}

// InvoiceDraft is the minimal payload to open a draft invoice.
type InvoiceDraft struct {
	ContactID string  `json:"contactId"`
	Date      string  `json:"date"`
	Concept   string  `json:"desc"`
	Amount    float64 `json:"subtotal"`
}

// Client provides access to the Holded API.
type Client interface {
	// SyncContact creates or updates the contact for a client and
	// returns the Holded contact ID.
	SyncContact(ctx context.Context, c *domain.Client) (string, error)

	// CreateInvoiceDraft opens a draft invoice and returns its ID.
	CreateInvoiceDraft(ctx context.Context, draft InvoiceDraft) (string, error)

	// Available reports whether the API is reachable and the breaker
	// is closed.
	Available(ctx context.Context) bool
}

type httpClient struct {
	cfg     config.HoldedConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *logrus.Logger
}

// NewClient creates a Client against the configured Holded account.
func NewClient(cfg config.HoldedConfig, log *logrus.Logger) Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "holded",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("holded breaker state change")
		},
	})

	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		breaker: breaker,
		log:     log,
	}
}

func (c *httpClient) SyncContact(ctx context.Context, client *domain.Client) (string, error) {
	contact := Contact{
		Name:  client.Name,
		Email: client.Email,
		Phone: client.Phone,
	}

	method, path := http.MethodPost, "/contacts"
	if client.HoldedContactID != "" {
		method, path = http.MethodPut, "/contacts/"+client.HoldedContactID
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, method, path, contact, &out); err != nil {
		return "", fmt.Errorf("syncing contact: %w", err)
	}
	if out.ID == "" {
		out.ID = client.HoldedContactID
	}
	return out.ID, nil
}

func (c *httpClient) CreateInvoiceDraft(ctx context.Context, draft InvoiceDraft) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/documents/invoice", draft, &out); err != nil {
		return "", fmt.Errorf("creating invoice draft: %w", err)
	}
	return out.ID, nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	if c.breaker.State() == gobreaker.StateOpen {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/contacts?limit=1", nil)
	if err != nil {
		return false
	}
	req.Header.Set("key", c.cfg.APIKey)
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

// do runs one API call through the circuit breaker.
func (c *httpClient) do(ctx context.Context, method, path string, body any, out any) error {
	start := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("key", c.cfg.APIKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
		}
		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return nil, fmt.Errorf("decoding response: %w", err)
			}
		}
		return nil, nil
	})

	entry := c.log.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("holded call failed")
		return err
	}
	entry.Debug("holded call ok")
	return nil
}
