package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	orderStatusCompleted = "COMPLETED"
)

// PaymentVerifier is the slice of the PayPal API this service needs:
// a client-credentials token and a single order read.
type PaymentVerifier interface {
	GetAccessToken(ctx context.Context) (string, error)
	GetOrder(ctx context.Context, orderID, accessToken string) (*Order, error)
}

// Order is the subset of a PayPal checkout order the verification flow
// inspects.
type Order struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

type PurchaseUnit struct {
	ReferenceID string                `json:"reference_id"`
	CustomID    string                `json:"custom_id"`
	Payments    *PurchaseUnitPayments `json:"payments"`
}

type PurchaseUnitPayments struct {
	Captures []Capture `json:"captures"`
}

type Capture struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Completed reports whether the order has been paid: either the order
// itself is COMPLETED or at least one capture is. Partial-capture
// completion counts, so delivery is not withheld on a half-settled order.
func (o *Order) Completed() bool {
	if o.Status == orderStatusCompleted {
		return true
	}
	for _, pu := range o.PurchaseUnits {
		if pu.Payments == nil {
			continue
		}
		for _, capture := range pu.Payments.Captures {
			if capture.Status == orderStatusCompleted {
				return true
			}
		}
	}
	return false
}

// CustomID returns the correlation token recorded on the first purchase
// unit at checkout time.
func (o *Order) CustomID() string {
	if len(o.PurchaseUnits) == 0 {
		return ""
	}
	return o.PurchaseUnits[0].CustomID
}

type PayPalService struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
}

func NewPayPalService(baseURL, clientID, clientSecret string) *PayPalService {
	return &PayPalService{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// GetAccessToken performs the client-credentials exchange. A response
// without an access token means the configured credentials were rejected.
func (s *PayPalService) GetAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating PayPal auth request: %w", err)
	}
	req.SetBasicAuth(s.ClientID, s.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing PayPal auth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading PayPal auth response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("PayPal token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var result tokenResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing PayPal auth response: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("access token not found in PayPal response")
	}
	return result.AccessToken, nil
}

// GetOrder fetches the order resource by ID using bearer auth.
func (s *PayPalService) GetOrder(ctx context.Context, orderID, accessToken string) (*Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v2/checkout/orders/%s", s.BaseURL, orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("creating PayPal order request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing PayPal order request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("PayPal order endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decoding PayPal order %s: %w", orderID, err)
	}
	if len(order.PurchaseUnits) == 0 {
		return nil, fmt.Errorf("PayPal order %s has no purchase units", orderID)
	}
	return &order, nil
}
