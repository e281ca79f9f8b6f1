package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/scmc/club-backend/internal/domain/providers"
	apperrors "github.com/scmc/club-backend/pkg/errors"
)

// StripeGateway implements PaymentGateway against the Stripe REST API
type StripeGateway struct {
	secretKey string
	client    *http.Client
	baseURL   string
}

// NewStripeGateway creates a new Stripe payment gateway
func NewStripeGateway(secretKey, baseURL string) providers.PaymentGateway {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeGateway{
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
	}
}

// CreateIntent creates a PaymentIntent and returns its client secret.
// Amount is in the smallest currency unit (cents for usd).
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Add("payment_method_types[]", "card")

	endpoint := fmt.Sprintf("%s/v1/payment_intents", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperrors.NewExternalError("failed to build payment intent request", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.secretKey))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", apperrors.NewExternalError("payment intent request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return "", apperrors.NewExternalError(
			fmt.Sprintf("stripe api error: status %d: %s", resp.StatusCode, apiErr.Error.Message), nil)
	}

	var result struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperrors.NewExternalError("failed to decode payment intent response", err)
	}
	if result.ClientSecret == "" {
		return "", apperrors.NewExternalError("payment intent response missing client secret", nil)
	}

	return result.ClientSecret, nil
}
