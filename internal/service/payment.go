package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopcore/shopcore/internal/domain"
)

// PaymentGateway is the external payment collaborator. A charge either
// succeeds or the whole checkout is treated as failed; a timeout is a
// failed payment.
type PaymentGateway interface {
	Charge(ctx context.Context, cardToken string, amount float64) error
}

type chargeRequest struct {
	CardToken string  `json:"card_token"`
	Amount    float64 `json:"amount"`
}

// httpGateway charges through a remote gateway over HTTP with a bounded
// timeout.
type httpGateway struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPGateway creates a gateway client for the given base URL.
func NewHTTPGateway(url string, timeout time.Duration) PaymentGateway {
	return &httpGateway{
		url:     url,
		timeout: timeout,
		client:  &http.Client{},
	}
}

func (g *httpGateway) Charge(ctx context.Context, cardToken string, amount float64) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := json.Marshal(chargeRequest{CardToken: cardToken, Amount: amount})
	if err != nil {
		return fmt.Errorf("failed to encode charge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/charge", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: gateway unreachable", domain.ErrPaymentFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: gateway declined the charge", domain.ErrPaymentFailed)
	}

	return nil
}

// sandboxGateway approves every charge. It is used when no gateway URL
// is configured, which keeps local development self-contained.
type sandboxGateway struct{}

// NewSandboxGateway creates a gateway that approves all charges.
func NewSandboxGateway() PaymentGateway {
	return sandboxGateway{}
}

func (sandboxGateway) Charge(_ context.Context, cardToken string, amount float64) error {
	if cardToken == "" {
		return fmt.Errorf("%w: missing card token", domain.ErrPaymentFailed)
	}
	if amount < 0 {
		return fmt.Errorf("%w: negative amount", domain.ErrPaymentFailed)
	}
	return nil
}
