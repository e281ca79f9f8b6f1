package providers

import (
	"context"
)

// PaymentGateway defines the interface for the external payment
// processor. The gateway only creates charge intents; the success
// notification arrives out-of-band from the client and is what triggers
// recording a payment. The gateway never moves money on our behalf.
type PaymentGateway interface {
	// CreateIntent creates a charge intent for the given amount (in the
	// smallest currency unit) and returns the client confirmation secret.
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}
