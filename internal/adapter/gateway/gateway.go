// Package gateway talks to hosted checkout providers. Each adapter creates
// checkout sessions that carry the local payment id as correlation token and
// verifies the provider's signed callbacks before decoding them.
package gateway

import (
	"context"
	"math"
	"net/http"
	"net/url"

	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// Metadata keys attached to every checkout session.
const (
	MetadataPaymentID = "paymentId"
	MetadataProjectID = "projectId"
	MetadataBidID     = "bidId"
)

// CheckoutRequest describes a checkout intent for one payment.
type CheckoutRequest struct {
	PaymentID   string
	ProjectID   string
	BidID       string
	Title       string
	Description string
	Amount      float64
	Currency    string
	SuccessURL  string
	CancelURL   string
}

// Metadata returns the correlation metadata sent to the provider.
func (r CheckoutRequest) Metadata() map[string]string {
	return map[string]string{
		MetadataPaymentID: r.PaymentID,
		MetadataProjectID: r.ProjectID,
		MetadataBidID:     r.BidID,
	}
}

// CheckoutSession is the provider's answer to a checkout intent.
type CheckoutSession struct {
	ID  string
	URL string
}

// Callback is a raw provider callback as received over HTTP.
type Callback struct {
	Body   []byte
	Header http.Header
	Query  url.Values
}

// Gateway is implemented by every checkout provider adapter.
type Gateway interface {
	Name() string
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// ParseEvent verifies the callback and decodes it. Authenticity failures
	// wrap errors.ErrInvalidSignature.
	ParseEvent(ctx context.Context, cb Callback) (*model.GatewayEvent, error)
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
