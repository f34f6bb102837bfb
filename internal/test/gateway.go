package test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/polkiloo/gigmarket/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
)

// StubSignatureHeader carries the HMAC of callbacks accepted by GatewayStub.
const StubSignatureHeader = "X-Stub-Signature"

// StubCompletedType marks a completed checkout in stub callbacks.
const StubCompletedType = "checkout.session.completed"

// StubEvent is the JSON body of a GatewayStub callback.
type StubEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	PaymentID string `json:"paymentId"`
	SessionID string `json:"sessionId"`
}

// GatewayStub is an offline checkout provider. Callbacks are authenticated
// with HMAC-SHA256 over the body using Secret.
type GatewayStub struct {
	Secret   string
	NameVal  string
	CreateFn func(context.Context, gateway.CheckoutRequest) (*gateway.CheckoutSession, error)
	ParseFn  func(context.Context, gateway.Callback) (*model.GatewayEvent, error)

	mu       sync.Mutex
	requests []gateway.CheckoutRequest
}

// Name returns the provider identifier.
func (g *GatewayStub) Name() string {
	if g.NameVal != "" {
		return g.NameVal
	}
	return "stub"
}

// CreateCheckout records the request and returns a session derived from the payment id.
func (g *GatewayStub) CreateCheckout(ctx context.Context, req gateway.CheckoutRequest) (*gateway.CheckoutSession, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()
	if g.CreateFn != nil {
		return g.CreateFn(ctx, req)
	}
	return &gateway.CheckoutSession{ID: "cs_" + req.PaymentID, URL: "https://checkout.test/" + req.PaymentID}, nil
}

// Requests returns the checkout requests received so far.
func (g *GatewayStub) Requests() []gateway.CheckoutRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]gateway.CheckoutRequest(nil), g.requests...)
}

// ParseEvent verifies the stub signature and decodes the body.
func (g *GatewayStub) ParseEvent(ctx context.Context, cb gateway.Callback) (*model.GatewayEvent, error) {
	if g.ParseFn != nil {
		return g.ParseFn(ctx, cb)
	}
	expected := g.sign(cb.Body)
	if !hmac.Equal([]byte(expected), []byte(cb.Header.Get(StubSignatureHeader))) {
		return nil, fmt.Errorf("%w: stub signature mismatch", domainErrors.ErrInvalidSignature)
	}
	var ev StubEvent
	if err := json.Unmarshal(cb.Body, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err)
	}
	event := &model.GatewayEvent{ID: ev.ID, Type: ev.Type, PaymentID: ev.PaymentID, SessionID: ev.SessionID}
	if ev.Type == StubCompletedType {
		event.Kind = model.EventCheckoutCompleted
	}
	return event, nil
}

// Callback builds a correctly signed callback for ev.
func (g *GatewayStub) Callback(ev StubEvent) gateway.Callback {
	body, _ := json.Marshal(ev)
	header := http.Header{}
	header.Set(StubSignatureHeader, g.sign(body))
	return gateway.Callback{Body: body, Header: header}
}

func (g *GatewayStub) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(g.Secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// LedgerStub is an in-memory event ledger with overridable behaviour.
type LedgerStub struct {
	SeenFn func(context.Context, string) (bool, error)
	MarkFn func(context.Context, string) error

	mu    sync.Mutex
	marks map[string]int
}

// Seen reports whether the event was marked.
func (l *LedgerStub) Seen(ctx context.Context, eventID string) (bool, error) {
	if l.SeenFn != nil {
		return l.SeenFn(ctx, eventID)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.marks[eventID] > 0, nil
}

// Mark records the event.
func (l *LedgerStub) Mark(ctx context.Context, eventID string) error {
	if l.MarkFn != nil {
		return l.MarkFn(ctx, eventID)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.marks == nil {
		l.marks = make(map[string]int)
	}
	l.marks[eventID]++
	return nil
}

// Marks returns how many times eventID was marked.
func (l *LedgerStub) Marks(eventID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.marks[eventID]
}
