package stripe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/coursehub/coursehub-backend/internal/config"
	"github.com/coursehub/coursehub-backend/internal/domain/processor"
)

const defaultTimeout = 15 * time.Second

// Client implements processor.Client on top of the Stripe API. The API key
// lives on the injected stripe client rather than the package-level
// stripe.Key, so two Clients with different credentials can coexist.
type Client struct {
	api    *client.API
	logger *zap.Logger
}

func NewClient(cfg config.StripeConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, stripe.NewBackends(&http.Client{Timeout: timeout}))

	return &Client{
		api:    api,
		logger: logger,
	}
}

// MinorUnits converts a major-unit decimal amount to the processor's
// minor-unit integer representation. Sub-unit fractions are truncated
// toward zero, so 19.99 becomes 1999 and 0.005 becomes 0.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

func (c *Client) CreateProduct(ctx context.Context, name, description string) (string, error) {
	params := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(name),
	}
	if description != "" {
		params.Description = stripe.String(description)
	}

	prod, err := c.api.Products.New(params)
	if err != nil {
		return "", c.wrap("create product", err)
	}

	c.logger.Debug("Stripe product created", zap.String("product_id", prod.ID))
	return prod.ID, nil
}

func (c *Client) CreatePrice(ctx context.Context, amount decimal.Decimal, productID, currency string) (string, error) {
	params := &stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		UnitAmount: stripe.Int64(MinorUnits(amount)),
		Currency:   stripe.String(currency),
		Product:    stripe.String(productID),
	}

	price, err := c.api.Prices.New(params)
	if err != nil {
		return "", c.wrap("create price", err)
	}

	c.logger.Debug("Stripe price created",
		zap.String("price_id", price.ID),
		zap.String("product_id", productID))
	return price.ID, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req *processor.CheckoutSessionRequest) (*processor.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, c.wrap("create checkout session", err)
	}

	c.logger.Debug("Stripe checkout session created", zap.String("session_id", s.ID))
	return &processor.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*processor.SessionStatus, error) {
	s, err := c.api.CheckoutSessions.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, c.wrap("retrieve checkout session", err)
	}

	status := &processor.SessionStatus{
		PaymentStatus: string(s.PaymentStatus),
	}
	if s.PaymentIntent != nil {
		status.PaymentIntentID = s.PaymentIntent.ID
	}

	return status, nil
}

// wrap converts a stripe-go error into a processor.Error, keeping Stripe's
// human-readable message when one is present.
func (c *Client) wrap(op string, err error) error {
	msg := err.Error()
	var sErr *stripe.Error
	if errors.As(err, &sErr) && sErr.Msg != "" {
		msg = sErr.Msg
	}

	c.logger.Error("Stripe call failed", zap.String("op", op), zap.Error(err))

	return &processor.Error{Op: op, Message: msg, Err: err}
}
