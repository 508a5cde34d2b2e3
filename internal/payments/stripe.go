package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// StripeGateway confirms Stripe PaymentIntents. The payment key is the
// PaymentIntent ID and the order ID is expected in its metadata.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(key string, backends *stripe.Backends) *StripeGateway {
	api := &client.API{}
	api.Init(key, backends)

	return &StripeGateway{api: api}
}

func (g *StripeGateway) Confirm(ctx context.Context, req ConfirmRequest) (*Confirmation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	getParams := &stripe.PaymentIntentParams{}
	getParams.Context = ctx
	getParams.AddExpand("payment_method")

	pi, err := g.api.PaymentIntents.Get(req.PaymentKey, getParams)
	if err != nil {
		return nil, stripeError(err)
	}

	if orderID, ok := pi.Metadata["order_id"]; ok && orderID != req.OrderID {
		return nil, ErrOrderNotFound
	}
	if pi.Amount != req.Amount {
		return nil, ErrAmountMismatch
	}

	if pi.Status == stripe.PaymentIntentStatusRequiresConfirmation {
		confirmParams := &stripe.PaymentIntentConfirmParams{}
		confirmParams.Context = ctx
		confirmParams.AddExpand("payment_method")

		pi, err = g.api.PaymentIntents.Confirm(req.PaymentKey, confirmParams)
		if err != nil {
			return nil, stripeError(err)
		}
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, &GatewayError{
			Status:  http.StatusBadRequest,
			Code:    string(pi.Status),
			Message: "payment intent is not succeeded",
		}
	}

	method := ""
	if pi.PaymentMethod != nil {
		method = strings.ToUpper(string(pi.PaymentMethod.Type))
	}

	return &Confirmation{
		PaymentKey: pi.ID,
		OrderID:    req.OrderID,
		Amount:     pi.Amount,
		Method:     method,
		Status:     "DONE",
		ApprovedAt: time.Unix(pi.Created, 0).UTC().Format(time.RFC3339),
		Type:       "NORMAL",
		Currency:   strings.ToUpper(string(pi.Currency)),
		Platform:   "stripe",
	}, nil
}

func stripeError(err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) {
		return &GatewayError{Status: serr.HTTPStatusCode, Code: string(serr.Code), Message: serr.Msg}
	}
	return fmt.Errorf("calling stripe: %w", err)
}
