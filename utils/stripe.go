package utils

import (
	"fmt"
	"math"
	"os"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

// CheckoutLine is one purchasable line of a hosted checkout session.
type CheckoutLine struct {
	Name        string
	Description string
	UnitPrice   float64
	Quantity    int
}

// StripeGateway creates hosted Checkout Sessions correlated back to local
// orders through {orderId, userId} metadata.
type StripeGateway struct{}

// NewStripeGateway configures the Stripe client from STRIPE_SECRET_KEY.
func NewStripeGateway() *StripeGateway {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &StripeGateway{}
}

// CreateCheckoutSession returns the hosted payment page URL for an order.
// The correlation metadata is set on the session and on its payment intent,
// so failure events carry the order id too.
func (g *StripeGateway) CreateCheckoutSession(origin, orderID, userID string, lines []CheckoutLine) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		description := line.Description
		if description == "" {
			description = "Product description"
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(line.Name),
					Description: stripe.String(description),
				},
				UnitAmount: stripe.Int64(int64(math.Floor(line.UnitPrice * 100))),
			},
			Quantity: stripe.Int64(int64(line.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(fmt.Sprintf("%s/loader?next=my-orders&orderId=%s", origin, orderID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/cart", origin)),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"orderId": orderID,
				"userId":  userID,
			},
		},
	}
	params.AddMetadata("orderId", orderID)
	params.AddMetadata("userId", userID)

	s, err := session.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}
