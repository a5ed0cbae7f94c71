package dto

import "github.com/shopspring/decimal"

// PaymentPlan describes one purchasable subscription tier.
type PaymentPlan struct {
	PlanType string          `json:"plan_type"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// CreateCheckoutSessionRequest selects the tier to purchase.
type CreateCheckoutSessionRequest struct {
	PlanType string `json:"plan_type" binding:"required,oneof=plus pro"`
}

// CheckoutSessionResponse carries the hosted checkout URL.
type CheckoutSessionResponse struct {
	URL string `json:"url"`
}
