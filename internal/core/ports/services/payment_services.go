package services

import (
	"context"

	"github.com/hnv-dev/product_desc_app/internal/dto"
)

// PaymentSvcFacade defines subscription checkout and fulfillment operations.
type PaymentSvcFacade interface {
	// Plans returns the purchasable subscription plans.
	Plans() []dto.PaymentPlan

	// CreateCheckoutSession opens a hosted checkout session for the user
	// and plan, returning the redirect URL.
	CreateCheckoutSession(ctx context.Context, userID string, planType string) (string, error)

	// HandleWebhook verifies a provider webhook payload and, on a completed
	// checkout, upgrades the purchasing user's role.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}
