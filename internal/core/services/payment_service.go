package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
)

// PaymentConfig carries the Stripe wiring for the payment service.
type PaymentConfig struct {
	SecretKey     string
	WebhookSecret string
	PricePlusID   string
	PriceProID    string
	FrontendURL   string
}

// PaymentService implements subscription checkout via Stripe hosted pages
// and fulfills completed checkouts by upgrading the purchaser's role.
type PaymentService struct {
	cfg      PaymentConfig
	userRepo portsrepo.UserRepository
}

func NewPaymentService(cfg PaymentConfig, userRepo portsrepo.UserRepository) *PaymentService {
	stripe.Key = cfg.SecretKey
	return &PaymentService{cfg: cfg, userRepo: userRepo}
}

func (s *PaymentService) Plans() []dto.PaymentPlan {
	return []dto.PaymentPlan{
		{PlanType: "plus", Name: "Plus", Amount: decimal.NewFromFloat(4.99), Currency: "usd"},
		{PlanType: "pro", Name: "Pro", Amount: decimal.NewFromFloat(9.99), Currency: "usd"},
	}
}

func (s *PaymentService) priceID(planType string) (string, error) {
	switch planType {
	case "plus":
		return s.cfg.PricePlusID, nil
	case "pro":
		return s.cfg.PriceProID, nil
	default:
		return "", apperrors.NewBadRequestError("unknown plan type")
	}
}

// CreateCheckoutSession opens a hosted checkout session for the user and
// plan. The user ID and plan ride along as session metadata so the webhook
// can fulfill the purchase.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, userID string, planType string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	priceID, err := s.priceID(planType)
	if err != nil {
		return "", err
	}
	if priceID == "" {
		return "", apperrors.NewAppError(503, "payments are not configured", nil)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:        stripe.String(s.cfg.FrontendURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(s.cfg.FrontendURL + "/payment/cancel"),
		ClientReferenceID: stripe.String(userID),
	}
	params.AddMetadata("plan_type", planType)
	params.AddMetadata("user_id", userID)

	sess, err := session.New(params)
	if err != nil {
		logger.Error("Failed to create checkout session", slog.String("error", err.Error()), slog.String("plan_type", planType))
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	logger.Info("Checkout session created", slog.String("session_id", sess.ID), slog.String("plan_type", planType))
	return sess.URL, nil
}

// HandleWebhook verifies the event signature and upgrades the purchasing
// user's role on checkout.session.completed. Other event types are
// acknowledged and ignored.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	event, err := webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
	if err != nil {
		logger.Warn("Webhook signature verification failed", slog.String("error", err.Error()))
		return apperrors.NewBadRequestError("invalid webhook signature")
	}

	if event.Type != "checkout.session.completed" {
		logger.Debug("Ignoring webhook event", slog.String("type", string(event.Type)))
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		logger.Error("Failed to decode checkout session payload", slog.String("error", err.Error()))
		return apperrors.NewBadRequestError("malformed webhook payload")
	}

	userID := sess.ClientReferenceID
	if userID == "" {
		userID = sess.Metadata["user_id"]
	}
	planType := sess.Metadata["plan_type"]
	if userID == "" || planType == "" {
		logger.Error("Completed checkout missing fulfillment metadata", slog.String("session_id", sess.ID))
		return apperrors.NewBadRequestError("checkout session missing metadata")
	}

	role := domain.UserRole(planType)
	if !domain.ValidRole(role) || role == domain.RoleAdmin {
		logger.Error("Completed checkout carries unknown plan", slog.String("plan_type", planType))
		return apperrors.NewBadRequestError("unknown plan type")
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		logger.Error("Failed to upgrade role after checkout", slog.String("error", err.Error()), slog.String("user_id", userID))
		return err
	}

	logger.Info("Checkout fulfilled", slog.String("user_id", userID), slog.String("role", string(role)))
	return nil
}
