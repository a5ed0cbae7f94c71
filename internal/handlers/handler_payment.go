package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
)

// paymentHandler handles subscription plans and Stripe checkout.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(services *portssvc.ServiceContainer) *paymentHandler {
	return &paymentHandler{paymentService: services.Payment}
}

// registerPaymentRoutes sets up the /api/payments route group. The webhook
// is called by Stripe and authenticates via its signature header instead of
// a bearer token.
func registerPaymentRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newPaymentHandler(services)

	payments := r.Group("/api/payments")
	{
		payments.GET("/plans", h.listPlans)
		payments.POST("/create-checkout-session", middleware.AuthMiddleware(cfg.JWTSecret), h.createCheckoutSession)
		payments.POST("/webhook", h.webhook)
	}
}

// listPlans godoc
// @Summary List subscription plans
// @Tags payments
// @Produce json
// @Success 200 {array} dto.PaymentPlan
// @Router /api/payments/plans [get]
func (h *paymentHandler) listPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.paymentService.Plans())
}

// createCheckoutSession godoc
// @Summary Start a subscription checkout
// @Description Creates a Stripe Checkout session for the requested plan and returns its URL.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.CreateCheckoutSessionRequest true "Plan to subscribe to"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} ErrorResponse "Unknown plan type"
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Payments not configured"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/payments/create-checkout-session [post]
func (h *paymentHandler) createCheckoutSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	url, err := h.paymentService.CreateCheckoutSession(c.Request.Context(), userID, req.PlanType)
	if err != nil {
		respondError(c, logger, err, "Failed to create checkout session")
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutSessionResponse{URL: url})
}

// webhook godoc
// @Summary Stripe webhook receiver
// @Description Verifies the Stripe signature and applies completed checkouts to user roles.
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid signature or payload"
// @Failure 500 {object} ErrorResponse
// @Router /api/payments/webhook [post]
func (h *paymentHandler) webhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read webhook payload"})
		return
	}

	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, logger, err, "Failed to process webhook")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "ok"})
}
