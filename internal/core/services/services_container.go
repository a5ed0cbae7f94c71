package services

import (
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
)

// Collaborators bundles the external-facing adapters the services depend on.
type Collaborators struct {
	Generator  portssvc.Generator
	MailSender portssvc.MailSender
	ImageStore portssvc.ImageStore
	Speech     portssvc.SpeechSynthesizer
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	container.User = NewUserService(repos.UserRepo, repos.ResetTokenRepo, collab.MailSender, cfg.ResetCodeExpiryDuration)
	container.Description = NewDescriptionService(repos.DescriptionRepo, repos.ConversationRepo, collab.Generator, collab.ImageStore)
	container.Conversation = NewConversationService(repos.ConversationRepo, repos.DescriptionRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Payment = NewPaymentService(PaymentConfig{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		PricePlusID:   cfg.StripePricePlusID,
		PriceProID:    cfg.StripePriceProID,
		FrontendURL:   cfg.FrontendBaseURL,
	}, repos.UserRepo)
	container.Speech = collab.Speech
	container.Images = collab.ImageStore

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade         = (*UserService)(nil)
	_ portssvc.TokenSvcFacade        = (*TokenService)(nil)
	_ portssvc.DescriptionSvcFacade  = (*DescriptionService)(nil)
	_ portssvc.ConversationSvcFacade = (*ConversationService)(nil)
	_ portssvc.ReportingSvcFacade    = (*ReportingService)(nil)
	_ portssvc.PaymentSvcFacade      = (*PaymentService)(nil)
)
