package repositories

// RepositoryProvider bundles every repository implementation for one
// backing store. Exactly one provider (postgres or mongo) is constructed
// per deployment.
type RepositoryProvider struct {
	UserRepo         UserRepository
	DescriptionRepo  DescriptionRepository
	ResetTokenRepo   ResetTokenRepository
	ConversationRepo ConversationRepository
	ReportingRepo    ReportingRepository
}
