package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		DescriptionRepo:  newPgxDescriptionRepository(dbPool),
		ResetTokenRepo:   newPgxResetTokenRepository(dbPool),
		ConversationRepo: newPgxConversationRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
	}
}
