package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository access.
//
// Do runs fn inside a transaction boundary. Repositories obtained from the
// UnitOfWork passed to fn share that boundary: if fn returns an error nothing
// it wrote is kept.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	MovementRepository() (MovementRepository, error)
}
