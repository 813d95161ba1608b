// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// maxConflictRetries bounds how often a transaction is replayed after losing
// a race on one of the "at most one open row" unique indexes.
const maxConflictRetries = 2

// abortError rolls a transaction back while still reporting a user-facing result.
type abortError struct {
	result *usecase.Result
}

func (e *abortError) Error() string {
	return "aborted: " + e.result.Message
}

func abort(result *usecase.Result) error {
	return &abortError{result: result}
}

// executeForResult runs fn in a transaction. A result passed to abort is
// returned after the rollback instead of an error.
func executeForResult(
	ctx context.Context,
	txManager repository.TransactionManager,
	fn func(repository.RepositoryFactory) (*usecase.Result, error),
) (*usecase.Result, error) {
	var result *usecase.Result
	var err error

	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err = txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
			var fnErr error
			result, fnErr = fn(factory)

			return fnErr
		})
		if !isOpenRowConflict(err) {
			break
		}
	}

	if aborted, ok := errors.Find[*abortError](err); ok {
		return aborted.result, nil
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

func isOpenRowConflict(err error) bool {
	return errors.Is(err, repository.ErrOpenOrderExists) || errors.Is(err, repository.ErrOpenLineExists)
}
