package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTxManager runs fn without a database and then reports the next scripted error.
type scriptedTxManager struct {
	errs  []error
	calls int
}

func (m *scriptedTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.calls++
	if err := fn(nil); err != nil {
		return err
	}
	if len(m.errs) == 0 {
		return nil
	}
	err := m.errs[0]
	m.errs = m.errs[1:]

	return err
}

func TestExecuteForResult_RetriesOpenRowConflict(t *testing.T) {
	tests := []struct {
		name     string
		conflict error
	}{
		{"open order", repository.ErrOpenOrderExists},
		{"open line", errors.Wrap(repository.ErrOpenLineExists, "failed to create line")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txManager := &scriptedTxManager{errs: []error{tt.conflict}}
			runs := 0

			result, err := executeForResult(context.Background(), txManager, func(repository.RepositoryFactory) (*usecase.Result, error) {
				runs++

				return usecase.Success(msgAddedToCart, usecase.RedirectBack), nil
			})
			require.NoError(t, err)
			assert.Equal(t, 2, txManager.calls)
			assert.Equal(t, 2, runs)
			assert.Equal(t, msgAddedToCart, result.Message)
		})
	}
}

func TestExecuteForResult_GivesUpAfterMaxRetries(t *testing.T) {
	txManager := &scriptedTxManager{}
	runs := 0

	result, err := executeForResult(context.Background(), txManager, func(repository.RepositoryFactory) (*usecase.Result, error) {
		runs++

		return nil, repository.ErrOpenOrderExists
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, repository.ErrOpenOrderExists))
	assert.Equal(t, maxConflictRetries+1, runs)
	assert.Equal(t, maxConflictRetries+1, txManager.calls)
}

func TestExecuteForResult_OtherErrorsAreNotRetried(t *testing.T) {
	txManager := &scriptedTxManager{}
	boom := errors.New("boom")

	_, err := executeForResult(context.Background(), txManager, func(repository.RepositoryFactory) (*usecase.Result, error) {
		return nil, boom
	})
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 1, txManager.calls)
}

func TestExecuteForResult_AbortReturnsResult(t *testing.T) {
	txManager := &scriptedTxManager{}

	result, err := executeForResult(context.Background(), txManager, func(repository.RepositoryFactory) (*usecase.Result, error) {
		return nil, abort(usecase.Info(msgNoActiveOrder, usecase.RouteOrderSummary))
	})
	require.NoError(t, err)
	assert.Equal(t, usecase.StatusInfo, result.Status)
	assert.Equal(t, usecase.RouteOrderSummary, result.Redirect)
	assert.Equal(t, 1, txManager.calls)
}
