package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_RollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewCompanyRepository(setup.DB)
	ctx := context.Background()

	boom := errors.New("boom")
	err := postgresql.WithTransaction(ctx, setup.DB, func(txCtx context.Context) error {
		if _, err := repo.Create(txCtx, company.Company{Name: "Acme"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWithTransaction_Commits(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewCompanyRepository(setup.DB)
	ctx := context.Background()

	err := postgresql.WithTransaction(ctx, setup.DB, func(txCtx context.Context) error {
		_, err := repo.Create(txCtx, company.Company{Name: "Acme"})
		return err
	})
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
