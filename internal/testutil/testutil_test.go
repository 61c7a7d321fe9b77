package testutil

import (
	"context"
	"errors"
	"testing"

	"alxtravel/internal/models"
	"alxtravel/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreStub_DeleteKeepsAdmins(t *testing.T) {
	s := NewStoreStub()
	s.AddUser(models.User{Username: "admin", IsAdmin: true})
	s.AddUser(models.User{Username: "host1"})

	n, err := s.DeleteAll(context.Background(), &models.User{}, "is_admin = ?", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, s.Users(), 1)
	assert.Equal(t, "admin", s.Users()[0].Username)
}

func TestStoreStub_TransactionRollback(t *testing.T) {
	s := NewStoreStub()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &models.Listing{Title: "kept"}))

	err := s.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.DeleteAll(ctx, &models.Listing{}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	count, err := s.Count(ctx, &models.Listing{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "rollback", s.Ops[len(s.Ops)-2].Name)
}

func TestStoreStub_UnsupportedModel(t *testing.T) {
	s := NewStoreStub()
	assert.Error(t, s.Create(context.Background(), &struct{}{}))
}
