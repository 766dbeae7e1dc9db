package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
	"github.com/dmitrijs2005/focusflow/internal/server/repositories/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	store.Accounts[1] = models.Account{ID: 1, Username: "alice"}
	r := NewMemoryRepository(store)

	exp := time.Now().Add(time.Hour)
	require.NoError(t, r.Create(ctx, &models.Session{ID: "s1", AccountID: 1, ExpiresAt: exp}))
	assert.Error(t, r.Create(ctx, &models.Session{ID: "s1", AccountID: 1, ExpiresAt: exp}))
	assert.ErrorIs(t, r.Create(ctx, &models.Session{ID: "s2", AccountID: 7}), common.ErrorNotFound)

	got, err := r.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, r.Delete(ctx, "s1"))
	require.NoError(t, r.Delete(ctx, "s1"))

	_, err = r.Find(ctx, "s1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
