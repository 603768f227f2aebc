package pos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

func TestSessionStore_OpenGetClose(t *testing.T) {
	store := NewSessionStore(200 * time.Millisecond)

	session := store.Open(7, models.RegisterOnline)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, uint(7), session.UserID)
	assert.Equal(t, models.RegisterOnline, session.RegisterKind)
	assert.True(t, session.Cart.Empty())
	assert.NotNil(t, session.Scanner)

	got, ok := store.Get(session.ID)
	require.True(t, ok)
	assert.Same(t, session, got)

	store.Close(session.ID)
	_, ok = store.Get(session.ID)
	assert.False(t, ok)
}

func TestSessionStore_DefaultsToStoreRegister(t *testing.T) {
	store := NewSessionStore(200 * time.Millisecond)

	session := store.Open(7, "")
	assert.Equal(t, models.RegisterStore, session.RegisterKind)
}

func TestSession_CheckoutGuard(t *testing.T) {
	session := NewSessionStore(200 * time.Millisecond).Open(7, models.RegisterStore)

	require.NoError(t, session.BeginCheckout())
	assert.ErrorIs(t, session.BeginCheckout(), ErrCheckoutInProgress)

	session.EndCheckout()
	assert.NoError(t, session.BeginCheckout())
}
