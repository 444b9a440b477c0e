package sharetoken_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "incomeverify/sharetoken"
	"incomeverify/sharetoken/sharestore/memory"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestManager_IssueThenValidateGrantsAccess(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mgr := NewManager(memory.New(), fixedClock(now))

	token, err := mgr.Issue(context.Background(), "report-1", "borrower-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "report-1", token.ReportID)

	granted, err := mgr.Validate(context.Background(), token.Token, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, granted)

	fetched, err := mgr.Get(context.Background(), token.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), fetched.AccessCount)
	assert.Equal(t, "10.0.0.1", fetched.LastAccessedIP)
}

func TestManager_ValidateUnknownTokenDeniesWithoutError(t *testing.T) {
	mgr := NewManager(memory.New(), fixedClock(time.Now()))

	granted, err := mgr.Validate(context.Background(), "does-not-exist", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestManager_ValidateAfterExpiryDenies(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := memory.New()
	mgr := NewManager(store, fixedClock(issuedAt))

	token, err := mgr.Issue(context.Background(), "report-1", "borrower-1")
	require.NoError(t, err)

	afterExpiry := issuedAt.Add(31 * 24 * time.Hour)
	lateMgr := NewManager(store, fixedClock(afterExpiry))

	granted, err := lateMgr.Validate(context.Background(), token.Token, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestManager_RevokeIsIdempotent(t *testing.T) {
	mgr := NewManager(memory.New(), fixedClock(time.Now()))

	token, err := mgr.Issue(context.Background(), "report-1", "borrower-1")
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(context.Background(), token.Token))
	require.NoError(t, mgr.Revoke(context.Background(), token.Token))

	granted, err := mgr.Validate(context.Background(), token.Token, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestManager_RevokeUnknownTokenIsNotAnError(t *testing.T) {
	mgr := NewManager(memory.New(), fixedClock(time.Now()))
	assert.NoError(t, mgr.Revoke(context.Background(), "never-issued"))
}

func TestManager_IssuedTokensAreUnique(t *testing.T) {
	mgr := NewManager(memory.New(), fixedClock(time.Now()))

	a, err := mgr.Issue(context.Background(), "report-1", "borrower-1")
	require.NoError(t, err)
	b, err := mgr.Issue(context.Background(), "report-2", "borrower-1")
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
}
