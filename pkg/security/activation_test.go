package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingAccount() AccountState {
	return AccountState{
		UserID:       42,
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		IsActive:     false,
	}
}

func TestActivationTokenRoundTrip(t *testing.T) {
	tokens := NewActivationTokens("secret", time.Hour)
	state := pendingAccount()

	token := tokens.Generate(state)
	assert.True(t, tokens.Verify(state, token))
}

func TestTokenInvalidOnceActivated(t *testing.T) {
	tokens := NewActivationTokens("secret", time.Hour)
	state := pendingAccount()

	token := tokens.Generate(state)
	require.True(t, tokens.Verify(state, token))

	// Flipping is_active changes the fingerprint, the same link must
	// never work twice
	state.IsActive = true
	assert.False(t, tokens.Verify(state, token))
}

func TestTokenInvalidAfterCredentialChange(t *testing.T) {
	tokens := NewActivationTokens("secret", time.Hour)
	state := pendingAccount()
	token := tokens.Generate(state)

	changed := state
	changed.PasswordHash = "$argon2id$v=19$m=65536,t=3,p=2$b3RoZXI$b3RoZXI"
	assert.False(t, tokens.Verify(changed, token))

	changed = state
	changed.Email = "other@example.com"
	assert.False(t, tokens.Verify(changed, token))
}

func TestTokenBoundToUser(t *testing.T) {
	tokens := NewActivationTokens("secret", time.Hour)
	state := pendingAccount()
	token := tokens.Generate(state)

	other := state
	other.UserID = 43
	assert.False(t, tokens.Verify(other, token))
}

func TestTokenTampering(t *testing.T) {
	tokens := NewActivationTokens("secret", time.Hour)
	state := pendingAccount()
	token := tokens.Generate(state)

	assert.False(t, tokens.Verify(state, token+"0"))
	assert.False(t, tokens.Verify(state, "garbage"))
	assert.False(t, tokens.Verify(state, ""))
}

func TestTokenExpiry(t *testing.T) {
	tokens := NewActivationTokens("secret", -time.Second)
	state := pendingAccount()

	// maxAge already elapsed at issue time
	token := tokens.Generate(state)
	assert.False(t, tokens.Verify(state, token))
}

func TestTokenSecretMatters(t *testing.T) {
	state := pendingAccount()
	token := NewActivationTokens("secret", time.Hour).Generate(state)

	assert.False(t, NewActivationTokens("other", time.Hour).Verify(state, token))
}
