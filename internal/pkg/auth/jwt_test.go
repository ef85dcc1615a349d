package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapgram/photo-service/internal/domain"
)

func TestGenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	user := UserRef{ID: domain.NewID(), Name: "alice", ProfileImage: "alice.png"}

	token, err := manager.Generate(user)
	require.NoError(t, err)

	got, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).Generate(UserRef{ID: domain.NewID(), Name: "alice"})
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", -time.Minute)

	token, err := manager.Generate(UserRef{ID: domain.NewID(), Name: "alice"})
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewJWTManager("secret", time.Hour).Verify("not.a.token")
	assert.Error(t, err)
}
