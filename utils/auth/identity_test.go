package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	anon := Identity{}
	user := Identity{UserID: 2, Username: "sara", Role: "user"}
	admin := Identity{UserID: 1, Username: "admin", Role: "admin"}

	assert.ErrorIs(t, Guard(anon, LevelAuthenticated), ErrAnonymous)
	assert.ErrorIs(t, Guard(anon, LevelAdmin), ErrAnonymous)
	assert.NoError(t, Guard(user, LevelAuthenticated))
	assert.ErrorIs(t, Guard(user, LevelAdmin), ErrForbidden)
	assert.NoError(t, Guard(admin, LevelAdmin))
}
