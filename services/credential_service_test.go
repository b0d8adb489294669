package services

import (
	"testing"

	"github.com/Abdelrazek97/form-app/database/dbtest"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterAndVerify(t *testing.T) {
	svc := NewCredentialService(dbtest.New(t), zap.NewNop())

	user, err := svc.Register(ctx, "  mona ", "password123", "Mona Ali")
	require.NoError(t, err)
	assert.Equal(t, "mona", user.Username)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.Password)

	got, err := svc.Verify(ctx, "mona", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestVerifyDoesNotRevealWhichPartFailed(t *testing.T) {
	svc := NewCredentialService(dbtest.New(t), zap.NewNop())
	_, err := svc.Register(ctx, "mona", "password123", "")
	require.NoError(t, err)

	_, errWrongPassword := svc.Verify(ctx, "mona", "wrong-password")
	_, errUnknownUser := svc.Verify(ctx, "nobody", "password123")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewCredentialService(dbtest.New(t), zap.NewNop())

	_, err := svc.Register(ctx, "", "password123", "")
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, KindMissingFields, verr.Kind)

	_, err = svc.Register(ctx, "sami", "short", "")
	verr, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidPassword, verr.Kind)
}

func TestRegisteringAdminAgainIsRejected(t *testing.T) {
	db := dbtest.New(t)
	svc := NewCredentialService(db, zap.NewNop())

	created, err := svc.ProvisionAdmin(ctx, "admin", "admin-secret-1", "Administrator")
	require.NoError(t, err)
	require.True(t, created)

	var before model.User
	require.NoError(t, db.Where("username = ?", "admin").First(&before).Error)

	_, err = svc.Register(ctx, "admin", "another-password", "Impostor")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	count, err := svc.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var after model.User
	require.NoError(t, db.Where("username = ?", "admin").First(&after).Error)
	assert.Equal(t, before.Password, after.Password)
	assert.Equal(t, model.RoleAdmin, after.Role)

	_, err = svc.Verify(ctx, "admin", "admin-secret-1")
	assert.NoError(t, err)
}

func TestProvisionAdminIsIdempotent(t *testing.T) {
	svc := NewCredentialService(dbtest.New(t), zap.NewNop())

	created, err := svc.ProvisionAdmin(ctx, "admin", "admin-secret-1", "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.ProvisionAdmin(ctx, "root", "root-secret-1", "")
	require.NoError(t, err)
	assert.False(t, created)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
}

func TestResetPassword(t *testing.T) {
	svc := NewCredentialService(dbtest.New(t), zap.NewNop())
	_, err := svc.ProvisionAdmin(ctx, "admin", "admin-secret-1", "")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, "admin", "new-secret-22"))
	_, err = svc.Verify(ctx, "admin", "new-secret-22")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "ghost", "whatever-123"), ErrNotFound)
}
