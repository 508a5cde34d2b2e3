package auth

import (
	"testing"
	"time"

	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/database/databasetest"
	"ai-coding-school-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(db database.Client) *Service {
	return NewService(db, NewTokenIssuer("test-key", time.Hour), []string{"admin@example.com", " "})
}

func TestSignUpAssignsRole(t *testing.T) {
	db := &databasetest.Client{}
	db.On("GetUserByEmail", "admin@example.com").Return(model.User{}, database.ErrNotFound)
	db.On("CreateUser", mock.MatchedBy(func(u model.User) bool {
		return u.Email == "admin@example.com" && u.Role == model.RoleAdmin && u.Password != "secret123"
	})).Return(model.User{ID: "u1", Email: "admin@example.com", Role: model.RoleAdmin}, nil)

	user, err := newTestService(db).SignUp("admin@example.com", "secret123", "관리자")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	db.AssertExpectations(t)
}

func TestSignUpRejects(t *testing.T) {
	db := &databasetest.Client{}
	db.On("GetUserByEmail", "taken@example.com").Return(model.User{ID: "u1"}, nil)
	svc := newTestService(db)

	_, err := svc.SignUp("bad", "secret123", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.SignUp("new@example.com", "123", "")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.SignUp("taken@example.com", "secret123", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
}

func TestSignIn(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	db := &databasetest.Client{}
	db.On("GetUserByEmail", "student@example.com").Return(model.User{ID: "u1", Email: "student@example.com", Password: hash, Role: model.RoleUser}, nil)
	db.On("GetUserByEmail", "ghost@example.com").Return(model.User{}, database.ErrNotFound)
	svc := newTestService(db)

	token, user, err := svc.SignIn("student@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	claims, err := svc.Tokens().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	_, _, err = svc.SignIn("student@example.com", "nope")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, _, err = svc.SignIn("ghost@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignInThrottles(t *testing.T) {
	db := &databasetest.Client{}
	db.On("GetUserByEmail", "ghost@example.com").Return(model.User{}, database.ErrNotFound)
	svc := newTestService(db)

	for i := 0; i < maxFailedLogins; i++ {
		_, _, err := svc.SignIn("ghost@example.com", "x")
		assert.ErrorIs(t, err, ErrUserNotFound)
	}

	_, _, err := svc.SignIn("ghost@example.com", "x")
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

func TestSignInWithProfileCreatesUser(t *testing.T) {
	profile := Profile{Provider: model.ProviderKakao, ID: "42", Email: "kakao_42@temp.com", Name: "카카오 사용자"}

	db := &databasetest.Client{}
	db.On("GetUserByProvider", model.ProviderKakao, "42").Return(model.User{}, database.ErrNotFound)
	db.On("GetUserByEmail", "kakao_42@temp.com").Return(model.User{}, database.ErrNotFound)
	db.On("CreateUser", mock.MatchedBy(func(u model.User) bool {
		return u.Provider == model.ProviderKakao && u.ProviderID == "42" && u.Role == model.RoleUser && u.Password == ""
	})).Return(model.User{ID: "u9", Email: profile.Email, Role: model.RoleUser}, nil)

	token, user, err := newTestService(db).SignInWithProfile(profile)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u9", user.ID)
	db.AssertExpectations(t)
}

func TestSignInWithProfileLinksVerifiedEmail(t *testing.T) {
	profile := Profile{Provider: model.ProviderGoogle, ID: "g-1", Email: "student@example.com", Name: "김학습", EmailVerified: true}
	existing := model.User{ID: "u1", Email: "student@example.com", Password: "hash", Role: model.RoleUser}

	db := &databasetest.Client{}
	db.On("GetUserByProvider", model.ProviderGoogle, "g-1").Return(model.User{}, database.ErrNotFound)
	db.On("GetUserByEmail", "student@example.com").Return(existing, nil)
	db.On("LinkProvider", "u1", model.ProviderGoogle, "g-1").Return(existing, nil)

	token, user, err := newTestService(db).SignInWithProfile(profile)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u1", user.ID)
	db.AssertExpectations(t)
	db.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestSignInWithProfileRefusesUnverifiedEmail(t *testing.T) {
	profile := Profile{Provider: model.ProviderKakao, ID: "7", Email: "student@example.com", Name: "라이언"}

	db := &databasetest.Client{}
	db.On("GetUserByProvider", model.ProviderKakao, "7").Return(model.User{}, database.ErrNotFound)
	db.On("GetUserByEmail", "student@example.com").Return(model.User{ID: "u1", Email: "student@example.com"}, nil)

	_, _, err := newTestService(db).SignInWithProfile(profile)
	assert.ErrorIs(t, err, ErrAccountExists)
	db.AssertNotCalled(t, "LinkProvider", mock.Anything, mock.Anything, mock.Anything)
	db.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestSignInWithProfileAdminNeedsVerifiedEmail(t *testing.T) {
	db := &databasetest.Client{}
	db.On("GetUserByProvider", mock.Anything, mock.Anything).Return(model.User{}, database.ErrNotFound)
	db.On("GetUserByEmail", "admin@example.com").Return(model.User{}, database.ErrNotFound)
	db.On("CreateUser", mock.MatchedBy(func(u model.User) bool {
		return u.ProviderID == "unverified" && u.Role == model.RoleUser
	})).Return(model.User{ID: "u2"}, nil)
	db.On("CreateUser", mock.MatchedBy(func(u model.User) bool {
		return u.ProviderID == "verified" && u.Role == model.RoleAdmin
	})).Return(model.User{ID: "u3"}, nil)
	svc := newTestService(db)

	_, user, err := svc.SignInWithProfile(Profile{Provider: model.ProviderKakao, ID: "unverified", Email: "admin@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)

	_, user, err = svc.SignInWithProfile(Profile{Provider: model.ProviderGoogle, ID: "verified", Email: "admin@example.com", EmailVerified: true})
	require.NoError(t, err)
	assert.Equal(t, "u3", user.ID)
}

func TestResetPassword(t *testing.T) {
	before := model.User{ID: "u1", Email: "student@example.com", Password: "old-hash"}
	after := model.User{ID: "u1", Email: "student@example.com", Password: "new-hash"}

	db := &databasetest.Client{}
	db.On("GetUserByEmail", "student@example.com").Return(before, nil)
	db.On("GetUserByID", "u1").Return(before, nil).Twice()
	db.On("GetUserByID", "u1").Return(after, nil)
	db.On("UpdatePassword", "u1", mock.AnythingOfType("string")).Return(nil).Once()
	svc := newTestService(db)

	_, token, err := svc.ForgotPassword("student@example.com")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(token, "123"), ErrWeakPassword)
	require.NoError(t, svc.ResetPassword(token, "newsecret"))
	assert.ErrorIs(t, svc.ResetPassword(token, "another1"), ErrInvalidToken)
	assert.ErrorIs(t, svc.ResetPassword("garbage", "newsecret"), ErrInvalidToken)
	db.AssertExpectations(t)
}
