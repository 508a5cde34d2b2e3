package auth

import (
	"errors"
	"fmt"
	"strings"

	"ai-coding-school-go/internal/database"
	"ai-coding-school-go/internal/model"
	log "github.com/sirupsen/logrus"
)

// Service implements sign-up and sign-in on top of the user store.
type Service struct {
	db          database.Client
	tokens      *TokenIssuer
	limiter     *LoginLimiter
	adminEmails map[string]bool
}

func NewService(db database.Client, tokens *TokenIssuer, adminEmails []string) *Service {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		if email = strings.TrimSpace(email); email != "" {
			admins[strings.ToLower(email)] = true
		}
	}

	return &Service{
		db:          db,
		tokens:      tokens,
		limiter:     NewLoginLimiter(),
		adminEmails: admins,
	}
}

func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// RoleFor returns the role a new account with this email starts with.
func (s *Service) RoleFor(email string) model.Role {
	if s.adminEmails[strings.ToLower(email)] {
		return model.RoleAdmin
	}
	return model.RoleUser
}

func (s *Service) SignUp(email, password, displayName string) (model.User, error) {
	if err := ValidateEmail(email); err != nil {
		return model.User{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return model.User{}, err
	}

	_, err := s.db.GetUserByEmail(email)
	if err == nil {
		return model.User{}, ErrEmailAlreadyInUse
	}
	if !errors.Is(err, database.ErrNotFound) {
		return model.User{}, fmt.Errorf("looking up email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.db.CreateUser(model.User{
		Email:       email,
		Password:    hash,
		DisplayName: displayName,
		Role:        s.RoleFor(email),
		Provider:    model.ProviderPassword,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// SignIn checks an email and password and returns a session token.
func (s *Service) SignIn(email, password string) (string, model.User, error) {
	if err := ValidateEmail(email); err != nil {
		return "", model.User{}, err
	}
	if err := s.limiter.Allow(email); err != nil {
		return "", model.User{}, err
	}

	user, err := s.db.GetUserByEmail(email)
	if errors.Is(err, database.ErrNotFound) {
		s.limiter.Fail(email)
		return "", model.User{}, ErrUserNotFound
	}
	if err != nil {
		return "", model.User{}, fmt.Errorf("looking up user: %w", err)
	}
	if user.Password == "" {
		// Accounts created through Google or Kakao have no password.
		s.limiter.Fail(email)
		return "", model.User{}, ErrInvalidCredential
	}
	if err := CheckPassword(user.Password, password); err != nil {
		s.limiter.Fail(email)
		return "", model.User{}, err
	}
	s.limiter.Reset(email)

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", model.User{}, err
	}

	return token, user, nil
}

// SignInWithProfile finds or creates the account behind an OAuth profile.
// A verified provider email that already belongs to an account is linked to
// it; an unverified one is refused.
func (s *Service) SignInWithProfile(profile Profile) (string, model.User, error) {
	user, err := s.db.GetUserByProvider(profile.Provider, profile.ID)
	if errors.Is(err, database.ErrNotFound) {
		user, err = s.linkOrCreate(profile)
		if err != nil {
			return "", model.User{}, err
		}
	} else if err != nil {
		return "", model.User{}, fmt.Errorf("looking up %s user: %w", profile.Provider, err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", model.User{}, err
	}

	return token, user, nil
}

func (s *Service) linkOrCreate(profile Profile) (model.User, error) {
	logger := log.WithFields(log.Fields{"provider": profile.Provider, "providerId": profile.ID})

	if profile.Email != "" {
		existing, err := s.db.GetUserByEmail(profile.Email)
		if err == nil {
			if !profile.EmailVerified {
				return model.User{}, ErrAccountExists
			}
			linked, err := s.db.LinkProvider(existing.ID, profile.Provider, profile.ID)
			if err != nil {
				return model.User{}, fmt.Errorf("linking %s identity: %w", profile.Provider, err)
			}
			logger.WithField("user", linked.ID).Info("linked provider login to existing account")
			return linked, nil
		}
		if !errors.Is(err, database.ErrNotFound) {
			return model.User{}, fmt.Errorf("looking up email: %w", err)
		}
	}

	// Only an address the provider has verified may claim an admin email.
	role := model.RoleUser
	if profile.EmailVerified {
		role = s.RoleFor(profile.Email)
	}

	user, err := s.db.CreateUser(model.User{
		Email:       profile.Email,
		DisplayName: profile.Name,
		PhotoURL:    profile.PictureURL,
		Role:        role,
		Provider:    profile.Provider,
		ProviderID:  profile.ID,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("creating %s user: %w", profile.Provider, err)
	}
	logger.WithField("user", user.ID).Info("created user from provider login")

	return user, nil
}

// ForgotPassword returns the account and a reset token for email.
func (s *Service) ForgotPassword(email string) (model.User, string, error) {
	if err := ValidateEmail(email); err != nil {
		return model.User{}, "", err
	}

	user, err := s.db.GetUserByEmail(email)
	if errors.Is(err, database.ErrNotFound) {
		return model.User{}, "", ErrUserNotFound
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("looking up user: %w", err)
	}

	token, err := s.tokens.IssueReset(user)
	if err != nil {
		return model.User{}, "", err
	}

	return user, token, nil
}

func (s *Service) ResetPassword(token, password string) error {
	claims, err := s.tokens.ParseReset(token)
	if err != nil {
		return err
	}

	user, err := s.db.GetUserByID(claims.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	// A reset token is spent once the password it was issued for changes.
	if !s.tokens.Current(claims, user) {
		return ErrInvalidToken
	}

	if err := ValidatePassword(password); err != nil {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.db.UpdatePassword(user.ID, hash); err != nil {
		return fmt.Errorf("storing new password: %w", err)
	}
	s.limiter.Reset(user.Email)

	return nil
}
