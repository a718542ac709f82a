package services

import (
	"taskr/internal/domain"
	"taskr/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns credentials and sessions. Sessions live server-side in the
// sessions table, keyed by the opaque sid the transport carries.
type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Register(name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Hash:  string(h),
		Role:  domain.RoleUser,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies name+password and binds the session. Unknown name and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(sid, name, password string) (*domain.User, error) {
	u, err := s.Users.ByName(name)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// Require resolves a session token to an AuthContext. Every task operation
// calls this first; no session means the operation does not proceed.
func (s *AuthService) Require(sid string) (domain.AuthContext, error) {
	if sid == "" {
		return domain.AuthContext{}, domain.ErrUnauthenticated
	}
	u, err := s.Users.SessionUser(sid)
	if err != nil {
		return domain.AuthContext{}, domain.ErrUnauthenticated
	}
	return domain.AuthContext{UserID: u.ID, Role: u.Role}, nil
}
