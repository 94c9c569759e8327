package service

import (
	"strings"

	"go.uber.org/zap"

	"go-community-forum/internal/core/auth"
	"go-community-forum/internal/domain"
	"go-community-forum/internal/repo"
	"go-community-forum/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	roles *auth.Resolver
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, roles *auth.Resolver, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, roles: roles, log: log}
}

// Register creates the user record. profile is the stored image ref from the
// upload collaborator, may be empty. Duplicate email maps to ErrEmailExists
// whether caught by the pre-check or by the store's unique index.
func (s *AuthService) Register(username, email, password, profile string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}
	if username == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			username = email[:at]
		} else {
			username = "user"
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		// bcrypt 上限 72 字节，超长口令在任何写库前拒掉
		return nil, invalid("password must be at most 72 bytes")
	}

	if exist, err := s.users.FindByEmail(email); err != nil {
		return nil, err
	} else if exist != nil {
		return nil, ErrEmailExists
	}

	u := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         s.roles.Resolve(email),
		Profile:      profile,
	}
	if err := s.users.Create(u); err != nil {
		// 并发注册撞唯一索引 → 冲突而不是 500
		if repo.IsDuplicate(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("id", u.ID), zap.String("role", u.Role))
	return u, nil
}

// Login verifies credentials, resolves the effective role and mints a token.
// The role rides inside the token; changes take effect on next login only.
func (s *AuthService) Login(email, password string) (token, role string, user *domain.User, err error) {
	u, err := s.users.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", "", nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", "", nil, ErrInvalidCredentials
	}

	role = s.roles.Resolve(u.Email)
	token, err = s.jwter.Issue(u.ID, u.Email, role)
	if err != nil {
		return "", "", nil, err
	}
	return token, role, u, nil
}
