package service

import (
	"strings"

	"go-community-forum/internal/domain"
	"go-community-forum/internal/repo"
	"go-community-forum/pkg/utils"
)

// UserService backs the admin surface: plain user CRUD.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List() ([]domain.User, error) { return s.users.List() }

func (s *UserService) Get(id uint) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("User", id)
	}
	return u, nil
}

type UserInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Profile  string
}

func (s *UserService) Create(in UserInput) (*domain.User, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, invalid("email and password are required")
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, invalid("password must be at most 72 bytes")
	}
	u := &domain.User{
		Username:     in.Username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         in.Role,
		Profile:      in.Profile,
	}
	if err := s.users.Create(u); err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return u, nil
}

// Update replaces the provided fields; zero-valued fields keep the record's.
func (s *UserService) Update(id uint, in UserInput) (*domain.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if e := strings.TrimSpace(in.Email); e != "" {
		u.Email = e
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, invalid("password must be at most 72 bytes")
		}
		u.PasswordHash = hash
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	if in.Profile != "" {
		u.Profile = in.Profile
	}
	if err := s.users.Update(u); err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(id uint) error {
	u, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return notFound("User", id)
	}
	return s.users.Delete(id)
}
