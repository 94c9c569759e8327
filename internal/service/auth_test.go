package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-community-forum/internal/core/auth"
	"go-community-forum/internal/domain"
)

type fakeUserRepo struct {
	seq   uint
	users map[uint]domain.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[uint]domain.User{}} }

func (f *fakeUserRepo) Create(u *domain.User) error {
	for _, e := range f.users {
		if e.Email == u.Email {
			// 和真实存储同款报错文案，让 repo.IsDuplicate 命中
			return errors.New("UNIQUE constraint failed: users.email")
		}
	}
	f.seq++
	u.ID = f.seq
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			v := u
			return &v, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List() ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for i := uint(1); i <= f.seq; i++ {
		if u, ok := f.users[i]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(u *domain.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	delete(f.users, id)
	return nil
}

func newAuth(t *testing.T, adminEmail string) (*AuthService, *fakeUserRepo, *auth.JWTer) {
	t.Helper()
	users := newFakeUserRepo()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	roles := &auth.Resolver{AdminEmail: adminEmail}
	return NewAuthService(users, jwter, roles, zap.NewNop()), users, jwter
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	svc, _, jwter := newAuth(t, "admin@x.com")

	u, err := svc.Register("alice", "a@x.com", "pw1", "")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, u.Role)
	require.NotEqual(t, "pw1", u.PasswordHash)

	token, role, got, err := svc.Login("a@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, role)
	require.Equal(t, u.ID, got.ID)

	claims, err := jwter.Parse(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UID)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, domain.RoleUser, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuth(t, "")

	_, err := svc.Register("bob", "b@x.com", "right", "")
	require.NoError(t, err)

	_, _, _, err = svc.Login("b@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuth(t, "")

	// 未知邮箱和密码错误必须给同一个错误，防枚举
	_, _, _, err := svc.Login("nobody@x.com", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DuplicateEmailKeepsFirstRecord(t *testing.T) {
	t.Parallel()
	svc, users, _ := newAuth(t, "")

	first, err := svc.Register("carol", "c@x.com", "pw1", "")
	require.NoError(t, err)

	_, err = svc.Register("impostor", "c@x.com", "pw2", "")
	require.ErrorIs(t, err, ErrEmailExists)

	got, err := users.FindByEmail("c@x.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "carol", got.Username)
}

func TestLogin_AdminRoleFromConfiguredEmail(t *testing.T) {
	t.Parallel()
	svc, _, jwter := newAuth(t, "boss@x.com")

	_, err := svc.Register("boss", "boss@x.com", "pw", "")
	require.NoError(t, err)

	token, role, _, err := svc.Login("boss@x.com", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)

	claims, err := jwter.Parse(token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestRegister_RequiresEmailAndPassword(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuth(t, "")

	_, err := svc.Register("x", "", "pw", "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.Register("x", "x@x.com", "", "")
	require.ErrorAs(t, err, &ve)
}

// 超过 bcrypt 72 字节上限的口令：拒绝注册，且绝不落下一条永远登不进来的记录
func TestRegister_OverlongPasswordRejected(t *testing.T) {
	t.Parallel()
	svc, users, _ := newAuth(t, "")

	_, err := svc.Register("", "a@x.com", strings.Repeat("a", 80), "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	exist, err := users.FindByEmail("a@x.com")
	require.NoError(t, err)
	require.Nil(t, exist)
}
