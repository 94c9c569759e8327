package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-community-forum/internal/domain"
)

func TestResolver(t *testing.T) {
	t.Parallel()

	r := &Resolver{AdminEmail: "boss@x.com"}
	require.Equal(t, domain.RoleAdmin, r.Resolve("boss@x.com"))
	require.Equal(t, domain.RoleUser, r.Resolve("Boss@x.com")) // exact match only
	require.Equal(t, domain.RoleUser, r.Resolve("a@x.com"))
}

func TestResolver_Unconfigured(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	require.Equal(t, domain.RoleUser, r.Resolve(""))
	require.Equal(t, domain.RoleUser, r.Resolve("boss@x.com"))
}
