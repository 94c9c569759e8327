package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"go-community-forum/internal/domain"
)

// Full happy path: register → login → post → comment → tree.
func TestScenario_RegisterLoginPostComment(t *testing.T) {
	t.Parallel()
	authSvc, _, _ := newAuth(t, "admin@x.com")
	commSvc, _, _ := newCommunity(t)
	ctx := context.Background()

	_, err := authSvc.Register("", "a@x.com", "pw1", "")
	require.NoError(t, err)

	token, role, u, err := authSvc.Login("a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, domain.RoleUser, role)

	p, err := commSvc.CreatePost(ctx, u.ID, "T", "C", "")
	require.NoError(t, err)

	_, err = commSvc.CreateComment(ctx, p.ID, u.ID, "hi")
	require.NoError(t, err)

	tree, err := commSvc.GetPostWithTree(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tree.Comments, 1)
	require.Equal(t, "hi", tree.Comments[0].Content)
	require.Empty(t, tree.Comments[0].Replies)
}
