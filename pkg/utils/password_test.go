package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", h)
	require.True(t, strings.HasPrefix(h, "$2"))

	require.True(t, CheckPassword("s3cret", h))
	require.False(t, CheckPassword("wrong", h))
	require.False(t, CheckPassword("s3cret", "not-a-hash"))
}

func TestPasswordHashIsSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

// bcrypt 上限 72 字节，超长必须报错而不是存空散列
func TestPasswordHashOverlong(t *testing.T) {
	t.Parallel()

	h, err := HashPassword(strings.Repeat("a", 80))
	require.Error(t, err)
	require.Empty(t, h)
}
