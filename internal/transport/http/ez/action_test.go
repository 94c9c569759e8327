package ez

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"go-community-forum/internal/service"
)

func serveErr(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { WriteErr(c, err) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestWriteErr_Mapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"aerr", NotFound("gone"), http.StatusNotFound, "gone"},
		{"unauthorized", Unauthorized("Unauthorized"), http.StatusUnauthorized, "Unauthorized"},
		{"validation", &service.ValidationError{Msg: "Content is required"}, http.StatusBadRequest, "Content is required"},
		{"notfound", &service.NotFoundError{Kind: "Community post", ID: 9}, http.StatusNotFound, "Community post with ID : 9 not found"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"duplicate", service.ErrEmailExists, http.StatusBadRequest, "Email already exists"},
		{"opaque", errors.New("pq: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serveErr(tc.err)
			require.Equal(t, tc.wantStatus, w.Code)
			require.Contains(t, w.Body.String(), tc.wantBody)
			require.Contains(t, w.Body.String(), `"status":"error"`)
		})
	}
}

// 存储层细节不能出现在响应里
func TestWriteErr_SanitizesInternal(t *testing.T) {
	w := serveErr(errors.New("pq: relation users does not exist"))
	require.NotContains(t, w.Body.String(), "pq:")
}

func TestUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/posts/:postId", func(c *gin.Context) {
		id, err := UintParam(c, "postId")
		if err != nil {
			WriteErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/12", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/abc", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid postId")
}
