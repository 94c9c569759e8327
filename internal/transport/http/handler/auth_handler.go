package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-community-forum/internal/service"
	"go-community-forum/internal/storage"
	"go-community-forum/internal/transport/http/ez"
	mdw "go-community-forum/internal/transport/http/middleware"
	resp "go-community-forum/internal/transport/http/response"
)

type AuthHandler struct {
	svc     *service.AuthService
	uploads *storage.Saver
}

func NewAuthHandler(svc *service.AuthService, uploads *storage.Saver) *AuthHandler {
	return &AuthHandler{svc: svc, uploads: uploads}
}

// Register POST /auth/register（multipart，profile 文件可选）
func (h *AuthHandler) Register(c *gin.Context) {
	profile, err := h.uploads.SaveOptional(c, "profile")
	if err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("Error uploading file"))
		return
	}

	u, err := h.svc.Register(
		c.PostForm("username"),
		c.PostForm("email"),
		c.PostForm("password"),
		profile,
	)
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK("Register success", u))
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /auth/login
// 响应不走统一信封：token/role/user 平铺（历史契约，保持原样）
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
		return
	}
	token, role, u, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  resp.StatusSuccess,
		"message": "Login successfully",
		"token":   token,
		"role":    role,
		"user":    u,
	})
}

// Me GET /auth/me — 直接读中间件挂的 claims，不回源
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := mdw.Identity(c)
	if !ok {
		ez.WriteErr(c, ez.Unauthorized("Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, resp.OK("ok", gin.H{
		"email": claims.Email,
		"role":  claims.Role,
	}))
}
