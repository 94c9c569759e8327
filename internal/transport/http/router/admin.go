package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-community-forum/internal/core/auth"
	"go-community-forum/internal/domain"
	"go-community-forum/internal/transport/http/handler"
	mdw "go-community-forum/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, adminH *handler.AdminHandler) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// 管理端 v1，统一要求 admin 角色
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, l, domain.RoleAdmin))
	adminH.Mount(admin)

	return r
}
