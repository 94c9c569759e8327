package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-community-forum/internal/core/auth"
	"go-community-forum/internal/transport/http/handler"
	mdw "go-community-forum/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, authH *handler.AuthHandler, commH *handler.CommunityHandler) *gin.Engine {
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
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公共
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/community-posts", commH.ListPosts)
	api.GET("/community-posts/:postId", commH.GetPost)

	// 鉴权分组
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, l, ""))

	authed.GET("/auth/me", authH.Me)

	authed.POST("/community-posts", commH.CreatePost)
	authed.PUT("/community-posts/:postId", commH.UpdatePost)
	authed.DELETE("/community-posts/:postId", commH.DeletePost)

	authed.POST("/community-posts/:postId/comments", commH.CreateComment)
	authed.PUT("/comments/:commentId", commH.UpdateComment)
	authed.DELETE("/comments/:commentId", commH.DeleteComment)

	authed.POST("/community-posts/:postId/replies", commH.CreateReply)
	authed.PUT("/replies/:replyId", commH.UpdateReply)
	authed.DELETE("/replies/:replyId", commH.DeleteReply)

	return r
}
