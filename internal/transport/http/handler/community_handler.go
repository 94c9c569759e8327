package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-community-forum/internal/service"
	"go-community-forum/internal/storage"
	"go-community-forum/internal/transport/http/ez"
	mdw "go-community-forum/internal/transport/http/middleware"
	resp "go-community-forum/internal/transport/http/response"
)

type CommunityHandler struct {
	svc     *service.CommunityService
	uploads *storage.Saver
}

func NewCommunityHandler(svc *service.CommunityService, uploads *storage.Saver) *CommunityHandler {
	return &CommunityHandler{svc: svc, uploads: uploads}
}

func authorID(c *gin.Context) (uint, bool) {
	claims, ok := mdw.Identity(c)
	if !ok {
		ez.WriteErr(c, ez.Unauthorized("Unauthorized"))
		return 0, false
	}
	return claims.UID, true
}

/* ---------- posts ---------- */

// CreatePost POST /community-posts（multipart，picture 可选）
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	uid, ok := authorID(c)
	if !ok {
		return
	}
	picture, err := h.uploads.SaveOptional(c, "picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("Error uploading file"))
		return
	}
	p, err := h.svc.CreatePost(c.Request.Context(), uid, c.PostForm("title"), c.PostForm("content"), picture)
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK("Community post created successfully", p))
}

// ListPosts GET /community-posts
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	posts, err := h.svc.ListPosts(c.Request.Context())
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK("List of community posts", posts))
}

// GetPost GET /community-posts/:postId — 帖子 + 两级评论树
func (h *CommunityHandler) GetPost(c *gin.Context) {
	id, err := ez.UintParam(c, "postId")
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	tree, err := h.svc.GetPostWithTree(c.Request.Context(), id)
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(fmt.Sprintf("Community post with ID : %d", id), tree))
}

// UpdatePost PUT /community-posts/:postId（multipart）
func (h *CommunityHandler) UpdatePost(c *gin.Context) {
	id, err := ez.UintParam(c, "postId")
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	picture, err := h.uploads.SaveOptional(c, "picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("Error uploading file"))
		return
	}
	p, err := h.svc.UpdatePost(c.Request.Context(), id, c.PostForm("title"), c.PostForm("content"), picture)
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(fmt.Sprintf("Community post with ID : %d updated successfully", id), p))
}

// DeletePost DELETE /community-posts/:postId — 评论树一并删除
func (h *CommunityHandler) DeletePost(c *gin.Context) {
	id, err := ez.UintParam(c, "postId")
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	if err := h.svc.DeletePost(c.Request.Context(), id); err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(fmt.Sprintf("Community post with ID : %d deleted successfully", id), nil))
}

/* ---------- comments ---------- */

type commentIn struct {
	Content string `json:"content"`
}

// CreateComment POST /community-posts/:postId/comments
func (h *CommunityHandler) CreateComment(c *gin.Context) {
	uid, ok := authorID(c)
	if !ok {
		return
	}
	postID, err := ez.UintParam(c, "postId")
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	var in commentIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("Content is required"))
		return
	}
	cm, err := h.svc.CreateComment(c.Request.Context(), postID, uid, in.Content)
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(fmt.Sprintf("Comment added to community post id : %d successfully", postID), cm))
}

// UpdateComment PUT /comments/:commentId
func (h *CommunityHandler) UpdateComment(c *gin.Context) {
	id, err := ez.UintParam(c, "commentId")
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	var in commentIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("Content is required"))
		return
	}
	cm, err := h.svc.UpdateComment(c.Request.Context(), id, in.Content)
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(fmt.Sprintf("Comment with ID : %d updated successfully", id), cm))
}

// DeleteComment DELETE /comments/:commentId
// 顶层评论级联删除其整棵回复，回复只删自己
func (h *CommunityHandler) DeleteComment(c *gin.Context) {
	id, err := ez.UintParam(c, "commentId")
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	if err := h.svc.DeleteComment(c.Request.Context(), id); err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(fmt.Sprintf("Comment with ID : %d deleted successfully", id), nil))
}

/* ---------- replies ---------- */

type replyIn struct {
	Content  string `json:"content"`
	ParentID uint   `json:"parentId" binding:"required"`
}

// CreateReply POST /community-posts/:postId/replies
func (h *CommunityHandler) CreateReply(c *gin.Context) {
	uid, ok := authorID(c)
	if !ok {
		return
	}
	postID, err := ez.UintParam(c, "postId")
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	var in replyIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail(err.Error()))
		return
	}
	cm, err := h.svc.CreateReply(c.Request.Context(), postID, uid, in.Content, in.ParentID)
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK("Reply added to comment successfully", cm))
}

// UpdateReply PUT /replies/:replyId
func (h *CommunityHandler) UpdateReply(c *gin.Context) {
	id, err := ez.UintParam(c, "replyId")
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	var in commentIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Fail("Content is required"))
		return
	}
	cm, err := h.svc.UpdateReply(c.Request.Context(), id, in.Content)
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK("Reply updated successfully", cm))
}

// DeleteReply DELETE /replies/:replyId
func (h *CommunityHandler) DeleteReply(c *gin.Context) {
	id, err := ez.UintParam(c, "replyId")
	if err != nil {
		ez.WriteErr(c, err)
		return
	}
	if err := h.svc.DeleteReply(c.Request.Context(), id); err != nil {
		ez.WriteErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(fmt.Sprintf("Reply with ID : %d deleted successfully", id), nil))
}
