package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-community-forum/internal/core/cache"
	"go-community-forum/internal/domain"
)

const treeTTL = 30 * time.Second

// CommunityService is the comment tree manager: it owns post/comment
// mutation and the two-level retrieval view, and talks only to the
// repository interfaces. rdb may be nil (cache disabled).
type CommunityService struct {
	posts    domain.PostRepository
	comments domain.CommentRepository
	rdb      *cache.Cache
	log      *zap.Logger
}

func NewCommunityService(posts domain.PostRepository, comments domain.CommentRepository, rdb *cache.Cache, log *zap.Logger) *CommunityService {
	return &CommunityService{posts: posts, comments: comments, rdb: rdb, log: log}
}

func treeKey(postID uint) string { return fmt.Sprintf("post:tree:%d", postID) }

func (s *CommunityService) invalidate(ctx context.Context, postID uint) {
	if s.rdb != nil {
		s.rdb.Invalidate(ctx, treeKey(postID))
	}
}

/* ---------- posts ---------- */

func (s *CommunityService) CreatePost(ctx context.Context, authorID uint, title, content, picture string) (*domain.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, invalid("title and content are required")
	}
	p := &domain.Post{UserID: authorID, Title: title, Content: content, Picture: picture}
	if err := s.posts.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CommunityService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List()
}

// GetPostWithTree returns the post with all top-level comments, each
// carrying its flattened reply list. Served through the redis read cache;
// every mutation of the post or its comments invalidates the key.
func (s *CommunityService) GetPostWithTree(ctx context.Context, postID uint) (*domain.PostTree, error) {
	if s.rdb == nil {
		return s.loadTree(postID)
	}
	t, err := cache.GetOrLoadJSON(s.rdb, ctx, treeKey(postID), treeTTL, func(context.Context) (*domain.PostTree, error) {
		return s.loadTree(postID)
	})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFound("Community post", postID)
	}
	return t, nil
}

func (s *CommunityService) loadTree(postID uint) (*domain.PostTree, error) {
	p, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("Community post", postID)
	}
	comments, err := s.comments.ListByPost(postID)
	if err != nil {
		return nil, err
	}
	return &domain.PostTree{Post: *p, Comments: assembleTree(comments)}, nil
}

func (s *CommunityService) UpdatePost(ctx context.Context, postID uint, title, content, picture string) (*domain.Post, error) {
	p, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("Community post", postID)
	}
	if title != "" {
		p.Title = title
	}
	if content != "" {
		p.Content = content
	}
	if picture != "" {
		p.Picture = picture
	}
	if err := s.posts.Update(p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, postID)
	return p, nil
}

func (s *CommunityService) DeletePost(ctx context.Context, postID uint) error {
	p, err := s.posts.FindByID(postID)
	if err != nil {
		return err
	}
	if p == nil {
		return notFound("Community post", postID)
	}
	// 删帖连评论树一起删（仓储层事务内完成）
	if err := s.posts.Delete(postID); err != nil {
		return err
	}
	s.invalidate(ctx, postID)
	return nil
}

/* ---------- comments & replies ---------- */

func (s *CommunityService) CreateComment(ctx context.Context, postID, authorID uint, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalid("Content is required")
	}
	if p, err := s.posts.FindByID(postID); err != nil {
		return nil, err
	} else if p == nil {
		return nil, notFound("Community post", postID)
	}
	c := &domain.Comment{PostID: postID, UserID: authorID, Content: content}
	if err := s.comments.Create(c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, postID)
	return c, nil
}

// CreateReply attaches a reply under parentID. The parent must exist and
// belong to the same post; cross-post replies are rejected before the store
// is touched.
func (s *CommunityService) CreateReply(ctx context.Context, postID, authorID uint, content string, parentID uint) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalid("Content is required")
	}
	parent, err := s.comments.FindByID(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, invalid("parent comment %d not found", parentID)
	}
	if parent.PostID != postID {
		return nil, invalid("parent comment %d does not belong to post %d", parentID, postID)
	}
	pid := parentID
	c := &domain.Comment{PostID: postID, UserID: authorID, Content: content, ParentID: &pid}
	if err := s.comments.Create(c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, postID)
	return c, nil
}

func (s *CommunityService) UpdateComment(ctx context.Context, commentID uint, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalid("Content is required")
	}
	c, err := s.comments.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("Comment", commentID)
	}
	c.Content = content
	if err := s.comments.Update(c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, c.PostID)
	return c, nil
}

// DeleteComment removes the comment; a top-level comment takes its whole
// descendant set with it, a reply goes alone.
func (s *CommunityService) DeleteComment(ctx context.Context, commentID uint) error {
	c, err := s.comments.FindByID(commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return notFound("Comment", commentID)
	}

	ids := []uint{commentID}
	if !c.IsReply() {
		all, err := s.comments.ListByPost(c.PostID)
		if err != nil {
			return err
		}
		ids = descendants(all, commentID)
	}
	if err := s.comments.DeleteByIDs(ids); err != nil {
		return err
	}
	s.log.Info("comment deleted", zap.Uint("id", commentID), zap.Int("cascade", len(ids)-1))
	s.invalidate(ctx, c.PostID)
	return nil
}

func (s *CommunityService) UpdateReply(ctx context.Context, replyID uint, content string) (*domain.Comment, error) {
	if err := s.requireReply(replyID); err != nil {
		return nil, err
	}
	return s.UpdateComment(ctx, replyID, content)
}

func (s *CommunityService) DeleteReply(ctx context.Context, replyID uint) error {
	if err := s.requireReply(replyID); err != nil {
		return err
	}
	return s.DeleteComment(ctx, replyID)
}

func (s *CommunityService) requireReply(id uint) error {
	c, err := s.comments.FindByID(id)
	if err != nil {
		return err
	}
	if c == nil || !c.IsReply() {
		return notFound("Reply", id)
	}
	return nil
}

/* ---------- tree assembly ---------- */

// assembleTree groups the flat comment arena into the two-level view:
// top-level comments in insertion order, every reply flattened under its
// nearest top-level ancestor regardless of actual nesting depth.
func assembleTree(comments []domain.Comment) []domain.CommentNode {
	byID := make(map[uint]*domain.Comment, len(comments))
	slot := make(map[uint]int) // top-level comment id -> node index

	nodes := make([]domain.CommentNode, 0)
	for i := range comments {
		c := &comments[i]
		byID[c.ID] = c
		if !c.IsReply() {
			slot[c.ID] = len(nodes)
			nodes = append(nodes, domain.CommentNode{Comment: *c, Replies: []domain.Comment{}})
		}
	}

	for i := range comments {
		c := &comments[i]
		if !c.IsReply() {
			continue
		}
		if rootID, ok := topAncestor(byID, c); ok {
			n := slot[rootID]
			nodes[n].Replies = append(nodes[n].Replies, *c)
		}
		// 父链断裂的孤儿不展示
	}
	return nodes
}

func topAncestor(byID map[uint]*domain.Comment, c *domain.Comment) (uint, bool) {
	seen := map[uint]bool{c.ID: true}
	for c.ParentID != nil {
		p, ok := byID[*c.ParentID]
		if !ok || seen[p.ID] {
			return 0, false
		}
		seen[p.ID] = true
		c = p
	}
	return c.ID, true
}

// descendants returns rootID plus every comment reachable from it through
// parent links. The arena is in insertion order and a child is always
// created after its parent, so one forward pass collects the full set.
func descendants(all []domain.Comment, rootID uint) []uint {
	ids := []uint{rootID}
	in := map[uint]bool{rootID: true}
	for _, c := range all {
		if c.ParentID != nil && in[*c.ParentID] && !in[c.ID] {
			in[c.ID] = true
			ids = append(ids, c.ID)
		}
	}
	return ids
}
