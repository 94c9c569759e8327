package domain

import "time"

// Comment is a single node of a post's discussion tree. ParentID is nil for
// a top-level comment and points at another comment of the same post for a
// reply. Nesting is unbounded in the schema; retrieval flattens it to one
// level (see service.CommunityService).
type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PostID    uint       `gorm:"index;not null" json:"postId"`
	UserID    uint       `gorm:"index;not null" json:"userId"`
	ParentID  *uint      `gorm:"index" json:"parentId"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      *UserBrief `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) IsReply() bool { return c.ParentID != nil }

// CommentNode is one top-level comment with its flattened reply list.
type CommentNode struct {
	Comment
	Replies []Comment `json:"replies"`
}

// PostTree is the retrieval shape of a post: the post itself plus its
// two-level comment view.
type PostTree struct {
	Post
	Comments []CommentNode `json:"comments"`
}

type CommentRepository interface {
	Create(c *Comment) error
	FindByID(id uint) (*Comment, error)
	// ListByPost returns every comment of the post, replies included, in
	// insertion (id) order with the author projection loaded.
	ListByPost(postID uint) ([]Comment, error)
	Update(c *Comment) error
	DeleteByIDs(ids []uint) error
}
