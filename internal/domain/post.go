package domain

import "time"

type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"userId"`
	Title     string     `gorm:"size:191;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Picture   string     `gorm:"size:255" json:"picture,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      *UserBrief `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (Post) TableName() string { return "community_posts" }

type PostRepository interface {
	Create(p *Post) error
	FindByID(id uint) (*Post, error)
	List() ([]Post, error)
	Update(p *Post) error
	// Delete removes the post and every comment attached to it.
	Delete(id uint) error
}
