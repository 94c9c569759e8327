package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-community-forum/internal/domain"
)

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(c *domain.Comment) error {
	if err := r.db.Create(c).Error; err != nil {
		return err
	}
	c.User = &domain.UserBrief{}
	return r.db.First(c.User, "id = ?", c.UserID).Error
}

func (r *CommentRepo) FindByID(id uint) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.Preload("User").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) ListByPost(postID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	// id 升序即写入顺序，树装配依赖这个次序
	err := r.db.Preload("User").Where("post_id = ?", postID).Order("id").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepo) Update(c *domain.Comment) error {
	return r.db.Model(&domain.Comment{}).Where("id = ?", c.ID).Update("content", c.Content).Error
}

func (r *CommentRepo) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&domain.Comment{}).Error
}
