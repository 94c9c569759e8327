package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-community-forum/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(p *domain.Post) error {
	if err := r.db.Create(p).Error; err != nil {
		return err
	}
	// 回读作者投影，响应里带 {id, username}
	p.User = &domain.UserBrief{}
	return r.db.First(p.User, "id = ?", p.UserID).Error
}

func (r *PostRepo) FindByID(id uint) (*domain.Post, error) {
	var p domain.Post
	err := r.db.Preload("User").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) List() ([]domain.Post, error) {
	var posts []domain.Post
	if err := r.db.Preload("User").Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepo) Update(p *domain.Post) error { return r.db.Save(p).Error }

// Delete removes the post and its whole comment tree in one transaction.
func (r *PostRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
