package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Username     string    `gorm:"size:64;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"
	Profile      string    `gorm:"size:255" json:"profile,omitempty"`         // stored image ref
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserBrief is the author projection attached to posts and comments.
// Only id/username ever leave the store this way.
type UserBrief struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (UserBrief) TableName() string { return "users" }

type UserRepository interface {
	Create(u *User) error
	FindByID(id uint) (*User, error)
	FindByEmail(email string) (*User, error)
	List() ([]User, error)
	Update(u *User) error
	Delete(id uint) error
}
