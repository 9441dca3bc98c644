package user

import (
	"time"

	"github.com/lib/pq"
)

// User porte les deux listes miroir followers/followings directement sur la
// ligne, comme des colonnes text[]. Le hash du mot de passe ne sort jamais
// en JSON.
type User struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	Username       string         `json:"username" gorm:"uniqueIndex"`
	Email          string         `json:"email" gorm:"uniqueIndex"`
	Password       string         `json:"-"`
	ProfilePicture string         `json:"profile_picture"`
	CoverPicture   string         `json:"cover_picture"`
	Followers      pq.StringArray `json:"followers" gorm:"type:text[]"`
	Followings     pq.StringArray `json:"followings" gorm:"type:text[]"`
	IsAdmin        bool           `json:"is_admin"`
	Desc           string         `json:"desc"`
	City           string         `json:"city"`
	From           string         `json:"from"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
