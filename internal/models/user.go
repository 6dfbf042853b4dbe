package models

import (
	"encoding/json"
	"time"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"unique;not null;size:80" json:"username"`
	Email        string     `gorm:"unique;not null;size:120" json:"email"`
	PasswordHash string     `gorm:"not null;size:255" json:"-"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
	Favorites    []Favorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"favorites"`
}

// MarshalJSON always renders favorites as an array.
func (u User) MarshalJSON() ([]byte, error) {
	type user User
	favorites := u.Favorites
	if favorites == nil {
		favorites = []Favorite{}
	}
	return json.Marshal(struct {
		user
		Favorites []Favorite `json:"favorites"`
	}{user(u), favorites})
}
