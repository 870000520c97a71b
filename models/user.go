package models

import (
	"fmt"
	"time"

	"github.com/vanbenpham/forunime-backend/db"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultProfilePictureURL = "https://static.vecteezy.com/system/resources/thumbnails/009/292/244/small/default-avatar-icon-of-social-media-user-vector.jpg"
)

type User struct {
	ID                uint64    `gorm:"primaryKey" json:"user_id"`
	CreatedAt         time.Time `json:"date_created"`
	Email             string    `gorm:"type:varchar(150);index:uniq_email,unique" json:"email"`
	Username          string    `gorm:"type:varchar(100);index:uniq_username,unique" json:"username"`
	Password          string    `gorm:"type:varchar(128)" json:"-"`
	ProfilePictureURL string    `gorm:"type:varchar(500)" json:"profile_picture_url"`
	Role              string    `gorm:"type:varchar(20);default:user" json:"role"`
}

// UserInfo is the denormalized author/sender summary embedded in comment and
// message payloads.
type UserInfo struct {
	ID                uint64 `json:"user_id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		ID:                u.ID,
		Username:          u.Username,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) SetPassword(plainTextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func UserCreate(email, username, plainTextPassword string) (u User, err error) {
	var count int64
	db.Instance.Model(&User{}).Where("email = ? OR username = ?", email, username).Count(&count)
	if count > 0 {
		return User{}, fmt.Errorf("email or username already registered")
	}
	u.Email = email
	u.Username = username
	u.ProfilePictureURL = DefaultProfilePictureURL
	u.Role = RoleUser
	if err = u.SetPassword(plainTextPassword); err != nil {
		return User{}, err
	}
	return u, db.Instance.Create(&u).Error
}

func UserLogin(email, plainTextPassword string) (u User, err error) {
	if err = db.Instance.First(&u, "email = ?", email).Error; err != nil {
		return User{}, fmt.Errorf("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, fmt.Errorf("invalid credentials")
	}
	return u, nil
}
