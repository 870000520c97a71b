package models

import (
	"time"

	"github.com/vanbenpham/forunime-backend/db"

	"gorm.io/gorm"
)

type Post struct {
	ID            uint64    `gorm:"primaryKey" json:"post_id"`
	CreatedAt     time.Time `json:"date_created"`
	Content       string    `gorm:"type:text" json:"content"`
	Photo         *string   `gorm:"type:varchar(500)" json:"photo"`
	ProfileUserID *uint64   `json:"profile_user_id"`
	ThreadID      *uint64   `json:"thread_id"`
	Thread        *Thread   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"thread,omitempty"`
	UserID        uint64    `json:"user_id"`
	User          User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// PostDelete removes the post together with every comment attached to it.
// SQLite does not enforce the declared FK constraints, so the cascade runs
// here rather than in the database.
func PostDelete(post *Post) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}
