package models

import "time"

// Comment is attached to exactly one of a post or a review, and optionally
// replies to another comment in the same context. Parent references are kept
// as plain identifiers, never embedded pointers, so the reply structure can
// never form cyclic ownership in memory.
type Comment struct {
	ID              uint64    `gorm:"primaryKey" json:"comment_id"`
	CreatedAt       time.Time `json:"date_created"`
	Content         string    `gorm:"type:text" json:"content"`
	Photo           *string   `gorm:"type:varchar(500)" json:"photo"`
	UserID          uint64    `json:"user_id"`
	User            User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PostID          *uint64   `gorm:"index" json:"post_id"`
	ReviewID        *uint64   `gorm:"index" json:"review_id"`
	ParentCommentID *uint64   `gorm:"index" json:"parent_comment_id"`
	Rate            *int      `json:"rate"` // only meaningful for review comments
}
