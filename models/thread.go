package models

import "time"

// Thread is an admin-curated board that posts can be attached to.
type Thread struct {
	ID         uint64    `gorm:"primaryKey" json:"thread_id"`
	CreatedAt  time.Time `json:"date_created"`
	ThreadName string    `gorm:"type:varchar(300);index:uniq_thread_name,unique" json:"thread_name"`
	UserID     uint64    `json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
