package models

import (
	"time"

	"github.com/vanbenpham/forunime-backend/db"

	"gorm.io/gorm"
)

type Review struct {
	ID              uint64    `gorm:"primaryKey" json:"review_id"`
	CreatedAt       time.Time `json:"date_created"`
	Name            string    `gorm:"type:varchar(300)" json:"name"`
	Type            string    `gorm:"type:varchar(50)" json:"type"` // anime, manga, novel, ...
	Description     string    `gorm:"type:text" json:"description"`
	Feedback        *string   `gorm:"type:text" json:"feedback"`
	PhotoURL        *string   `gorm:"type:varchar(500)" json:"photo_url"`
	FeedbackOwnerID uint64    `json:"feedback_owner_id"`
	User            User      `gorm:"foreignKey:FeedbackOwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// ReviewAggregates computes review_count and average_rate on read. The
// average ignores comments with no rate and is 0 when no rated comment
// exists. Nothing is ever materialized in the reviews table.
func ReviewAggregates(reviewID uint64) (count int64, averageRate float64, err error) {
	row := db.Instance.Model(&Comment{}).
		Select("count(*), ifnull(avg(rate), 0)").
		Where("review_id = ?", reviewID).
		Row()
	if err = row.Scan(&count, &averageRate); err != nil {
		return 0, 0, err
	}
	return count, averageRate, nil
}

// ReviewDelete removes the review together with every comment attached to it.
// Same application-level cascade as PostDelete.
func ReviewDelete(review *Review) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", review.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(review).Error
	})
}
