package comments

import (
	"errors"
	"fmt"

	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/models"

	"gorm.io/gorm"
)

type CreateRequest struct {
	Content         string  `json:"content" binding:"required"`
	Photo           *string `json:"photo"`
	PostID          *uint64 `json:"post_id"`
	ReviewID        *uint64 `json:"review_id"`
	ParentCommentID *uint64 `json:"parent_comment_id"`
	Rate            *int    `json:"rate"`
}

// UpdateRequest carries the only mutable fields. The post/review/parent
// association of a comment is fixed at creation time.
type UpdateRequest struct {
	Content *string `json:"content"`
	Photo   *string `json:"photo"`
	Rate    *int    `json:"rate"`
}

// checkAncestry walks the parent chain upward from startID. Reaching
// descendantID on the way up means attaching descendantID under startID
// would close a cycle. A descendantID of 0 skips the cycle test and only
// verifies the chain terminates. The walk is bounded by the total comment
// count: exceeding it means the stored chain itself is cyclic, which is
// store corruption rather than a rejectable request.
func checkAncestry(startID, descendantID uint64) error {
	var total int64
	if err := db.Instance.Model(&models.Comment{}).Count(&total).Error; err != nil {
		return err
	}
	currentID := startID
	for steps := int64(0); currentID != 0; steps++ {
		if steps > total {
			return fmt.Errorf("ancestry walk from comment %d exceeded %d stored comments: %w",
				startID, total, models.ErrInvariantViolation)
		}
		if descendantID != 0 && currentID == descendantID {
			return models.ErrCircularReference
		}
		var current models.Comment
		err := db.Instance.Select("id, parent_comment_id").First(&current, "id = ?", currentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Chain leaves the stored set; nothing to cycle back to.
			return nil
		}
		if err != nil {
			return err
		}
		if current.ParentCommentID == nil {
			return nil
		}
		currentID = *current.ParentCommentID
	}
	return nil
}

func sameContext(parent *models.Comment, postID, reviewID *uint64) bool {
	if postID != nil {
		return parent.PostID != nil && *parent.PostID == *postID
	}
	return parent.ReviewID != nil && *parent.ReviewID == *reviewID
}

// Create validates and persists a new comment for the authenticated user.
// The ancestry is checked twice: before the insert (parent chain must be
// sound) and after it (the new row's own id only exists then). A cycle found
// post-insert deletes the row again so no partial state remains visible.
func Create(user *models.User, req CreateRequest) (*Info, error) {
	if (req.PostID == nil) == (req.ReviewID == nil) {
		return nil, fmt.Errorf("comment must target exactly one of post or review: %w", models.ErrInvalidTarget)
	}
	if req.ReviewID == nil {
		// A rate only carries meaning on review comments; discard it so it
		// can never leak into the review aggregates.
		req.Rate = nil
	}
	if req.PostID != nil {
		var post models.Post
		if db.Instance.First(&post, "id = ?", *req.PostID).Error != nil {
			return nil, fmt.Errorf("post %d: %w", *req.PostID, models.ErrNotFound)
		}
	} else {
		var review models.Review
		if db.Instance.First(&review, "id = ?", *req.ReviewID).Error != nil {
			return nil, fmt.Errorf("review %d: %w", *req.ReviewID, models.ErrNotFound)
		}
	}

	if req.ParentCommentID != nil {
		var parent models.Comment
		if db.Instance.First(&parent, "id = ?", *req.ParentCommentID).Error != nil {
			return nil, fmt.Errorf("parent comment %d: %w", *req.ParentCommentID, models.ErrNotFound)
		}
		if !sameContext(&parent, req.PostID, req.ReviewID) {
			return nil, fmt.Errorf("parent comment %d belongs to a different thread: %w",
				*req.ParentCommentID, models.ErrNotFound)
		}
		if err := checkAncestry(*req.ParentCommentID, 0); err != nil {
			return nil, err
		}
	}

	comment := models.Comment{
		Content:         req.Content,
		Photo:           req.Photo,
		UserID:          user.ID,
		PostID:          req.PostID,
		ReviewID:        req.ReviewID,
		ParentCommentID: req.ParentCommentID,
		Rate:            req.Rate,
	}
	if err := db.Instance.Create(&comment).Error; err != nil {
		return nil, err
	}

	if req.ParentCommentID != nil {
		if err := checkAncestry(*req.ParentCommentID, comment.ID); err != nil {
			db.Instance.Delete(&models.Comment{}, comment.ID)
			return nil, err
		}
	}

	comment.User = *user
	return infoFrom(&comment), nil
}

func Get(id uint64) (*Info, error) {
	var comment models.Comment
	err := db.Instance.Preload("User").First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("comment %d: %w", id, models.ErrNotFound)
	}
	return infoFrom(&comment), nil
}

func Update(user *models.User, id uint64, req UpdateRequest) (*Info, error) {
	var comment models.Comment
	if db.Instance.First(&comment, "id = ?", id).Error != nil {
		return nil, fmt.Errorf("comment %d: %w", id, models.ErrNotFound)
	}
	if comment.UserID != user.ID && !user.IsAdmin() {
		return nil, models.ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}
	if req.Rate != nil && comment.ReviewID != nil {
		updates["rate"] = *req.Rate
	}
	if len(updates) > 0 {
		if err := db.Instance.Model(&comment).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return Get(id)
}

// Delete removes the comment and every descendant reply in one transaction.
func Delete(user *models.User, id uint64) error {
	var comment models.Comment
	if db.Instance.First(&comment, "id = ?", id).Error != nil {
		return fmt.Errorf("comment %d: %w", id, models.ErrNotFound)
	}
	if comment.UserID != user.ID && !user.IsAdmin() {
		return models.ErrForbidden
	}

	return db.Instance.Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&models.Comment{}).Count(&total).Error; err != nil {
			return err
		}
		doomed := []uint64{id}
		frontier := []uint64{id}
		for len(frontier) > 0 {
			var replyIDs []uint64
			err := tx.Model(&models.Comment{}).
				Where("parent_comment_id IN ?", frontier).
				Pluck("id", &replyIDs).Error
			if err != nil {
				return err
			}
			doomed = append(doomed, replyIDs...)
			if int64(len(doomed)) > total {
				return fmt.Errorf("cascade from comment %d collected more rows than exist: %w",
					id, models.ErrInvariantViolation)
			}
			frontier = replyIDs
		}
		return tx.Delete(&models.Comment{}, doomed).Error
	})
}

// ForPost returns the post's comments as a forest, in creation order.
func ForPost(postID uint64) ([]*Info, error) {
	return forContext("post_id = ?", postID)
}

// ForReview returns the review's comments as a forest, in creation order.
func ForReview(reviewID uint64) ([]*Info, error) {
	return forContext("review_id = ?", reviewID)
}

func forContext(condition string, id uint64) ([]*Info, error) {
	var rows []models.Comment
	err := db.Instance.Preload("User").
		Where(condition, id).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	infos := make([]*Info, len(rows))
	for i := range rows {
		infos[i] = infoFrom(&rows[i])
	}
	return BuildTree(infos), nil
}
