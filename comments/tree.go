// Package comments implements the threaded comment engine: assembling flat
// comment rows into reply trees, guarding the ancestry chain against cycles,
// and validating every comment mutation.
package comments

import (
	"time"

	"github.com/vanbenpham/forunime-backend/models"
)

// Info is the comment payload returned to callers, with the author summary
// denormalized and replies nested recursively.
type Info struct {
	CommentID       uint64          `json:"comment_id"`
	Content         string          `json:"content"`
	Photo           *string         `json:"photo"`
	DateCreated     time.Time       `json:"date_created"`
	UserID          uint64          `json:"user_id"`
	User            models.UserInfo `json:"user"`
	PostID          *uint64         `json:"post_id"`
	ReviewID        *uint64         `json:"review_id"`
	ParentCommentID *uint64         `json:"parent_comment_id"`
	Rate            *int            `json:"rate"`
	Replies         []*Info         `json:"replies"`
}

func infoFrom(comment *models.Comment) *Info {
	return &Info{
		CommentID:       comment.ID,
		Content:         comment.Content,
		Photo:           comment.Photo,
		DateCreated:     comment.CreatedAt,
		UserID:          comment.UserID,
		User:            comment.User.Info(),
		PostID:          comment.PostID,
		ReviewID:        comment.ReviewID,
		ParentCommentID: comment.ParentCommentID,
		Rate:            comment.Rate,
		Replies:         []*Info{},
	}
}

// BuildTree folds a flat sequence of comments sharing one thread context
// into a forest of reply trees. The input order is preserved both at top
// level and inside every reply list. A comment whose declared parent is not
// part of the input set is surfaced as a top-level node rather than dropped.
// The function only rewires Replies slices and is safe to call repeatedly
// over the same input.
func BuildTree(comments []*Info) []*Info {
	arena := make(map[uint64]*Info, len(comments))
	for _, comment := range comments {
		comment.Replies = []*Info{}
		arena[comment.CommentID] = comment
	}

	forest := []*Info{}
	for _, comment := range comments {
		if comment.ParentCommentID != nil {
			if parent, ok := arena[*comment.ParentCommentID]; ok {
				parent.Replies = append(parent.Replies, comment)
				continue
			}
			// Parent exists outside the fetched set; promote to top level.
		}
		forest = append(forest, comment)
	}
	return forest
}
