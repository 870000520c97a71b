package comments

import (
	"fmt"
	"os"
	"testing"

	"github.com/vanbenpham/forunime-backend/config"
	"github.com/vanbenpham/forunime-backend/db"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.SQLITE_FILE = "file::memory:?cache=shared"
	db.Init()
	models.Init()
	os.Exit(m.Run())
}

var userSeq = 0

func makeUser(t *testing.T) *models.User {
	t.Helper()
	userSeq++
	user, err := models.UserCreate(
		fmt.Sprintf("commenter%d@example.com", userSeq),
		fmt.Sprintf("commenter%d", userSeq),
		"secret123")
	require.NoError(t, err)
	return &user
}

func makePost(t *testing.T, user *models.User) *models.Post {
	t.Helper()
	post := models.Post{Content: "a post", UserID: user.ID}
	require.NoError(t, db.Instance.Create(&post).Error)
	return &post
}

func makeReview(t *testing.T, user *models.User) *models.Review {
	t.Helper()
	review := models.Review{Name: "some anime", Type: "anime", Description: "plot", FeedbackOwnerID: user.ID}
	require.NoError(t, db.Instance.Create(&review).Error)
	return &review
}

func intPtr(v int) *int {
	return &v
}

func TestCreateRequiresExactlyOneTarget(t *testing.T) {
	user := makeUser(t)
	post := makePost(t, user)
	review := makeReview(t, user)

	_, err := Create(user, CreateRequest{Content: "hi"})
	assert.ErrorIs(t, err, models.ErrInvalidTarget)

	_, err = Create(user, CreateRequest{Content: "hi", PostID: &post.ID, ReviewID: &review.ID})
	assert.ErrorIs(t, err, models.ErrInvalidTarget)
}

func TestCreateRejectsMissingTarget(t *testing.T) {
	user := makeUser(t)
	missing := uint64(987654)
	_, err := Create(user, CreateRequest{Content: "hi", PostID: &missing})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateRejectsParentFromOtherThread(t *testing.T) {
	user := makeUser(t)
	postA := makePost(t, user)
	postB := makePost(t, user)
	parent, err := Create(user, CreateRequest{Content: "on A", PostID: &postA.ID})
	require.NoError(t, err)

	_, err = Create(user, CreateRequest{Content: "on B", PostID: &postB.ID, ParentCommentID: &parent.CommentID})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestForPostBuildsReplyTree(t *testing.T) {
	user := makeUser(t)
	post := makePost(t, user)
	root, err := Create(user, CreateRequest{Content: "root", PostID: &post.ID})
	require.NoError(t, err)
	reply, err := Create(user, CreateRequest{Content: "reply", PostID: &post.ID, ParentCommentID: &root.CommentID})
	require.NoError(t, err)
	_, err = Create(user, CreateRequest{Content: "nested", PostID: &post.ID, ParentCommentID: &reply.CommentID})
	require.NoError(t, err)

	forest, err := ForPost(post.ID)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "root", forest[0].Content)
	assert.Equal(t, user.Username, forest[0].User.Username)
	require.Len(t, forest[0].Replies, 1)
	require.Len(t, forest[0].Replies[0].Replies, 1)
	assert.Equal(t, "nested", forest[0].Replies[0].Replies[0].Content)
}

func TestCheckAncestryFlagsCycle(t *testing.T) {
	user := makeUser(t)
	post := makePost(t, user)
	c1, err := Create(user, CreateRequest{Content: "c1", PostID: &post.ID})
	require.NoError(t, err)
	c2, err := Create(user, CreateRequest{Content: "c2", PostID: &post.ID, ParentCommentID: &c1.CommentID})
	require.NoError(t, err)

	// Corrupt the chain directly: c1 now points at its own reply.
	require.NoError(t, db.Instance.Model(&models.Comment{}).
		Where("id = ?", c1.CommentID).
		Update("parent_comment_id", c2.CommentID).Error)

	err = checkAncestry(c1.CommentID, c2.CommentID)
	assert.ErrorIs(t, err, models.ErrCircularReference)

	// Without a descendant to look for, the bounded walk reports corruption.
	err = checkAncestry(c1.CommentID, 0)
	assert.ErrorIs(t, err, models.ErrInvariantViolation)

	// A reply attempt under the corrupted chain is rejected and not persisted.
	before := int64(0)
	db.Instance.Model(&models.Comment{}).Count(&before)
	_, err = Create(user, CreateRequest{Content: "nope", PostID: &post.ID, ParentCommentID: &c2.CommentID})
	assert.Error(t, err)
	after := int64(0)
	db.Instance.Model(&models.Comment{}).Count(&after)
	assert.Equal(t, before, after)

	// Restore so later tests see a sound store.
	require.NoError(t, db.Instance.Model(&models.Comment{}).
		Where("id = ?", c1.CommentID).
		Update("parent_comment_id", nil).Error)
}

func TestUpdateOwnership(t *testing.T) {
	owner := makeUser(t)
	other := makeUser(t)
	post := makePost(t, owner)
	comment, err := Create(owner, CreateRequest{Content: "mine", PostID: &post.ID})
	require.NoError(t, err)

	newContent := "edited"
	_, err = Update(other, comment.CommentID, UpdateRequest{Content: &newContent})
	assert.ErrorIs(t, err, models.ErrForbidden)

	admin := makeUser(t)
	require.NoError(t, db.Instance.Model(&models.User{}).
		Where("id = ?", admin.ID).
		Update("role", models.RoleAdmin).Error)
	admin.Role = models.RoleAdmin
	updated, err := Update(admin, comment.CommentID, UpdateRequest{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteCascadesToDescendants(t *testing.T) {
	user := makeUser(t)
	post := makePost(t, user)
	root, err := Create(user, CreateRequest{Content: "root", PostID: &post.ID})
	require.NoError(t, err)
	reply, err := Create(user, CreateRequest{Content: "reply", PostID: &post.ID, ParentCommentID: &root.CommentID})
	require.NoError(t, err)
	_, err = Create(user, CreateRequest{Content: "nested", PostID: &post.ID, ParentCommentID: &reply.CommentID})
	require.NoError(t, err)
	sibling, err := Create(user, CreateRequest{Content: "sibling", PostID: &post.ID})
	require.NoError(t, err)

	require.NoError(t, Delete(user, root.CommentID))

	forest, err := ForPost(post.ID)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, sibling.CommentID, forest[0].CommentID)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	owner := makeUser(t)
	other := makeUser(t)
	post := makePost(t, owner)
	comment, err := Create(owner, CreateRequest{Content: "mine", PostID: &post.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, Delete(other, comment.CommentID), models.ErrForbidden)
	_, err = Get(comment.CommentID)
	assert.NoError(t, err)
}

func TestRateOnlyAppliesToReviewComments(t *testing.T) {
	user := makeUser(t)
	post := makePost(t, user)
	review := makeReview(t, user)

	// A rate sneaking in on a post comment is discarded, on create and update.
	created, err := Create(user, CreateRequest{Content: "on a post", PostID: &post.ID, Rate: intPtr(5)})
	require.NoError(t, err)
	assert.Nil(t, created.Rate)
	updated, err := Update(user, created.CommentID, UpdateRequest{Rate: intPtr(3)})
	require.NoError(t, err)
	assert.Nil(t, updated.Rate)

	// On a review comment it sticks.
	rated, err := Create(user, CreateRequest{Content: "on a review", ReviewID: &review.ID, Rate: intPtr(5)})
	require.NoError(t, err)
	require.NotNil(t, rated.Rate)
	assert.Equal(t, 5, *rated.Rate)
}

func TestReviewAggregatesIgnoreUnratedComments(t *testing.T) {
	user := makeUser(t)
	review := makeReview(t, user)
	_, err := Create(user, CreateRequest{Content: "great", ReviewID: &review.ID, Rate: intPtr(4)})
	require.NoError(t, err)
	_, err = Create(user, CreateRequest{Content: "superb", ReviewID: &review.ID, Rate: intPtr(5)})
	require.NoError(t, err)
	unrated, err := Create(user, CreateRequest{Content: "no stars from me", ReviewID: &review.ID})
	require.NoError(t, err)

	count, average, err := models.ReviewAggregates(review.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.InDelta(t, 4.5, average, 0.0001)

	// Deleting the unrated comment changes the count but not the average.
	require.NoError(t, Delete(user, unrated.CommentID))
	count, average, err = models.ReviewAggregates(review.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 4.5, average, 0.0001)
}
