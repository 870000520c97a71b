package models

import (
	"os"
	"testing"

	"github.com/vanbenpham/forunime-backend/config"
	"github.com/vanbenpham/forunime-backend/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.SQLITE_FILE = "file::memory:?cache=shared"
	db.Init()
	Init()
	os.Exit(m.Run())
}

func countWhere(t *testing.T, model interface{}, condition string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Instance.Model(model).Where(condition, args...).Count(&count).Error)
	return count
}

func TestPostDeleteRemovesCommentTree(t *testing.T) {
	user, err := UserCreate("poster@example.com", "poster", "secret123")
	require.NoError(t, err)
	post := Post{Content: "a post", UserID: user.ID}
	require.NoError(t, db.Instance.Create(&post).Error)
	root := Comment{Content: "root", UserID: user.ID, PostID: &post.ID}
	require.NoError(t, db.Instance.Create(&root).Error)
	reply := Comment{Content: "reply", UserID: user.ID, PostID: &post.ID, ParentCommentID: &root.ID}
	require.NoError(t, db.Instance.Create(&reply).Error)

	require.NoError(t, PostDelete(&post))

	assert.Zero(t, countWhere(t, &Comment{}, "post_id = ?", post.ID),
		"comments of a deleted post should be gone")
	assert.Zero(t, countWhere(t, &Post{}, "id = ?", post.ID))
}

func TestReviewDeleteRemovesComments(t *testing.T) {
	user, err := UserCreate("reviewer@example.com", "reviewer", "secret123")
	require.NoError(t, err)
	review := Review{Name: "some anime", Type: "anime", Description: "plot", FeedbackOwnerID: user.ID}
	require.NoError(t, db.Instance.Create(&review).Error)
	rate := 4
	comment := Comment{Content: "rated", UserID: user.ID, ReviewID: &review.ID, Rate: &rate}
	require.NoError(t, db.Instance.Create(&comment).Error)

	require.NoError(t, ReviewDelete(&review))

	assert.Zero(t, countWhere(t, &Comment{}, "review_id = ?", review.ID),
		"comments of a deleted review should be gone")
	assert.Zero(t, countWhere(t, &Review{}, "id = ?", review.ID))
}

func TestGroupDeleteRemovesMembershipsAndMessages(t *testing.T) {
	owner, err := UserCreate("gowner@example.com", "gowner", "secret123")
	require.NoError(t, err)
	member, err := UserCreate("gmember@example.com", "gmember", "secret123")
	require.NoError(t, err)
	group := Group{GroupName: "short-lived", OwnerID: owner.ID}
	require.NoError(t, db.Instance.Create(&group).Error)
	link := GroupUser{GroupID: group.ID, UserID: member.ID, Role: GroupRoleMember}
	require.NoError(t, db.Instance.Create(&link).Error)
	message := Message{Content: "in the group", SenderID: &owner.ID, GroupID: &group.ID}
	require.NoError(t, db.Instance.Create(&message).Error)

	require.NoError(t, GroupDelete(&group))

	assert.Zero(t, countWhere(t, &GroupUser{}, "group_id = ?", group.ID))
	assert.Zero(t, countWhere(t, &Message{}, "group_id = ?", group.ID),
		"messages of a deleted group should be gone")
	assert.Zero(t, countWhere(t, &Group{}, "id = ?", group.ID))
}
