package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id uint64, parentID *uint64) *Info {
	return &Info{CommentID: id, ParentCommentID: parentID, Replies: []*Info{}}
}

func ptr(v uint64) *uint64 {
	return &v
}

func countNodes(forest []*Info) int {
	total := 0
	for _, n := range forest {
		total += 1 + countNodes(n.Replies)
	}
	return total
}

func TestBuildTreeNesting(t *testing.T) {
	// 1 ← 2 ← 4, 1 ← 3, 5 top-level
	input := []*Info{
		node(1, nil),
		node(2, ptr(1)),
		node(3, ptr(1)),
		node(4, ptr(2)),
		node(5, nil),
	}
	forest := BuildTree(input)
	require.Len(t, forest, 2)
	assert.Equal(t, uint64(1), forest[0].CommentID)
	assert.Equal(t, uint64(5), forest[1].CommentID)
	require.Len(t, forest[0].Replies, 2)
	assert.Equal(t, uint64(2), forest[0].Replies[0].CommentID)
	assert.Equal(t, uint64(3), forest[0].Replies[1].CommentID)
	require.Len(t, forest[0].Replies[0].Replies, 1)
	assert.Equal(t, uint64(4), forest[0].Replies[0].Replies[0].CommentID)
	// Nothing lost, nothing duplicated
	assert.Equal(t, len(input), countNodes(forest))
}

func TestBuildTreeOrphanPromotion(t *testing.T) {
	// Parent 99 is not part of the input set
	forest := BuildTree([]*Info{
		node(1, nil),
		node(2, ptr(99)),
	})
	require.Len(t, forest, 2)
	assert.Equal(t, uint64(2), forest[1].CommentID)
}

func TestBuildTreePreservesInputOrder(t *testing.T) {
	input := []*Info{
		node(10, nil),
		node(11, ptr(10)),
		node(12, nil),
		node(13, ptr(10)),
		node(14, nil),
	}
	forest := BuildTree(input)
	require.Len(t, forest, 3)
	assert.Equal(t, uint64(10), forest[0].CommentID)
	assert.Equal(t, uint64(12), forest[1].CommentID)
	assert.Equal(t, uint64(14), forest[2].CommentID)
	require.Len(t, forest[0].Replies, 2)
	assert.Equal(t, uint64(11), forest[0].Replies[0].CommentID)
	assert.Equal(t, uint64(13), forest[0].Replies[1].CommentID)
}

func TestBuildTreeIsRepeatable(t *testing.T) {
	input := []*Info{
		node(1, nil),
		node(2, ptr(1)),
	}
	BuildTree(input)
	forest := BuildTree(input)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, 2, countNodes(forest))
}
