package comments

import (
	"testing"
	"time"

	"cardfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(minute int) time.Time {
	return time.Date(2026, 3, 1, 12, minute, 0, 0, time.UTC)
}

func flatComment(id, postID uint, parentID *uint, createdAt time.Time) models.Comment {
	return models.Comment{
		ID:        id,
		PostID:    postID,
		UserID:    1,
		ParentID:  parentID,
		Content:   "c",
		CreatedAt: createdAt,
	}
}

func ptr(v uint) *uint { return &v }

func TestAssembleDeepNesting(t *testing.T) {
	// 六层链：1 <- 2 <- 3 <- 4 <- 5 <- 6，乱序输入
	flat := []models.Comment{
		flatComment(4, 10, ptr(3), at(4)),
		flatComment(1, 10, nil, at(1)),
		flatComment(6, 10, ptr(5), at(6)),
		flatComment(2, 10, ptr(1), at(2)),
		flatComment(5, 10, ptr(4), at(5)),
		flatComment(3, 10, ptr(2), at(3)),
	}

	forest := Assemble(flat)
	require.Len(t, forest, 1)
	require.Len(t, forest[10], 1)

	node := forest[10][0]
	for want := uint(1); want <= 6; want++ {
		require.NotNil(t, node, "chain broke at %d", want)
		assert.Equal(t, want, node.ID)
		if want < 6 {
			require.Len(t, node.Replies, 1)
			node = node.Replies[0]
		} else {
			assert.Empty(t, node.Replies)
		}
	}
}

func TestAssembleGroupsByPostNewestFirst(t *testing.T) {
	flat := []models.Comment{
		flatComment(1, 10, nil, at(1)),
		flatComment(2, 10, nil, at(5)),
		flatComment(3, 10, nil, at(3)),
		flatComment(4, 20, nil, at(2)),
		// 同一父节点下的两条回复，新的在前
		flatComment(5, 10, ptr(1), at(2)),
		flatComment(6, 10, ptr(1), at(4)),
	}

	forest := Assemble(flat)
	require.Len(t, forest, 2)

	rootIDs := []uint{}
	for _, n := range forest[10] {
		rootIDs = append(rootIDs, n.ID)
	}
	assert.Equal(t, []uint{2, 3, 1}, rootIDs)

	require.Len(t, forest[20], 1)
	assert.Equal(t, uint(4), forest[20][0].ID)

	var first *Tree
	for _, n := range forest[10] {
		if n.ID == 1 {
			first = n
		}
	}
	require.NotNil(t, first)
	require.Len(t, first.Replies, 2)
	assert.Equal(t, uint(6), first.Replies[0].ID)
	assert.Equal(t, uint(5), first.Replies[1].ID)
}

func TestAssembleDoesNotMutateInput(t *testing.T) {
	flat := []models.Comment{
		flatComment(1, 10, nil, at(1)),
		flatComment(2, 10, ptr(1), at(2)),
	}
	snapshot := make([]models.Comment, len(flat))
	copy(snapshot, flat)

	Assemble(flat)

	assert.Equal(t, snapshot, flat)
}

func TestAssembleEmpty(t *testing.T) {
	forest := Assemble(nil)
	assert.Empty(t, forest)
}

func TestAssembleRendersContentHTML(t *testing.T) {
	flat := []models.Comment{
		{ID: 1, PostID: 10, UserID: 1, Content: "**bold**", CreatedAt: at(1)},
	}

	forest := Assemble(flat)
	require.Len(t, forest[10], 1)
	assert.Contains(t, string(forest[10][0].ContentHTML), "<strong>bold</strong>")
}
