package comments

import (
	"html/template"
	"sort"

	"cardfeed/internal/models"
	"cardfeed/internal/utils"
)

// Tree 嵌套回复树节点
type Tree struct {
	models.Comment
	ContentHTML template.HTML `json:"content_html"`
	Replies     []*Tree       `json:"replies"`
}

// Assemble 将平铺评论集合组装为按帖子分组的回复树，深度不限
// 各层级均按发表时间倒序（最新在前）。纯转换，不修改入参也不访问存储
func Assemble(flat []models.Comment) map[uint][]*Tree {
	nodes := make(map[uint]*Tree, len(flat))
	for i := range flat {
		c := flat[i]
		nodes[c.ID] = &Tree{
			Comment:     c,
			ContentHTML: utils.RenderMarkdown(c.Content),
			Replies:     []*Tree{},
		}
	}

	forest := make(map[uint][]*Tree)
	for _, node := range nodes {
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		// 根评论（或父节点已不在集合中的悬挂评论）进入帖子分组
		forest[node.PostID] = append(forest[node.PostID], node)
	}

	for _, roots := range forest {
		sortTrees(roots)
	}
	for _, node := range nodes {
		sortTrees(node.Replies)
	}
	return forest
}

// sortTrees 最新在前，时间相同时按 ID 倒序保证稳定
func sortTrees(list []*Tree) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
