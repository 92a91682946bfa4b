package domain

// PostPage 是 feed 的一页结果。
type PostPage struct {
	Posts      []Post
	Number     int   // 当前页码，从 1 开始
	NumPages   int   // 总页数，至少为 1
	TotalCount int64 // 匹配的帖子总数
}

// HasNext 报告是否存在下一页。
func (p PostPage) HasNext() bool { return p.Number < p.NumPages }

// HasPrevious 报告是否存在上一页。
func (p PostPage) HasPrevious() bool { return p.Number > 1 }
