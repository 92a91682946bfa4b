package dto

// IndexView 是全站 feed 的响应，整个序列化结果会被缓存
type IndexView struct {
	Title string   `json:"title"`
	Page  PageView `json:"page_obj"`
}

// GroupFeedView 是社区 feed 的响应
type GroupFeedView struct {
	Group GroupView `json:"group"`
	Page  PageView  `json:"page_obj"`
}

// ProfileView 是个人主页的响应
type ProfileView struct {
	Author         AuthorView `json:"author"`
	PostsCount     int64      `json:"posts_count"`
	FollowersCount int64      `json:"followers_count"`
	FollowingCount int64      `json:"following_count"`
	Following      bool       `json:"following"`
	Page           PageView   `json:"page_obj"`
}

// FollowFeedView 是关注 feed 的响应
type FollowFeedView struct {
	Page PageView `json:"page_obj"`
}

// PostDetailView 是帖子详情的响应
type PostDetailView struct {
	Post             PostView      `json:"post"`
	AuthorPostsCount int64         `json:"author_posts_count"`
	Comments         []CommentView `json:"comments"`
	CommentFields    []string      `json:"comment_form_fields"`
	CanEdit          bool          `json:"can_edit"`
}

// PostFormView 描述创建或编辑帖子的表单，校验失败时带回提交值和错误
type PostFormView struct {
	IsEdit bool                `json:"is_edit"`
	PostID uint                `json:"post_id,omitempty"`
	Fields []string            `json:"fields"`
	Values map[string]string   `json:"values"`
	Errors map[string][]string `json:"errors,omitempty"`
	Groups []GroupView         `json:"groups"`
}

// CommentFormView 是评论校验失败时的响应
type CommentFormView struct {
	PostID uint                `json:"post_id"`
	Fields []string            `json:"fields"`
	Values map[string]string   `json:"values"`
	Errors map[string][]string `json:"errors"`
}

// Notification 是通过 websocket 推送给关注者的消息
type Notification struct {
	Type string   `json:"type"`
	Post PostView `json:"post"`
}
