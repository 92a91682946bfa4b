// Package dto 定义 HTTP 响应中使用的数据结构。
package dto

import (
	"time"

	"yatube/internal/domain"
)

// MediaURL 是图片对外访问的路径前缀
const MediaURL = "/media/"

// AuthorView 是帖子作者或评论作者的公开信息
type AuthorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// GroupView 是社区的公开信息
type GroupView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// PostView 是帖子在列表和详情中的表示
type PostView struct {
	ID      uint       `json:"id"`
	Text    string     `json:"text"`
	PubDate time.Time  `json:"pub_date"`
	Author  AuthorView `json:"author"`
	Group   *GroupView `json:"group"`
	Image   string     `json:"image,omitempty"`
}

// CommentView 是评论的表示
type CommentView struct {
	ID      uint       `json:"id"`
	Text    string     `json:"text"`
	Created time.Time  `json:"created"`
	Author  AuthorView `json:"author"`
}

// PageView 是一页帖子
type PageView struct {
	Posts       []PostView `json:"posts"`
	Number      int        `json:"page"`
	NumPages    int        `json:"num_pages"`
	Count       int64      `json:"count"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
}

func NewAuthorView(u domain.User) AuthorView {
	return AuthorView{ID: u.ID, Username: u.Username, FullName: u.DisplayName()}
}

func NewGroupView(g domain.Group) GroupView {
	return GroupView{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

// ImageURL 把存储路径转换为可访问的 URL
func ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return MediaURL + path
}

func NewPostView(p domain.Post) PostView {
	v := PostView{
		ID:      p.ID,
		Text:    p.Text,
		PubDate: p.CreatedAt,
		Author:  NewAuthorView(p.Author),
		Image:   ImageURL(p.Image),
	}
	if p.Group != nil {
		g := NewGroupView(*p.Group)
		v.Group = &g
	}
	return v
}

func NewCommentView(c domain.Comment) CommentView {
	return CommentView{ID: c.ID, Text: c.Text, Created: c.CreatedAt, Author: NewAuthorView(c.Author)}
}

func NewPageView(page *domain.PostPage) PageView {
	posts := make([]PostView, 0, len(page.Posts))
	for _, p := range page.Posts {
		posts = append(posts, NewPostView(p))
	}
	return PageView{
		Posts:       posts,
		Number:      page.Number,
		NumPages:    page.NumPages,
		Count:       page.TotalCount,
		HasNext:     page.HasNext(),
		HasPrevious: page.HasPrevious(),
	}
}
