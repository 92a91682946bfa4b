package http

import (
	"fmt"
	"net/url"
)

// 站内路径，与路由表保持一致
const (
	IndexPath  = "/"
	LoginPath  = "/auth/login/"
	FollowPath = "/follow/"
)

func ProfileURL(username string) string {
	return fmt.Sprintf("/profile/%s/", url.PathEscape(username))
}

func PostURL(postID uint) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func LoginURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(next)
}
