package http

import (
	"yatube/internal/middleware"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

// FollowHandler 处理关注和取消关注
type FollowHandler struct {
	followService *service.FollowService
}

// NewFollowHandler 创建 FollowHandler 实例
func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	if followService == nil {
		panic("FollowService cannot be nil for FollowHandler")
	}
	return &FollowHandler{followService: followService}
}

// Follow 关注 URL 中的作者，然后跳转到其主页
func (h *FollowHandler) Follow(c *gin.Context) {
	author, err := h.followService.Follow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	RedirectResponse(c, ProfileURL(author.Username), gin.H{"following": true})
}

// Unfollow 取消关注 URL 中的作者，然后跳转到其主页
func (h *FollowHandler) Unfollow(c *gin.Context) {
	author, err := h.followService.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	RedirectResponse(c, ProfileURL(author.Username), gin.H{"following": false})
}
