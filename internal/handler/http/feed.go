package http

import (
	"net/http"

	"yatube/internal/dto"
	"yatube/internal/feed"
	"yatube/internal/middleware"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedHandler 处理各类帖子列表
type FeedHandler struct {
	feedService *service.FeedService
}

// NewFeedHandler 创建 FeedHandler 实例
func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	if feedService == nil {
		panic("FeedService cannot be nil for FeedHandler")
	}
	return &FeedHandler{feedService: feedService}
}

// Index 返回全站 feed，响应体来自缓存
func (h *FeedHandler) Index(c *gin.Context) {
	payload, err := h.feedService.GlobalFeed(c.Request.Context(), feed.ParsePage(c.Query("page")))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	RawJSONResponse(c, http.StatusOK, payload)
}

// Group 返回社区 feed
func (h *FeedHandler) Group(c *gin.Context) {
	result, err := h.feedService.GroupFeed(c.Request.Context(), c.Param("slug"), feed.ParsePage(c.Query("page")))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.GroupFeedView{
		Group: dto.NewGroupView(*result.Group),
		Page:  dto.NewPageView(result.Page),
	})
}

// Profile 返回作者主页
func (h *FeedHandler) Profile(c *gin.Context) {
	result, err := h.feedService.ProfileFeed(
		c.Request.Context(),
		c.Param("username"),
		middleware.CurrentUserID(c),
		feed.ParsePage(c.Query("page")),
	)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.ProfileView{
		Author:         dto.NewAuthorView(*result.Author),
		PostsCount:     result.Page.TotalCount,
		FollowersCount: result.FollowersCount,
		FollowingCount: result.FollowingCount,
		Following:      result.Following,
		Page:           dto.NewPageView(result.Page),
	})
}

// Follow 返回当前用户关注的作者的帖子
func (h *FeedHandler) Follow(c *gin.Context) {
	page, err := h.feedService.FollowFeed(c.Request.Context(), middleware.CurrentUserID(c), feed.ParsePage(c.Query("page")))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.FollowFeedView{Page: dto.NewPageView(page)})
}
