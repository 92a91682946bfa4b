package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"yatube/internal/domain"
	"yatube/internal/dto"
	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MaxImageSize 是上传图片的大小上限
const MaxImageSize = 10 << 20

// PostHandler 处理帖子和评论相关的请求
type PostHandler struct {
	postService  *service.PostService
	groupService *service.GroupService
	authService  *service.AuthService
}

// NewPostHandler 创建 PostHandler 实例
func NewPostHandler(postService *service.PostService, groupService *service.GroupService, authService *service.AuthService) *PostHandler {
	if postService == nil || groupService == nil || authService == nil {
		panic("Services cannot be nil for PostHandler")
	}
	return &PostHandler{postService: postService, groupService: groupService, authService: authService}
}

// Detail 返回帖子详情和评论
func (h *PostHandler) Detail(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	detail, err := h.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	comments := make([]dto.CommentView, 0, len(detail.Comments))
	for _, cm := range detail.Comments {
		comments = append(comments, dto.NewCommentView(cm))
	}
	SuccessResponse(c, http.StatusOK, dto.PostDetailView{
		Post:             dto.NewPostView(*detail.Post),
		AuthorPostsCount: detail.AuthorPostsCount,
		Comments:         comments,
		CommentFields:    forms.CommentFields,
		CanEdit:          detail.Post.IsAuthoredBy(middleware.CurrentUserID(c)),
	})
}

// CreateForm 返回空的发帖表单
func (h *PostHandler) CreateForm(c *gin.Context) {
	h.renderPostForm(c, http.StatusOK, dto.PostFormView{Values: map[string]string{}}, nil)
}

// Create 发布帖子，成功后跳转到作者主页
func (h *PostHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	in, err := readPostInput(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, in)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			h.renderPostForm(c, http.StatusBadRequest, dto.PostFormView{Values: postFormValues(in)}, verr)
			return
		}
		HandleServiceError(c, err)
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	RedirectResponse(c, ProfileURL(user.Username), gin.H{"post_id": post.ID})
}

// EditForm 返回带有当前内容的编辑表单，非作者跳转到帖子详情
func (h *PostHandler) EditForm(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	post, err := h.postService.GetPostForEdit(c.Request.Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			RedirectResponse(c, PostURL(postID), nil)
			return
		}
		HandleServiceError(c, err)
		return
	}
	h.renderPostForm(c, http.StatusOK, dto.PostFormView{
		IsEdit: true,
		PostID: post.ID,
		Values: currentPostValues(post),
	}, nil)
}

// Edit 更新帖子，成功或非作者时都跳转到帖子详情
func (h *PostHandler) Edit(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	in, err := readPostInput(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	_, err = h.postService.EditPost(c.Request.Context(), middleware.CurrentUserID(c), postID, in)
	if err != nil {
		var verr *forms.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderPostForm(c, http.StatusBadRequest, dto.PostFormView{IsEdit: true, PostID: postID, Values: postFormValues(in)}, verr)
		case errors.Is(err, service.ErrForbidden):
			RedirectResponse(c, PostURL(postID), nil)
		default:
			HandleServiceError(c, err)
		}
		return
	}
	RedirectResponse(c, PostURL(postID), nil)
}

// Delete 删除帖子，成功后跳转到作者主页
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	userID := middleware.CurrentUserID(c)
	if err := h.postService.DeletePost(c.Request.Context(), userID, postID); err != nil {
		HandleServiceError(c, err)
		return
	}
	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	RedirectResponse(c, ProfileURL(user.Username), nil)
}

// AddComment 添加评论后跳转到帖子详情。匿名请求不写入数据，直接跳转到登录页。
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	in := forms.CommentInput{Text: c.PostForm(forms.FieldText)}

	_, err := h.postService.AddComment(c.Request.Context(), middleware.CurrentUserID(c), postID, in)
	if err != nil {
		var verr *forms.ValidationError
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			RedirectResponse(c, LoginURL(c.Request.URL.Path), nil)
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, dto.CommentFormView{
				PostID: postID,
				Fields: forms.CommentFields,
				Values: map[string]string{forms.FieldText: in.Text},
				Errors: verr.FieldErrors(),
			})
		default:
			HandleServiceError(c, err)
		}
		return
	}
	RedirectResponse(c, PostURL(postID), nil)
}

// renderPostForm 补全表单的字段和社区列表后输出
func (h *PostHandler) renderPostForm(c *gin.Context, code int, view dto.PostFormView, verr *forms.ValidationError) {
	groups, err := h.groupService.ListGroups(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	view.Fields = forms.PostFields
	view.Groups = make([]dto.GroupView, 0, len(groups))
	for _, g := range groups {
		view.Groups = append(view.Groups, dto.NewGroupView(g))
	}
	if verr != nil {
		view.Errors = verr.FieldErrors()
	}
	c.JSON(code, view)
}

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil || id == 0 {
		NotFoundResponse(c)
		return 0, false
	}
	return uint(id), true
}

// readPostInput 读取 multipart 或 urlencoded 表单
func readPostInput(c *gin.Context) (forms.PostInput, error) {
	in := forms.PostInput{
		Text:  c.PostForm(forms.FieldText),
		Group: c.PostForm(forms.FieldGroup),
	}

	fh, err := c.FormFile(forms.FieldImage)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return in, nil
		}
		logrus.WithError(err).Warn("Handler: Failed to read uploaded image")
		return in, fmt.Errorf("could not read uploaded image")
	}
	if fh.Size > MaxImageSize {
		return in, fmt.Errorf("image is larger than %d bytes", MaxImageSize)
	}

	f, err := fh.Open()
	if err != nil {
		return in, fmt.Errorf("could not open uploaded image")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize))
	if err != nil {
		return in, fmt.Errorf("could not read uploaded image")
	}
	in.Image = &forms.Upload{Filename: fh.Filename, Data: data}
	return in, nil
}

func postFormValues(in forms.PostInput) map[string]string {
	return map[string]string{forms.FieldText: in.Text, forms.FieldGroup: in.Group}
}

func currentPostValues(p *domain.Post) map[string]string {
	values := map[string]string{forms.FieldText: p.Text, forms.FieldGroup: ""}
	if p.GroupID != nil {
		values[forms.FieldGroup] = strconv.FormatUint(uint64(*p.GroupID), 10)
	}
	if p.HasImage() {
		values[forms.FieldImage] = dto.ImageURL(p.Image)
	}
	return values
}
