package http

import (
	"errors"
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler 封装了与用户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	if authService == nil {
		panic("AuthService cannot be nil for AuthHandler")
	}
	return &AuthHandler{authService: authService}
}

// SignupRequest 定义注册请求，支持 JSON 和表单提交
type SignupRequest struct {
	Username  string `json:"username" form:"username" binding:"required,max=150"`
	Password  string `json:"password" form:"password" binding:"required,min=6"`
	Email     string `json:"email" form:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name" form:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" form:"last_name" binding:"max=150"`
}

// Signup 处理用户注册请求，成功后跳转到首页
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Signup: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	newUser, err := h.authService.Register(c.Request.Context(), service.SignupInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, service.ErrRegistrationFailed) || errors.Is(err, service.ErrInvalidInput) {
			logrus.WithError(err).WithField("username", req.Username).Warn("Handler.Signup: Registration rejected")
		}
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("user_id", newUser.ID).Info("Handler.Signup: User registered successfully")
	RedirectResponse(c, "/", gin.H{
		"message":  "User registered successfully",
		"user_id":  newUser.ID,
		"username": newUser.Username,
	})
}

// LoginRequest 定义登录请求
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginResponse 定义登录成功的响应
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Next    string `json:"next,omitempty"`
}

// Login 处理用户登录请求。?next= 会原样带回，客户端据此跳转。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: username and password required"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		Next:    safeNext(c.Query("next")),
	})
}

// Me 返回当前登录用户
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, user)
}

// safeNext 只接受站内路径，防止开放跳转
func safeNext(next string) string {
	if len(next) < 1 || next[0] != '/' || (len(next) > 1 && (next[1] == '/' || next[1] == '\\')) {
		return ""
	}
	return next
}
