package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// UserIDKey 是 gin.Context 中保存当前用户 ID 的键
const UserIDKey = "user_id"

// ErrMissingAuthHeader 表示缺少 Authorization 头
var ErrMissingAuthHeader = errors.New("missing Authorization header")

// errInvalidUserIDClaim 表示 token 中的 user_id 不是正整数
var errInvalidUserIDClaim = errors.New("token user_id claim is missing or not a positive integer")

// Auth 返回一个要求登录的 Gin 中间件，用于验证 JWT token。
// jwtSecret: 用于验证签名的密钥，必须提供。
func Auth(jwtSecret string) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for Auth middleware")
	}

	return func(c *gin.Context) {
		userID, err := authenticate(c, jwtSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrMissingAuthHeader):
				logrus.Warn("Auth middleware: Missing Authorization header")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			case errors.Is(err, jwt.ErrTokenMalformed):
				logrus.Warnf("Auth middleware: Malformed token format: %v", err)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			case errors.Is(err, errInvalidUserIDClaim):
				logrus.WithError(err).Error("Auth middleware: Bad user_id claim")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Token processing error: invalid user_id"})
			default:
				logInvalidToken(err)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		logrus.WithField("user_id", userID).Debug("Auth middleware: User authenticated via JWT")
		c.Next()
	}
}

// OptionalAuth 在请求带有有效 token 时设置 user_id，否则按匿名用户继续处理。
// 用于匿名用户也能访问、但登录用户看到的内容不同的页面。
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for OptionalAuth middleware")
	}

	return func(c *gin.Context) {
		userID, err := authenticate(c, jwtSecret)
		switch {
		case err == nil:
			c.Set(UserIDKey, userID)
		case errors.Is(err, ErrMissingAuthHeader):
		default:
			logrus.WithError(err).Debug("OptionalAuth middleware: Ignoring invalid token")
		}
		c.Next()
	}
}

// CurrentUserID 返回当前登录用户的 ID，匿名用户返回 0。
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}

// authenticate 从请求中提取并验证 token，返回其中的用户 ID
func authenticate(c *gin.Context, secret string) (uint, error) {
	tokenStr, err := extractToken(c)
	if err != nil {
		return 0, err
	}
	claims, err := validateToken(tokenStr, secret)
	if err != nil {
		return 0, err
	}

	// JWT 数字默认为 float64，需要安全转换为 uint
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 || userIDFloat != float64(uint(userIDFloat)) {
		return 0, fmt.Errorf("%w: %v", errInvalidUserIDClaim, claims["user_id"])
	}
	return uint(userIDFloat), nil
}

func logInvalidToken(err error) {
	logCtx := logrus.WithError(err)
	logCtx.Warn("Auth middleware: Invalid token")

	var validationError *jwt.ValidationError
	if errors.As(err, &validationError) {
		if validationError.Errors&jwt.ValidationErrorExpired != 0 {
			logCtx.Warn("Reason: Token is expired")
		}
		if validationError.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
			logCtx.Warn("Reason: Token signature is invalid")
		}
	}
}

// extractToken 从 Gin 上下文中提取 Bearer Token
func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		// 浏览器无法为 WebSocket 握手设置 header，允许通过 ?token= 传递
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") && c.Query("token") != "" {
			return c.Query("token"), nil
		}
		return "", ErrMissingAuthHeader
	}
	// Authorization header 格式应为 "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", jwt.ErrTokenMalformed
	}
	return parts[1], nil
}

// validateToken 解析并验证 JWT token 字符串
func validateToken(tokenStr string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		// 只接受 HMAC 签名
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token or claims type")
}
