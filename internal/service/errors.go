package service

import (
	"errors"

	"yatube/internal/repository"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed: username already exists")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("only the author can change this post")
	ErrInvalidInput         = errors.New("invalid input")
	ErrGroupSlugTaken       = errors.New("group slug already exists")
	ErrInternalServer       = errors.New("internal server error")
)

// mapRepoError 将仓库层的错误映射到服务层错误。
// notFound 是调用方在记录不存在时希望返回的错误。
func mapRepoError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return ErrInternalServer
}
