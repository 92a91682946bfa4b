package gormpersistence_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yatube/internal/domain"
	gormpersistence "yatube/internal/infra/persistence/gorm"
	"yatube/internal/infra/setup"
)

// newTestDB 打开一个独立的内存数据库并执行完整迁移
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// 每个测试一个命名的内存库，开启外键
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库只存在于连接上，固定为一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, setup.MigrateDB(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Password: "hash"}
	require.NoError(t, gormpersistence.NewGormUserRepository(db).Save(context.Background(), user))
	return user
}

func createGroup(t *testing.T, db *gorm.DB, slug string) *domain.Group {
	t.Helper()
	group := &domain.Group{Title: slug, Slug: slug}
	require.NoError(t, gormpersistence.NewGormGroupRepository(db).Save(context.Background(), group))
	return group
}

// createPost 以指定的发布时间创建帖子
func createPost(t *testing.T, db *gorm.DB, author *domain.User, groupID *uint, text string, at time.Time) *domain.Post {
	t.Helper()
	post := &domain.Post{AuthorID: author.ID, GroupID: groupID, Text: text, CreatedAt: at}
	require.NoError(t, gormpersistence.NewGormPostRepository(db).Create(context.Background(), post))
	return post
}

func uintPtr(v uint) *uint { return &v }
