package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yatube/internal/domain"
)

// MigrateDB 迁移所有表并确认 follows 表上的约束存在。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	// 顺序很重要：被引用的表先建
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Group{},
		&domain.Post{},
		&domain.Comment{},
		&domain.Follow{},
	)
	if err != nil {
		logrus.Errorf("Failed to auto-migrate tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	if err := ensureFollowConstraints(db); err != nil {
		return fmt.Errorf("failed to migrate follows constraints: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

// ensureFollowConstraints 补建 (user_id, author_id) 唯一索引和禁止自关注的检查约束。
// 旧表可能是在这些约束加入之前创建的，AutoMigrate 不会为已存在的表补 CHECK。
func ensureFollowConstraints(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasIndex(&domain.Follow{}, "idx_follow_pair") {
		if err := m.CreateIndex(&domain.Follow{}, "idx_follow_pair"); err != nil {
			logrus.Errorf("Failed to create follow pair index: %v", err)
			return err
		}
		logrus.Info("Follow pair unique index created")
	}
	if !m.HasConstraint(&domain.Follow{}, "chk_follow_not_self") {
		if err := m.CreateConstraint(&domain.Follow{}, "chk_follow_not_self"); err != nil {
			// 某些 MySQL 版本不支持 CHECK，服务层仍会拦截自关注
			logrus.Warnf("Could not create follow self-check constraint: %v", err)
		}
	}
	return nil
}
