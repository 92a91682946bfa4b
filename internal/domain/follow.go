package domain

import "time"

// Follow 表示一条有向的关注关系：UserID 关注了 AuthorID。
// (user_id, author_id) 唯一，且不允许自己关注自己。
type Follow struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_pair;check:chk_follow_not_self,user_id <> author_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
