package domain

import "time"

// Post 表示一篇帖子。
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_post_created"` // 发布时间，决定 feed 排序
	AuthorID  uint      `gorm:"index;not null"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID   *uint     `gorm:"index"` // 可为空
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image     string    `gorm:"type:varchar(255)"` // 相对于 media 根目录的路径，例如 posts/xxx.png

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// HasImage 报告帖子是否带有图片附件。
func (p Post) HasImage() bool { return p.Image != "" }

// IsAuthoredBy 报告 userID 是否为帖子作者。
func (p Post) IsAuthoredBy(userID uint) bool { return userID != 0 && p.AuthorID == userID }
