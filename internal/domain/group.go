package domain

// Group 表示一个主题社区，帖子可以选择归属其中之一。
// 社区只通过管理命令创建。
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string `gorm:"type:varchar(191);uniqueIndex:idx_group_slug;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}
