// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import "time"

// User 表示应用程序中的用户 (作者、评论者、关注者)。
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex:idx_username;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"` // bcrypt 哈希
	Email     string    `gorm:"type:varchar(191)" json:"email,omitempty"`
	FirstName string    `gorm:"type:varchar(150)" json:"first_name,omitempty"`
	LastName  string    `gorm:"type:varchar(150)" json:"last_name,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// DisplayName 返回展示用的名字，没有姓名时退回用户名。
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}
