package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note 笔记数据存储结构
type Note struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;not null;size:36" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// Category 分类数据存储结构（同一用户允许重名）
type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;not null;size:36" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// NoteCategory 笔记与分类的多对多关联表，除两个外键外无其他属性
type NoteCategory struct {
	ID         string `gorm:"primaryKey;size:36"`
	NoteID     string `gorm:"index;not null;size:36"`
	CategoryID string `gorm:"index;not null;size:36"`
}

func (nc *NoteCategory) BeforeCreate(tx *gorm.DB) error {
	if nc.ID == "" {
		nc.ID = uuid.NewString()
	}
	return nil
}

// CategoryResponse 分类响应结构体（只暴露 id 和 name）
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NoteResponse 带分类集合的笔记响应结构体
type NoteResponse struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Categories []CategoryResponse `json:"categories"`
}

// NoteListResponse 分页笔记列表响应
type NoteListResponse struct {
	Notes       []NoteResponse `json:"notes"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalNotes  int64          `json:"totalNotes"`
}
