package Category

import (
	"errors"

	"github.com/przwal/notesapp/database"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("分类不存在")
	ErrCategoryInUse    = errors.New("分类仍被笔记引用，无法删除")
)

type CategoryServiceInterface interface {
	CreateCategory(userID, name string) (*database.Category, error)
	GetCategories(userID string) ([]database.Category, error)
	DeleteCategory(userID, id string) error
}

var GlobalCategoryService CategoryServiceInterface

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService() CategoryServiceInterface {
	service := &CategoryService{
		db: database.DB,
	}
	GlobalCategoryService = service
	return service
}

// CreateCategory 创建分类，同一用户允许重名
func (s *CategoryService) CreateCategory(userID, name string) (*database.Category, error) {
	if name == "" {
		return nil, errors.New("分类名不能为空")
	}
	category := &database.Category{
		UserID: userID,
		Name:   name,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategories 获取当前用户的所有分类
func (s *CategoryService) GetCategories(userID string) ([]database.Category, error) {
	var categories []database.Category
	err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&categories).Error
	return categories, err
}

// DeleteCategory 删除分类。仍被任何笔记引用的分类不允许删除；
// 不存在或属于他人的分类统一返回不存在。
func (s *CategoryService) DeleteCategory(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category database.Category
		err := tx.Where("user_id = ? AND id = ?", userID, id).First(&category).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&database.NoteCategory{}).
			Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrCategoryInUse
		}

		return tx.Delete(&category).Error
	})
}
