package Note

import (
	"errors"
	"math"

	"github.com/przwal/notesapp/database"

	"gorm.io/gorm"
)

// 笔记与关联相关的哨兵错误
var (
	// ErrNoteNotFound 笔记不存在和笔记属于他人返回同一个错误，避免暴露资源是否存在
	ErrNoteNotFound      = errors.New("笔记不存在")
	ErrEmptyTitleContent = errors.New("标题和内容不能为空")
	ErrEmptyCategoryIDs  = errors.New("至少需要一个分类")
	ErrCategoryForbidden = errors.New("部分分类无效或不属于当前用户")
)

type NoteServiceInterface interface {
	CreateNote(userID, title, content string, categoryIDs []string) (*database.NoteResponse, error)
	GetNotes(userID string, page, pageSize int) (*database.NoteListResponse, error)
	GetNoteByID(userID, id string) (*database.NoteResponse, error)
	UpdateNote(userID, id, title, content string, categoryIDs []string) (*database.NoteResponse, error)
	DeleteNote(userID, id string) error
}

var GlobalNoteService NoteServiceInterface

type NoteService struct {
	db    *gorm.DB
	cache NoteCacheInterface
}

func NewNoteService() NoteServiceInterface {
	service := &NoteService{
		db:    database.DB,
		cache: NewNoteCache(database.GetRedis()),
	}
	GlobalNoteService = service
	return service
}

// validateCategories 把请求的分类ID集合解析到当前用户名下的分类。
// 解析出的数量与请求数量不一致（有ID不存在或属于他人）即整体拒绝，
// 不逐个报告是哪一个。
func validateCategories(tx *gorm.DB, userID string, categoryIDs []string) ([]database.Category, error) {
	var categories []database.Category
	err := tx.Where("user_id = ? AND id IN ?", userID, categoryIDs).Find(&categories).Error
	if err != nil {
		return nil, err
	}
	if len(categories) != len(categoryIDs) {
		return nil, ErrCategoryForbidden
	}
	return categories, nil
}

// replaceCategories 整体替换笔记的关联集合：先删光旧关联，再写入新关联。
// 必须在调用方的事务内执行。
func replaceCategories(tx *gorm.DB, noteID string, categories []database.Category) error {
	if err := tx.Where("note_id = ?", noteID).Delete(&database.NoteCategory{}).Error; err != nil {
		return err
	}
	for _, category := range categories {
		link := database.NoteCategory{
			NoteID:     noteID,
			CategoryID: category.ID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func toCategoryResponses(categories []database.Category) []database.CategoryResponse {
	responses := make([]database.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, database.CategoryResponse{
			ID:   category.ID,
			Name: category.Name,
		})
	}
	return responses
}

func toNoteResponse(note *database.Note, categories []database.Category) *database.NoteResponse {
	return &database.NoteResponse{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
		Categories: toCategoryResponses(categories),
	}
}

// loadNoteCategories 查询单个笔记当前关联的分类
func loadNoteCategories(tx *gorm.DB, noteID string) ([]database.Category, error) {
	var categories []database.Category
	err := tx.
		Joins("JOIN note_categories ON note_categories.category_id = categories.id").
		Where("note_categories.note_id = ?", noteID).
		Order("categories.created_at ASC").
		Find(&categories).Error
	return categories, err
}

// CreateNote 创建笔记。分类校验、笔记写入和关联写入在同一个事务内完成，
// 任何一步失败都不会留下半成品。
func (s *NoteService) CreateNote(userID, title, content string, categoryIDs []string) (*database.NoteResponse, error) {
	if title == "" || content == "" {
		return nil, ErrEmptyTitleContent
	}
	if len(categoryIDs) == 0 {
		return nil, ErrEmptyCategoryIDs
	}

	note := database.Note{
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	var categories []database.Category

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		categories, err = validateCategories(tx, userID, categoryIDs)
		if err != nil {
			return err
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return replaceCategories(tx, note.ID, categories)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateNoteLists(userID)
	return toNoteResponse(&note, categories), nil
}

// GetNotes 分页获取当前用户的笔记，按创建时间倒序，每条带分类集合
func (s *NoteService) GetNotes(userID string, page, pageSize int) (*database.NoteListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 9
	}
	if pageSize > 100 {
		pageSize = 100
	}

	// 命中缓存则跳过数据库
	if cached, err := s.cache.GetCachedNoteList(userID, page, pageSize); err == nil && cached != nil {
		return cached, nil
	}

	var total int64
	if err := s.db.Model(&database.Note{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var notes []database.Note
	offset := (page - 1) * pageSize
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	// 批量加载本页笔记的关联分类
	noteCategories := make(map[string][]database.CategoryResponse)
	if len(notes) > 0 {
		noteIDs := make([]string, 0, len(notes))
		for _, note := range notes {
			noteIDs = append(noteIDs, note.ID)
		}

		var links []database.NoteCategory
		if err := s.db.Where("note_id IN ?", noteIDs).Find(&links).Error; err != nil {
			return nil, err
		}

		categoryIDs := make([]string, 0, len(links))
		for _, link := range links {
			categoryIDs = append(categoryIDs, link.CategoryID)
		}

		categoryMap := make(map[string]database.CategoryResponse)
		if len(categoryIDs) > 0 {
			var categories []database.Category
			if err := s.db.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
				return nil, err
			}
			for _, category := range categories {
				categoryMap[category.ID] = database.CategoryResponse{
					ID:   category.ID,
					Name: category.Name,
				}
			}
		}

		for _, link := range links {
			if category, ok := categoryMap[link.CategoryID]; ok {
				noteCategories[link.NoteID] = append(noteCategories[link.NoteID], category)
			}
		}
	}

	noteResponses := make([]database.NoteResponse, 0, len(notes))
	for i := range notes {
		categories := noteCategories[notes[i].ID]
		if categories == nil {
			categories = []database.CategoryResponse{}
		}
		noteResponses = append(noteResponses, database.NoteResponse{
			ID:         notes[i].ID,
			Title:      notes[i].Title,
			Content:    notes[i].Content,
			CreatedAt:  notes[i].CreatedAt,
			UpdatedAt:  notes[i].UpdatedAt,
			Categories: categories,
		})
	}

	list := &database.NoteListResponse{
		Notes:       noteResponses,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(pageSize))),
		TotalNotes:  total,
	}

	s.cache.CacheNoteList(userID, page, pageSize, list)
	return list, nil
}

// GetNoteByID 根据ID获取笔记，查询始终限定在当前用户名下
func (s *NoteService) GetNoteByID(userID, id string) (*database.NoteResponse, error) {
	var note database.Note
	err := s.db.Where("user_id = ? AND id = ?", userID, id).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	categories, err := loadNoteCategories(s.db, note.ID)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(&note, categories), nil
}

// UpdateNote 更新笔记。标题和内容总是整体覆盖；categoryIDs 非空时
// 重新校验所有权并整体替换关联集合，为空时关联保持不变。
func (s *NoteService) UpdateNote(userID, id, title, content string, categoryIDs []string) (*database.NoteResponse, error) {
	if title == "" || content == "" {
		return nil, ErrEmptyTitleContent
	}

	var note database.Note
	var categories []database.Category

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND id = ?", userID, id).First(&note).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoteNotFound
			}
			return err
		}

		if len(categoryIDs) > 0 {
			categories, err = validateCategories(tx, userID, categoryIDs)
			if err != nil {
				return err
			}
			if err := replaceCategories(tx, note.ID, categories); err != nil {
				return err
			}
		}

		note.Title = title
		note.Content = content
		if err := tx.Save(&note).Error; err != nil {
			return err
		}

		// 未传分类时返回现有关联
		if len(categoryIDs) == 0 {
			categories, err = loadNoteCategories(tx, note.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateNoteLists(userID)
	return toNoteResponse(&note, categories), nil
}

// DeleteNote 删除笔记，先清掉全部关联再删笔记本身。
// 成为孤儿的分类不做清理。
func (s *NoteService) DeleteNote(userID, id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var note database.Note
		err := tx.Where("user_id = ? AND id = ?", userID, id).First(&note).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoteNotFound
			}
			return err
		}

		if err := tx.Where("note_id = ?", note.ID).Delete(&database.NoteCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&note).Error
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateNoteLists(userID)
	return nil
}
