package Note

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/przwal/notesapp/service/Note"

	"github.com/gin-gonic/gin"
)

// GetNotes 分页获取笔记列表
func GetNotes(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
		})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "9"))

	list, err := Note.GlobalNoteService.GetNotes(userID.(string), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetNoteByID 获取单条笔记
func GetNoteByID(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
		})
		return
	}

	note, err := Note.GlobalNoteService.GetNoteByID(userID.(string), c.Param("id"))
	if err != nil {
		if errors.Is(err, Note.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, note)
}

// CreateNote 创建笔记
func CreateNote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
		})
		return
	}

	// 定义请求结构体（用于绑定和验证）
	type CreateNoteRequest struct {
		Title       string   `json:"title" binding:"required"`
		Content     string   `json:"content" binding:"required"`
		CategoryIDs []string `json:"categoryIds"`
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "参数错误: " + err.Error(),
		})
		return
	}

	note, err := Note.GlobalNoteService.CreateNote(userID.(string), req.Title, req.Content, req.CategoryIDs)
	if err != nil {
		switch {
		case errors.Is(err, Note.ErrEmptyCategoryIDs), errors.Is(err, Note.ErrEmptyTitleContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, Note.ErrCategoryForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "创建笔记失败"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "创建成功",
		"note":    note,
	})
}

// UpdateNote 更新笔记。categoryIds 省略或为空时不动关联，
// 非空时整体替换关联集合。
func UpdateNote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
		})
		return
	}

	type UpdateNoteRequest struct {
		Title       string   `json:"title" binding:"required"`
		Content     string   `json:"content" binding:"required"`
		CategoryIDs []string `json:"categoryIds"`
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "参数错误: " + err.Error(),
		})
		return
	}

	note, err := Note.GlobalNoteService.UpdateNote(userID.(string), c.Param("id"), req.Title, req.Content, req.CategoryIDs)
	if err != nil {
		switch {
		case errors.Is(err, Note.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, Note.ErrEmptyTitleContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, Note.ErrCategoryForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新笔记失败"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "更新成功",
		"note":    note,
	})
}

// DeleteNote 删除笔记
func DeleteNote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
		})
		return
	}

	if err := Note.GlobalNoteService.DeleteNote(userID.(string), c.Param("id")); err != nil {
		if errors.Is(err, Note.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "删除笔记失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "删除成功",
	})
}
