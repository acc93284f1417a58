package Category

import (
	"errors"
	"net/http"

	"github.com/przwal/notesapp/database"
	"github.com/przwal/notesapp/service/Category"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取当前用户的所有分类
func GetCategories(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
		})
		return
	}

	categories, err := Category.GlobalCategoryService.GetCategories(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	responses := make([]database.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, database.CategoryResponse{
			ID:   category.ID,
			Name: category.Name,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// CreateCategory 创建分类
func CreateCategory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
		})
		return
	}

	type CreateCategoryRequest struct {
		Name string `json:"name" binding:"required,max=100"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "参数错误: " + err.Error(),
		})
		return
	}

	category, err := Category.GlobalCategoryService.CreateCategory(userID.(string), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory 删除分类，仍被笔记引用的分类会被拒绝
func DeleteCategory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
		})
		return
	}

	id := c.Param("id")
	if err := Category.GlobalCategoryService.DeleteCategory(userID.(string), id); err != nil {
		switch {
		case errors.Is(err, Category.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, Category.ErrCategoryInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "删除分类失败"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "删除成功",
	})
}
