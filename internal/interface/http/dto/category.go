package dto

import "strings"

// CategoryRequest 新增/修改分类
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=150"`
	Description string `json:"description" binding:"max=500"`
}

func (r *CategoryRequest) ApplyDefaults() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}
