package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/bookstore-admin/internal/application/category"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	listUseCase   *appcategory.ListCategoriesUseCase
	getUseCase    *appcategory.GetCategoryUseCase
	createUseCase *appcategory.CreateCategoryUseCase
	updateUseCase *appcategory.UpdateCategoryUseCase
	deleteUseCase *appcategory.DeleteCategoryUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(
	listUseCase *appcategory.ListCategoriesUseCase,
	getUseCase *appcategory.GetCategoryUseCase,
	createUseCase *appcategory.CreateCategoryUseCase,
	updateUseCase *appcategory.UpdateCategoryUseCase,
	deleteUseCase *appcategory.DeleteCategoryUseCase,
) *CategoryHandler {
	return &CategoryHandler{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List 分类列表
// @Summary      分类列表（含图书数量）
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcategory.CategoryResponse}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	resp, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Get 分类详情
// @Summary      分类详情（含最新10本图书）
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appcategory.CategoryDetailResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Create 新增分类
// @Summary      新增分类（管理员）
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类"
// @Success      201 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      409 {object} response.Response "名称已存在"
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.createUseCase.Execute(c.Request.Context(), appcategory.CategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Category created successfully", resp)
}

// Update 修改分类
// @Summary      修改分类（管理员）
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.CategoryRequest true "分类"
// @Success      200 {object} response.Response{data=appcategory.CategoryResponse}
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.updateUseCase.Execute(c.Request.Context(), id, appcategory.CategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMessage(c, "Category updated successfully", resp)
}

// Delete 删除分类
// @Summary      删除分类（管理员）
// @Description  仍有图书关联时返回400
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "分类下仍有图书"
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Category deleted successfully")
}
