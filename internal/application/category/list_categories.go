package category

import (
	"context"

	"github.com/xiebiao/bookstore-admin/internal/domain/category"
)

// ListCategoriesUseCase 分类列表（按名称排序，含图书数量）
type ListCategoriesUseCase struct {
	categoryRepo category.Repository
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(categoryRepo category.Repository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = newCategoryResponse(c)
	}
	return out, nil
}
