package book

import (
	"context"
)

// Service 图书领域服务：校验出版社/作者/分类引用是否存在
type Service interface {
	ValidateReferences(ctx context.Context, publisherID *uint, authorIDs, categoryIDs []uint) error
}

type service struct {
	publishers IDCounter
	authors    IDCounter
	categories IDCounter
}

// NewService 创建图书领域服务
func NewService(publishers IDCounter, authors IDCounter, categories IDCounter) Service {
	return &service{publishers: publishers, authors: authors, categories: categories}
}

// ValidateReferences 任一引用不存在即返回400类错误
func (s *service) ValidateReferences(ctx context.Context, publisherID *uint, authorIDs, categoryIDs []uint) error {
	if publisherID != nil {
		if err := checkAll(ctx, s.publishers, []uint{*publisherID}, ErrPublisherNotFound); err != nil {
			return err
		}
	}
	if err := checkAll(ctx, s.authors, authorIDs, ErrAuthorNotFound); err != nil {
		return err
	}
	return checkAll(ctx, s.categories, categoryIDs, ErrCategoryReference)
}

func checkAll(ctx context.Context, counter IDCounter, ids []uint, notFound error) error {
	ids = UniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	n, err := counter.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return notFound
	}
	return nil
}

// UniqueIDs 去重并保持原有顺序
func UniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
