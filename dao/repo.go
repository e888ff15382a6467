package dao

import (
	"context"
	"errors"

	"Brandi/pkg/database"

	"gorm.io/gorm"
)

// Repo 通用的单表操作，所有方法都会沿用 ctx 中的事务
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

// Conn 当前请求应使用的连接
func (r *Repo[T]) Conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.Db)
}

func (r *Repo[T]) Model(ctx context.Context) *gorm.DB {
	return r.Conn(ctx).Model(new(T))
}

// FindByWhere 查询单条，不存在时返回 nil, nil
func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	err := r.Conn(ctx).Where(where, args...).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindAll(ctx context.Context, order string, where string, args ...any) ([]*T, error) {
	var items []*T
	q := r.Conn(ctx)
	if where != "" {
		q = q.Where(where, args...)
	}
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	if err := r.Model(ctx).Where(where, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 插入单条，影响行数不为 1 视为写入失败
func (r *Repo[T]) Create(ctx context.Context, data *T) error {
	res := r.Conn(ctx).Create(data)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected != 1 {
		return errWriteFailed("insert", res.RowsAffected, 1)
	}
	return nil
}

// CreateBatch 批量插入
func (r *Repo[T]) CreateBatch(ctx context.Context, data []*T) error {
	if len(data) == 0 {
		return nil
	}
	res := r.Conn(ctx).Create(data)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected != int64(len(data)) {
		return errWriteFailed("insert", res.RowsAffected, int64(len(data)))
	}
	return nil
}
