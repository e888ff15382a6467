package dao

import (
	"context"
	"time"

	"Brandi/pkg/database"
	"Brandi/pkg/errs"
	"Brandi/pkg/temporal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Version 约束版本表模型的指针类型
type Version[T any] interface {
	*T
	temporal.Versioned
}

func keyAt(f temporal.Family) string {
	return f.KeyColumn + " = ? AND start_time <= ? AND close_time > ?"
}

func keyOpen(f temporal.Family) string {
	return f.KeyColumn + " = ? AND close_time = ?"
}

// ResolveAt 返回 entityID 在 t 时刻有效的唯一版本。
// 最多取两行：一行即结果，零行 NotFound，两行说明区间重叠。
func ResolveAt[T any](ctx context.Context, db *gorm.DB, f temporal.Family, entityID uint64, t time.Time) (*T, error) {
	var rows []*T
	err := database.Conn(ctx, db).
		Where(keyAt(f), entityID, t, t).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return temporal.Single(f, entityID, rows)
}

// ResolveSetAt 返回按集合换版本的实体在 t 时刻有效的全部行
func ResolveSetAt[T any](ctx context.Context, db *gorm.DB, f temporal.Family, entityID uint64, t time.Time, order string) ([]*T, error) {
	var rows []*T
	err := database.Conn(ctx, db).
		Where(keyAt(f), entityID, t, t).
		Order(order).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func lockOpen[T any](tx *gorm.DB, f temporal.Family, entityID uint64, limit int) ([]*T, error) {
	var rows []*T
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(keyOpen(f), entityID, temporal.OpenEnd)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func closeOpen[T any](tx *gorm.DB, f temporal.Family, entityID uint64, now time.Time, want int64) error {
	res := tx.Model(new(T)).
		Where(keyOpen(f), entityID, temporal.OpenEnd).
		Update("close_time", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != want {
		return errWriteFailed("close "+f.Name, res.RowsAffected, want)
	}
	return nil
}

func lockSingleOpen[T any, PT Version[T]](tx *gorm.DB, f temporal.Family, entityID uint64, now time.Time) error {
	rows, err := lockOpen[T](tx, f, entityID, 2)
	if err != nil {
		return err
	}
	switch len(rows) {
	case 0:
		return errs.Invariant("%s: no open version for %s=%d", f.Name, f.KeyColumn, entityID)
	case 1:
		return temporal.CheckSuccession(f, entityID, PT(rows[0]).Span().StartTime, now)
	default:
		return errs.Invariant("%s: %d open versions for %s=%d", f.Name, len(rows), f.KeyColumn, entityID)
	}
}

func insertVersions(tx *gorm.DB, f temporal.Family, rows any, want int64) error {
	res := tx.Create(rows)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected != want {
		return errWriteFailed("insert "+f.Name, res.RowsAffected, want)
	}
	return nil
}

// Revise 关闭 entityID 当前版本并插入 next 作为新的当前版本，两步在同一事务内完成。
// 成功后 next 的主键即新版本号。
func Revise[T any, PT Version[T]](ctx context.Context, db *gorm.DB, f temporal.Family, entityID uint64, next PT, now time.Time) error {
	return database.Transaction(ctx, db, func(ctx context.Context) error {
		tx := database.Conn(ctx, db)
		if err := lockSingleOpen[T, PT](tx, f, entityID, now); err != nil {
			return err
		}
		if err := closeOpen[T](tx, f, entityID, now, 1); err != nil {
			return err
		}
		next.Open(now)
		return insertVersions(tx, f, next, 1)
	})
}

// Close 关闭当前版本且不再开新版本，用于实体本身被删除的情况
func Close[T any, PT Version[T]](ctx context.Context, db *gorm.DB, f temporal.Family, entityID uint64, now time.Time) error {
	return database.Transaction(ctx, db, func(ctx context.Context) error {
		tx := database.Conn(ctx, db)
		if err := lockSingleOpen[T, PT](tx, f, entityID, now); err != nil {
			return err
		}
		return closeOpen[T](tx, f, entityID, now, 1)
	})
}

// ReplaceSet 一个实体同时拥有多条当前行时（商品图片），整体关闭后插入新集合
func ReplaceSet[T any, PT Version[T]](ctx context.Context, db *gorm.DB, f temporal.Family, entityID uint64, next []PT, now time.Time) error {
	if len(next) == 0 {
		return errs.Invalid(f.Name + "_EMPTY_SET")
	}
	return database.Transaction(ctx, db, func(ctx context.Context) error {
		tx := database.Conn(ctx, db)
		rows, err := lockOpen[T](tx, f, entityID, 0)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return errs.Invariant("%s: no open version for %s=%d", f.Name, f.KeyColumn, entityID)
		}
		for _, row := range rows {
			if err := temporal.CheckSuccession(f, entityID, PT(row).Span().StartTime, now); err != nil {
				return err
			}
		}
		if err := closeOpen[T](tx, f, entityID, now, int64(len(rows))); err != nil {
			return err
		}
		for _, v := range next {
			v.Open(now)
		}
		return insertVersions(tx, f, next, int64(len(next)))
	})
}

// OpenVersion 为新实体写入第一个版本，已有当前版本时拒绝
func OpenVersion[T any, PT Version[T]](ctx context.Context, db *gorm.DB, f temporal.Family, entityID uint64, first []PT, now time.Time) error {
	if len(first) == 0 {
		return errs.Invalid(f.Name + "_EMPTY_SET")
	}
	return database.Transaction(ctx, db, func(ctx context.Context) error {
		tx := database.Conn(ctx, db)
		rows, err := lockOpen[T](tx, f, entityID, 1)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			return errs.Invariant("%s: %s=%d already has an open version", f.Name, f.KeyColumn, entityID)
		}
		for _, v := range first {
			v.Open(now)
		}
		return insertVersions(tx, f, first, int64(len(first)))
	})
}
