package dao

import (
	"context"

	"Brandi/models"
	"Brandi/pkg/database"
	"Brandi/pkg/errs"

	"gorm.io/gorm"
)

var (
	ErrInvalidColorName      = errs.Invalid("INVALID_COLOR_NAME")
	ErrInvalidSizeName       = errs.Invalid("INVALID_SIZE_NAME")
	ErrInvalidMainCategoryID = errs.Invalid("INVALID_MAIN_CATEGORY_ID")
	ErrInvalidSubCategoryID  = errs.Invalid("INVALID_SUB_CATEGORY_ID")
)

// Reference 颜色、尺码与类目等基础数据
type Reference struct {
	Db *gorm.DB
}

func NewReference(db *gorm.DB) *Reference {
	return &Reference{Db: db}
}

func (r *Reference) Colors(ctx context.Context) ([]*models.Color, error) {
	var items []*models.Color
	err := database.Conn(ctx, r.Db).Order("color_no").Find(&items).Error
	return items, err
}

func (r *Reference) Sizes(ctx context.Context) ([]*models.Size, error) {
	var items []*models.Size
	err := database.Conn(ctx, r.Db).Order("size_no").Find(&items).Error
	return items, err
}

func (r *Reference) MainCategories(ctx context.Context) ([]*models.MainCategory, error) {
	var items []*models.MainCategory
	err := database.Conn(ctx, r.Db).Order("main_category_no").Find(&items).Error
	return items, err
}

func (r *Reference) SubCategories(ctx context.Context, mainCategoryID uint64) ([]*models.SubCategory, error) {
	var items []*models.SubCategory
	err := database.Conn(ctx, r.Db).
		Where("main_category_id = ?", mainCategoryID).
		Order("sub_category_no").
		Find(&items).Error
	return items, err
}

func (r *Reference) MainCategory(ctx context.Context, id uint64) (*models.MainCategory, error) {
	var items []*models.MainCategory
	if err := database.Conn(ctx, r.Db).Where("main_category_no = ?", id).Limit(1).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrInvalidMainCategoryID.Withf("main_category_no=%d", id)
	}
	return items[0], nil
}

// SubCategory 返回 id 对应的子类目，且必须属于 mainCategoryID
func (r *Reference) SubCategory(ctx context.Context, id, mainCategoryID uint64) (*models.SubCategory, error) {
	var items []*models.SubCategory
	err := database.Conn(ctx, r.Db).
		Where("sub_category_no = ? AND main_category_id = ?", id, mainCategoryID).
		Limit(1).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrInvalidSubCategoryID.Withf("sub_category_no=%d main_category_no=%d", id, mainCategoryID)
	}
	return items[0], nil
}

// ColorIDs 按名称批量解析颜色，任一名称不存在即报错
func (r *Reference) ColorIDs(ctx context.Context, names []string) (map[string]uint64, error) {
	var items []*models.Color
	if err := database.Conn(ctx, r.Db).Where("name IN ?", names).Find(&items).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(items))
	for _, c := range items {
		ids[c.Name] = c.ColorNo
	}
	for _, n := range names {
		if _, ok := ids[n]; !ok {
			return nil, ErrInvalidColorName.Withf("color=%q", n)
		}
	}
	return ids, nil
}

func (r *Reference) SizeIDs(ctx context.Context, names []string) (map[string]uint64, error) {
	var items []*models.Size
	if err := database.Conn(ctx, r.Db).Where("name IN ?", names).Find(&items).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(items))
	for _, s := range items {
		ids[s.Name] = s.SizeNo
	}
	for _, n := range names {
		if _, ok := ids[n]; !ok {
			return nil, ErrInvalidSizeName.Withf("size=%q", n)
		}
	}
	return ids, nil
}
