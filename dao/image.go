package dao

import (
	"context"
	"time"

	"Brandi/models"
	"Brandi/pkg/errs"
	"Brandi/pkg/temporal"

	"gorm.io/gorm"
)

type Image struct {
	Repo[models.Image]
}

func NewImage(db *gorm.DB) *Image {
	return &Image{
		Repo: NewRepo[models.Image](db),
	}
}

// ImagesAt 商品在 at 时刻关联的图片，顺序与登记时一致（第一张为主图）。
// 以关联表的版本为准，被替换后标记删除的旧图片照样能按历史时刻取回。
func (i *Image) ImagesAt(ctx context.Context, productNo uint64, at time.Time) ([]*models.Image, error) {
	links, err := ResolveSetAt[models.ProductImage](ctx, i.Db, temporal.ProductImage, productNo, at, "product_image_no ASC")
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return make([]*models.Image, 0), nil
	}

	ids := make([]uint64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.ImageID)
	}
	found := make([]*models.Image, 0, len(ids))
	if err := i.Conn(ctx).Where("image_no IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byNo := make(map[uint64]*models.Image, len(found))
	for _, img := range found {
		byNo[img.ImageNo] = img
	}

	images := make([]*models.Image, 0, len(links))
	for _, l := range links {
		img, ok := byNo[l.ImageID]
		if !ok {
			return nil, errs.Invariant("%s: image_no=%d linked to product_id=%d does not exist",
				temporal.ProductImage.Name, l.ImageID, productNo)
		}
		images = append(images, img)
	}
	return images, nil
}

// MarkDeleted 图片集合被替换后，旧图片标记删除
func (i *Image) MarkDeleted(ctx context.Context, imageNos []uint64) error {
	if len(imageNos) == 0 {
		return nil
	}
	return i.Model(ctx).Where("image_no IN ?", imageNos).Update("is_deleted", true).Error
}
