package service

import (
	"context"

	"Brandi/dao"
	"Brandi/models"
	"Brandi/pkg/clock"
	"Brandi/pkg/errs"
	"Brandi/pkg/pricing"
	"Brandi/pkg/temporal"
	"Brandi/types"

	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"
)

var _ IProductService = (*ProductService)(nil)

type IProductService interface {
	// ListProducts 前台商品列表
	ListProducts(ctx context.Context) ([]*types.ProductCard, error)
	// GetProduct 前台商品详情
	GetProduct(ctx context.Context, productNo uint64) (*types.ProductDetailResponse, error)
	// ListSizes 某颜色下有货的尺码
	ListSizes(ctx context.Context, productNo, colorID uint64) ([]*types.SizeOption, error)
}

type ProductService struct {
	DB          *gorm.DB
	Clock       clock.Clock
	ProductRepo *dao.Product
	OptionRepo  *dao.ProductOption
	ImageRepo   *dao.Image
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*types.ProductCard, error) {
	rows, err := s.ProductRepo.ListDisplayed(ctx, s.Clock.Now())
	if err != nil {
		return nil, err
	}

	items := make([]*types.ProductCard, 0, len(rows))
	for _, r := range rows {
		items = append(items, &types.ProductCard{
			ProductID:      r.ProductNo,
			ThumbnailImage: r.ThumbnailImage,
			ProductName:    r.ProductName,
			OriginalPrice:  pricing.ListPrice(r.OriginalPrice),
			DiscountRate:   r.DiscountRate,
			SalePrice:      pricing.SalePrice(r.OriginalPrice, r.DiscountRate),
		})
	}
	return items, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productNo uint64) (*types.ProductDetailResponse, error) {
	now := s.Clock.Now()

	if _, err := s.ProductRepo.FindLive(ctx, productNo); err != nil {
		return nil, err
	}
	detail, err := dao.ResolveAt[models.ProductDetail](ctx, s.DB, temporal.ProductDetail, productNo, now)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return nil, dao.ErrInvalidProductID.Withf("product_no=%d", productNo)
		}
		return nil, err
	}
	// 下架或隐藏的商品对前台不可见
	if !detail.IsActivated || !detail.IsDisplayed {
		return nil, dao.ErrInvalidProductID.Withf("product_no=%d", productNo)
	}

	// 图片与颜色互不依赖，并发读取
	var (
		images []*models.Image
		colors []*dao.ColorRow
	)
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		images, err = s.ImageRepo.ImagesAt(ctx, productNo, now)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		colors, err = s.OptionRepo.Colors(ctx, productNo)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	rate := discountWindow(detail).EffectiveRate(now)
	resp := &types.ProductDetailResponse{
		ProductID:        productNo,
		Name:             detail.Name,
		HTML:             detail.DetailInformation,
		OriginalPrice:    pricing.ListPrice(detail.Price),
		DiscountRate:     rate,
		SalePrice:        pricing.SalePrice(detail.Price, rate),
		MinSalesQuantity: detail.MinSalesQuantity,
		MaxSalesQuantity: detail.MaxSalesQuantity,
		Images:           make([]string, 0, len(images)),
		Colors:           make([]*types.ColorOption, 0, len(colors)),
	}
	for _, img := range images {
		resp.Images = append(resp.Images, img.ImageLarge)
	}
	for _, c := range colors {
		resp.Colors = append(resp.Colors, &types.ColorOption{ColorID: c.ColorID, ColorName: c.ColorName})
	}
	return resp, nil
}

func (s *ProductService) ListSizes(ctx context.Context, productNo, colorID uint64) ([]*types.SizeOption, error) {
	if _, err := s.ProductRepo.FindLive(ctx, productNo); err != nil {
		return nil, err
	}
	rows, err := s.OptionRepo.SizesInStock(ctx, productNo, colorID, s.Clock.Now())
	if err != nil {
		return nil, err
	}
	items := make([]*types.SizeOption, 0, len(rows))
	for _, r := range rows {
		items = append(items, &types.SizeOption{SizeID: r.SizeID, Size: r.Size, Quantity: r.Quantity})
	}
	return items, nil
}

func discountWindow(d *models.ProductDetail) pricing.Window {
	return pricing.Window{
		Rate:  d.DiscountRate,
		Start: d.DiscountStartDate,
		End:   d.DiscountEndDate,
	}
}
