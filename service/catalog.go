package service

import (
	"context"
	"time"

	"Brandi/dao"
	"Brandi/dao/cache"
	"Brandi/models"
	"Brandi/pkg/clock"
	"Brandi/pkg/database"
	"Brandi/pkg/errs"
	"Brandi/pkg/paginate"
	"Brandi/pkg/pricing"
	"Brandi/pkg/temporal"
	"Brandi/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidPrice          = errs.Invalid("INVALID_PRICE")
	ErrImageRequired         = errs.Invalid("IMAGE_REQUIRED")
	ErrInvalidQuantity       = errs.Invalid("INVALID_QUANTITY")
	ErrInvalidSalesQuantity  = errs.Invalid("INVALID_SALES_QUANTITY")
	ErrInvalidDiscountRate   = errs.Invalid("INVALID_DISCOUNT_RATE")
	ErrInvalidDiscountPeriod = errs.Invalid("INVALID_DISCOUNT_PERIOD")
	ErrInvalidDate           = errs.Invalid("INVALID_DATE")
)

var _ ICatalogService = (*CatalogService)(nil)

type ICatalogService interface {
	RegisterProduct(ctx context.Context, req *types.ProductRequest) (*types.RegisterProductResponse, error)
	UpdateProduct(ctx context.Context, productNo uint64, req *types.ProductRequest) (*types.UpdateProductResponse, error)
	DeleteProduct(ctx context.Context, productNo uint64) error
	ListProducts(ctx context.Context, req *types.AdminProductListRequest) (*types.AdminProductListResponse, error)
	GetProduct(ctx context.Context, productNo uint64) (*types.AdminProductDetail, error)

	Colors(ctx context.Context) ([]*models.Color, error)
	Sizes(ctx context.Context) ([]*models.Size, error)
	MainCategories(ctx context.Context) ([]*models.MainCategory, error)
	SubCategories(ctx context.Context, mainCategoryID uint64) ([]*models.SubCategory, error)
}

type CatalogService struct {
	DB           *gorm.DB
	Clock        clock.Clock
	ProductRepo  *dao.Product
	OptionRepo   *dao.ProductOption
	ImageRepo    *dao.Image
	Reference    *dao.Reference
	CatalogCache *cache.CatalogStorage
}

// validateProduct 注册时必须带图片，修改时图片可省略
func validateProduct(req *types.ProductRequest, requireImages bool) error {
	if !req.Price.IsPositive() {
		return ErrInvalidPrice.Withf("price=%s", req.Price)
	}
	if requireImages && len(req.Images) == 0 {
		return ErrImageRequired
	}
	if req.MinSalesQuantity < 1 || req.MaxSalesQuantity < req.MinSalesQuantity {
		return ErrInvalidSalesQuantity.Withf("min=%d max=%d", req.MinSalesQuantity, req.MaxSalesQuantity)
	}
	if req.DiscountRate != nil && (*req.DiscountRate < 0 || *req.DiscountRate > 100) {
		return ErrInvalidDiscountRate.Withf("rate=%d", *req.DiscountRate)
	}
	if req.DiscountStartDate != nil && req.DiscountEndDate != nil && req.DiscountStartDate.After(*req.DiscountEndDate) {
		return ErrInvalidDiscountPeriod
	}
	for _, o := range req.Options {
		if o.Quantity < 0 {
			return ErrInvalidQuantity.Withf("color=%q size=%q quantity=%d", o.Color, o.Size, o.Quantity)
		}
	}
	return nil
}

func detailFrom(req *types.ProductRequest, productNo uint64) *models.ProductDetail {
	return &models.ProductDetail{
		ProductID:         productNo,
		IsActivated:       req.SellYn,
		IsDisplayed:       req.ExhibitionYn,
		MainCategoryID:    req.MainCategoryID,
		SubCategoryID:     req.SubCategoryID,
		Name:              req.ProductName,
		SimpleDescription: req.SimpleDescription,
		DetailInformation: req.DetailInformation,
		Price:             req.Price,
		DiscountRate:      req.DiscountRate,
		DiscountStartDate: req.DiscountStartDate,
		DiscountEndDate:   req.DiscountEndDate,
		MinSalesQuantity:  req.MinSalesQuantity,
		MaxSalesQuantity:  req.MaxSalesQuantity,
	}
}

func (s *CatalogService) checkCategory(ctx context.Context, mainID, subID uint64) error {
	if _, err := s.Reference.MainCategory(ctx, mainID); err != nil {
		return err
	}
	_, err := s.Reference.SubCategory(ctx, subID, mainID)
	return err
}

// desiredOptions 把颜色、尺码名称解析为 id
func (s *CatalogService) desiredOptions(ctx context.Context, in []types.ProductOptionInput) ([]DesiredOption, error) {
	colors := make([]string, 0, len(in))
	sizes := make([]string, 0, len(in))
	for _, o := range in {
		colors = append(colors, o.Color)
		sizes = append(sizes, o.Size)
	}
	colorIDs, err := s.Reference.ColorIDs(ctx, colors)
	if err != nil {
		return nil, err
	}
	sizeIDs, err := s.Reference.SizeIDs(ctx, sizes)
	if err != nil {
		return nil, err
	}

	out := make([]DesiredOption, 0, len(in))
	for _, o := range in {
		out = append(out, DesiredOption{
			Key:      OptionKey{ColorID: colorIDs[o.Color], SizeID: sizeIDs[o.Size]},
			Quantity: o.Quantity,
		})
	}
	return out, nil
}

// attachImages 写入图片并为商品打开新的图片集合版本，第一张为主图
func (s *CatalogService) attachImages(ctx context.Context, productNo uint64, in []types.ProductImageInput, now time.Time, replace bool) error {
	images := make([]*models.Image, 0, len(in))
	for _, img := range in {
		images = append(images, &models.Image{ImageLarge: img.Large, ImageMedium: img.Medium, ImageSmall: img.Small})
	}
	if err := s.ImageRepo.CreateBatch(ctx, images); err != nil {
		return err
	}

	links := make([]*models.ProductImage, 0, len(images))
	for i, img := range images {
		links = append(links, &models.ProductImage{ProductID: productNo, ImageID: img.ImageNo, IsMain: i == 0})
	}
	if replace {
		return dao.ReplaceSet[models.ProductImage](ctx, s.DB, temporal.ProductImage, productNo, links, now)
	}
	return dao.OpenVersion[models.ProductImage](ctx, s.DB, temporal.ProductImage, productNo, links, now)
}

func (s *CatalogService) insertOption(ctx context.Context, productNo uint64, d DesiredOption, now time.Time) error {
	opt := &models.ProductOption{ProductID: productNo, ColorID: d.Key.ColorID, SizeID: d.Key.SizeID}
	if err := s.OptionRepo.Create(ctx, opt); err != nil {
		return err
	}
	first := []*models.Quantity{{ProductOptionID: opt.ProductOptionNo, Quantity: d.Quantity}}
	return dao.OpenVersion[models.Quantity](ctx, s.DB, temporal.Quantity, opt.ProductOptionNo, first, now)
}

// RegisterProduct 商品、首个详情版本、图片、选项和库存在同一事务内写入
func (s *CatalogService) RegisterProduct(ctx context.Context, req *types.ProductRequest) (*types.RegisterProductResponse, error) {
	if err := validateProduct(req, true); err != nil {
		return nil, err
	}
	now := s.Clock.Now()

	product := &models.Product{ProductCode: uuid.NewString()}
	err := database.Transaction(ctx, s.DB, func(ctx context.Context) error {
		if err := s.checkCategory(ctx, req.MainCategoryID, req.SubCategoryID); err != nil {
			return err
		}
		desired, err := s.desiredOptions(ctx, req.Options)
		if err != nil {
			return err
		}
		plan, err := PlanOptions(nil, desired)
		if err != nil {
			return err
		}

		if err := s.ProductRepo.Create(ctx, product); err != nil {
			return err
		}
		detail := detailFrom(req, product.ProductNo)
		if err := dao.OpenVersion[models.ProductDetail](ctx, s.DB, temporal.ProductDetail, product.ProductNo, []*models.ProductDetail{detail}, now); err != nil {
			return err
		}
		if err := s.attachImages(ctx, product.ProductNo, req.Images, now, false); err != nil {
			return err
		}
		for _, d := range plan.Insert {
			if err := s.insertOption(ctx, product.ProductNo, d, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.RegisterProductResponse{ProductNo: product.ProductNo, ProductCode: product.ProductCode}, nil
}

// UpdateProduct 先锁商品行，同一商品的修改串行执行。只有变化的部分才产生新版本。
func (s *CatalogService) UpdateProduct(ctx context.Context, productNo uint64, req *types.ProductRequest) (*types.UpdateProductResponse, error) {
	if err := validateProduct(req, false); err != nil {
		return nil, err
	}
	now := s.Clock.Now()

	resp := &types.UpdateProductResponse{ProductNo: productNo}
	err := database.Transaction(ctx, s.DB, func(ctx context.Context) error {
		if _, err := s.ProductRepo.LockLive(ctx, productNo); err != nil {
			return err
		}
		if err := s.checkCategory(ctx, req.MainCategoryID, req.SubCategoryID); err != nil {
			return err
		}

		current, err := dao.ResolveAt[models.ProductDetail](ctx, s.DB, temporal.ProductDetail, productNo, now)
		if err != nil {
			return asInvariant(err)
		}
		next := detailFrom(req, productNo)
		if !next.SameAttributes(current) {
			if err := dao.Revise[models.ProductDetail](ctx, s.DB, temporal.ProductDetail, productNo, next, now); err != nil {
				return err
			}
			resp.DetailRevised = true
		}

		if len(req.Images) > 0 {
			replaced, err := s.replaceImages(ctx, productNo, req.Images, now)
			if err != nil {
				return err
			}
			resp.ImagesReplaced = replaced
		}

		return s.reconcileOptions(ctx, productNo, req.Options, now, resp)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *CatalogService) replaceImages(ctx context.Context, productNo uint64, in []types.ProductImageInput, now time.Time) (bool, error) {
	old, err := s.ImageRepo.ImagesAt(ctx, productNo, now)
	if err != nil {
		return false, err
	}
	if sameImages(old, in) {
		return false, nil
	}

	oldNos := make([]uint64, 0, len(old))
	for _, img := range old {
		oldNos = append(oldNos, img.ImageNo)
	}
	if err := s.ImageRepo.MarkDeleted(ctx, oldNos); err != nil {
		return false, err
	}
	return true, s.attachImages(ctx, productNo, in, now, true)
}

func sameImages(old []*models.Image, in []types.ProductImageInput) bool {
	if len(old) != len(in) {
		return false
	}
	for i, img := range old {
		if img.ImageLarge != in[i].Large || img.ImageMedium != in[i].Medium || img.ImageSmall != in[i].Small {
			return false
		}
	}
	return true
}

func (s *CatalogService) reconcileOptions(ctx context.Context, productNo uint64, in []types.ProductOptionInput, now time.Time, resp *types.UpdateProductResponse) error {
	desired, err := s.desiredOptions(ctx, in)
	if err != nil {
		return err
	}
	live, err := s.OptionRepo.LockByProduct(ctx, productNo)
	if err != nil {
		return err
	}

	existing := make([]ExistingOption, 0, len(live))
	for _, o := range live {
		q, err := dao.ResolveAt[models.Quantity](ctx, s.DB, temporal.Quantity, o.ProductOptionNo, now)
		if err != nil {
			return asInvariant(err)
		}
		existing = append(existing, ExistingOption{
			ProductOptionNo: o.ProductOptionNo,
			Key:             OptionKey{ColorID: o.ColorID, SizeID: o.SizeID},
			Quantity:        q.Quantity,
		})
	}

	plan, err := PlanOptions(existing, desired)
	if err != nil {
		return err
	}
	for _, d := range plan.Delete {
		if err := s.OptionRepo.SoftDelete(ctx, d.ProductOptionNo, now); err != nil {
			return err
		}
		if err := dao.Close[models.Quantity](ctx, s.DB, temporal.Quantity, d.ProductOptionNo, now); err != nil {
			return err
		}
	}
	for _, d := range plan.Insert {
		if err := s.insertOption(ctx, productNo, d, now); err != nil {
			return err
		}
	}
	for _, r := range plan.Revise {
		next := &models.Quantity{ProductOptionID: r.ProductOptionNo, Quantity: r.To}
		if err := dao.Revise[models.Quantity](ctx, s.DB, temporal.Quantity, r.ProductOptionNo, next, now); err != nil {
			return err
		}
	}

	resp.OptionsDeleted = len(plan.Delete)
	resp.OptionsInserted = len(plan.Insert)
	resp.QuantitiesRevised = len(plan.Revise)
	return nil
}

// asInvariant 存活实体缺少当前版本说明历史数据已损坏
func asInvariant(err error) error {
	if errs.KindOf(err) == errs.KindNotFound {
		return errs.Invariant("%v", err)
	}
	return err
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productNo uint64) error {
	return database.Transaction(ctx, s.DB, func(ctx context.Context) error {
		if _, err := s.ProductRepo.LockLive(ctx, productNo); err != nil {
			return err
		}
		return s.ProductRepo.SoftDelete(ctx, productNo)
	})
}

func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate.Withf("date=%q", v)
	}
	return &t, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, req *types.AdminProductListRequest) (*types.AdminProductListResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	filter := dao.AdminFilter{
		SellYn:       req.SellYn,
		DiscountYn:   req.DiscountYn,
		ExhibitionYn: req.ExhibitionYn,
		StartDate:    start,
		EndDate:      end,
		ProductName:  req.ProductName,
		ProductNo:    req.ProductNo,
		ProductCode:  req.ProductCode,
	}
	page := paginate.New(req.Page, req.Limit)
	rows, total, err := s.ProductRepo.ListForAdmin(ctx, filter, s.Clock.Now(), page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]*types.AdminProductItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, &types.AdminProductItem{
			ProductRegistDate:    r.CreatedAt,
			ProductSmallImageURL: r.ImageSmall,
			ProductName:          r.ProductName,
			ProductNo:            r.ProductNo,
			ProductCode:          r.ProductCode,
			SellPrice:            pricing.ListPrice(r.Price),
			DiscountRate:         r.DiscountRate,
			DiscountPrice:        pricing.SalePrice(r.Price, r.DiscountRate),
			DiscountYn:           r.DiscountRate > 0,
			ProductExhibitYn:     r.IsDisplayed,
			ProductSellYn:        r.IsActivated,
		})
	}
	return &types.AdminProductListResponse{Total: total, Data: items}, nil
}

// GetProduct 后台商品详情，下架和隐藏的商品也可查看
func (s *CatalogService) GetProduct(ctx context.Context, productNo uint64) (*types.AdminProductDetail, error) {
	now := s.Clock.Now()

	product, err := s.ProductRepo.FindLive(ctx, productNo)
	if err != nil {
		return nil, err
	}
	detail, err := dao.ResolveAt[models.ProductDetail](ctx, s.DB, temporal.ProductDetail, productNo, now)
	if err != nil {
		return nil, err
	}
	main, err := s.Reference.MainCategory(ctx, detail.MainCategoryID)
	if err != nil {
		return nil, err
	}
	sub, err := s.Reference.SubCategory(ctx, detail.SubCategoryID, detail.MainCategoryID)
	if err != nil {
		return nil, err
	}
	images, err := s.ImageRepo.ImagesAt(ctx, productNo, now)
	if err != nil {
		return nil, err
	}
	options, err := s.OptionRepo.LiveWithStock(ctx, productNo, now)
	if err != nil {
		return nil, err
	}

	resp := &types.AdminProductDetail{
		ProductNo:         product.ProductNo,
		ProductCode:       product.ProductCode,
		SellYn:            detail.IsActivated,
		ExhibitYn:         detail.IsDisplayed,
		MainCategoryID:    main.MainCategoryNo,
		MainCategory:      main.Name,
		SubCategoryID:     sub.SubCategoryNo,
		SubCategory:       sub.Name,
		ProductName:       detail.Name,
		SimpleDescription: detail.SimpleDescription,
		DetailInformation: detail.DetailInformation,
		Price:             pricing.ListPrice(detail.Price),
		DiscountRate:      detail.DiscountRate,
		DiscountStartDate: detail.DiscountStartDate,
		DiscountEndDate:   detail.DiscountEndDate,
		MinSalesQuantity:  detail.MinSalesQuantity,
		MaxSalesQuantity:  detail.MaxSalesQuantity,
		ImageURL:          make([]string, 0, len(images)),
		OptionQuantity:    make([]*types.OptionQuantity, 0, len(options)),
	}
	for _, img := range images {
		resp.ImageURL = append(resp.ImageURL, img.ImageMedium)
	}
	for _, o := range options {
		resp.OptionQuantity = append(resp.OptionQuantity, &types.OptionQuantity{
			ProductOptionNo: o.ProductOptionNo,
			ColorName:       o.ColorName,
			SizeName:        o.SizeName,
			Quantity:        o.Quantity,
		})
	}
	return resp, nil
}

func (s *CatalogService) Colors(ctx context.Context) ([]*models.Color, error) {
	return s.CatalogCache.Colors(ctx)
}

func (s *CatalogService) Sizes(ctx context.Context) ([]*models.Size, error) {
	return s.CatalogCache.Sizes(ctx)
}

func (s *CatalogService) MainCategories(ctx context.Context) ([]*models.MainCategory, error) {
	return s.CatalogCache.MainCategories(ctx)
}

// SubCategories 主分类不存在时报错，而不是返回空列表
func (s *CatalogService) SubCategories(ctx context.Context, mainCategoryID uint64) ([]*models.SubCategory, error) {
	mains, err := s.CatalogCache.MainCategories(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for _, m := range mains {
		if m.MainCategoryNo == mainCategoryID {
			found = true
			break
		}
	}
	if !found {
		return nil, dao.ErrInvalidMainCategoryID.Withf("main_category_no=%d", mainCategoryID)
	}
	return s.CatalogCache.SubCategories(ctx, mainCategoryID)
}
