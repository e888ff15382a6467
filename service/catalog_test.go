package service

import (
	"context"
	"testing"

	"Brandi/config"
	"Brandi/dao"
	"Brandi/dao/cache"
	"Brandi/models"
	"Brandi/pkg/clock"
	"Brandi/pkg/errs"
	"Brandi/pkg/temporal"
	"Brandi/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *types.ProductRequest {
	return &types.ProductRequest{
		SellYn:           true,
		ExhibitionYn:     true,
		MainCategoryID:   1,
		SubCategoryID:    4,
		ProductName:      "linen shirt",
		Price:            decimal.NewFromInt(39000),
		MinSalesQuantity: 1,
		MaxSalesQuantity: 20,
		Images:           []types.ProductImageInput{{Large: "l.jpg", Medium: "m.jpg", Small: "s.jpg"}},
		Options:          []types.ProductOptionInput{{Color: "Black", Size: "M", Quantity: 10}},
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *types.ProductRequest)
		images bool
		code   string
	}{
		{name: "valid", modify: func(*types.ProductRequest) {}, images: true},
		{name: "zero price", modify: func(r *types.ProductRequest) { r.Price = decimal.Zero }, images: true, code: "INVALID_PRICE"},
		{name: "no images on register", modify: func(r *types.ProductRequest) { r.Images = nil }, images: true, code: "IMAGE_REQUIRED"},
		{name: "no images on update", modify: func(r *types.ProductRequest) { r.Images = nil }, images: false},
		{name: "min above max", modify: func(r *types.ProductRequest) { r.MinSalesQuantity = 30 }, images: true, code: "INVALID_SALES_QUANTITY"},
		{name: "rate above 100", modify: func(r *types.ProductRequest) { r.DiscountRate = intPtr(120) }, images: true, code: "INVALID_DISCOUNT_RATE"},
		{name: "window reversed", modify: func(r *types.ProductRequest) {
			r.DiscountRate = intPtr(10)
			r.DiscountStartDate = timePtr(t2)
			r.DiscountEndDate = timePtr(t1)
		}, images: true, code: "INVALID_DISCOUNT_PERIOD"},
		{name: "negative stock", modify: func(r *types.ProductRequest) { r.Options[0].Quantity = -1 }, images: true, code: "INVALID_QUANTITY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(req)
			err := validateProduct(req, tt.images)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errs.KindInvalid, errs.KindOf(err))
			assert.Equal(t, tt.code, errs.CodeOf(err))
		})
	}
}

func TestSameImages(t *testing.T) {
	old := []*models.Image{{ImageNo: 1, ImageLarge: "l.jpg", ImageMedium: "m.jpg", ImageSmall: "s.jpg"}}

	assert.True(t, sameImages(old, []types.ProductImageInput{{Large: "l.jpg", Medium: "m.jpg", Small: "s.jpg"}}))
	assert.False(t, sameImages(old, []types.ProductImageInput{{Large: "l2.jpg", Medium: "m.jpg", Small: "s.jpg"}}))
	assert.False(t, sameImages(old, nil))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05T00:00:00Z", d.Format("2006-01-02T15:04:05Z07:00"))

	d, err = parseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDate("05/03/2024")
	assert.Equal(t, "INVALID_DATE", errs.CodeOf(err))
}

func newCatalogService(t *testing.T) (*CatalogService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	ref := dao.NewReference(db)
	return &CatalogService{
		DB:           db,
		Clock:        clock.NewMockClock(t2),
		ProductRepo:  dao.NewProduct(db),
		OptionRepo:   dao.NewProductOption(db),
		ImageRepo:    dao.NewImage(db),
		Reference:    ref,
		CatalogCache: cache.NewCatalogStorage(nil, &config.Config{}, ref),
	}, mock
}

func TestCatalogService_SubCategoriesUnknownMain(t *testing.T) {
	s, mock := newCatalogService(t)
	mock.ExpectQuery("SELECT \\* FROM `main_categories` ORDER BY main_category_no").
		WillReturnRows(sqlmock.NewRows([]string{"main_category_no", "name"}).AddRow(1, "Outer").AddRow(2, "Top"))

	_, err := s.SubCategories(context.Background(), 9)
	assert.Equal(t, "INVALID_MAIN_CATEGORY_ID", errs.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_SubCategories(t *testing.T) {
	s, mock := newCatalogService(t)
	mock.ExpectQuery("SELECT \\* FROM `main_categories`").
		WillReturnRows(sqlmock.NewRows([]string{"main_category_no", "name"}).AddRow(1, "Outer"))
	mock.ExpectQuery("SELECT \\* FROM `sub_categories` WHERE main_category_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"sub_category_no", "main_category_id", "name"}).AddRow(4, 1, "Jacket"))

	subs, err := s.SubCategories(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Jacket", subs[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_RegisterRejectsBeforeTouchingDatabase(t *testing.T) {
	s, mock := newCatalogService(t)
	req := validRequest()
	req.Images = nil

	_, err := s.RegisterProduct(context.Background(), req)
	assert.Equal(t, "IMAGE_REQUIRED", errs.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_RegisterUnknownColorRollsBack(t *testing.T) {
	s, mock := newCatalogService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `main_categories` WHERE main_category_no = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"main_category_no", "name"}).AddRow(1, "Top"))
	mock.ExpectQuery("SELECT \\* FROM `sub_categories` WHERE sub_category_no = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"sub_category_no", "main_category_id", "name"}).AddRow(4, 1, "Shirt"))
	mock.ExpectQuery("SELECT \\* FROM `colors` WHERE name IN").
		WillReturnRows(sqlmock.NewRows([]string{"color_no", "name"}))
	mock.ExpectRollback()

	_, err := s.RegisterProduct(context.Background(), validRequest())
	assert.Equal(t, "INVALID_COLOR_NAME", errs.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_UpdateUnknownProduct(t *testing.T) {
	s, mock := newCatalogService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `products` WHERE product_no = \\? AND is_deleted = 0 .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"product_no", "product_code"}))
	mock.ExpectRollback()

	_, err := s.UpdateProduct(context.Background(), 77, validRequest())
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Equal(t, "INVALID_PRODUCT_ID", errs.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

var updateDetailColumns = []string{
	"product_detail_no", "product_id", "is_activated", "is_displayed", "main_category_id", "sub_category_id",
	"name", "price", "min_sales_quantity", "max_sales_quantity", "start_time", "close_time",
}

var quantityColumns = []string{"quantity_no", "product_option_id", "quantity", "start_time", "close_time"}

// 现有 {(red,M):5, (blue,L):2}，改为 {(red,M):8, (green,S):1}
func TestCatalogService_UpdateReconcilesOptions(t *testing.T) {
	s, mock := newCatalogService(t)
	req := validRequest()
	req.Images = nil
	req.Options = []types.ProductOptionInput{
		{Color: "red", Size: "M", Quantity: 8},
		{Color: "green", Size: "S", Quantity: 1},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `products` WHERE product_no = \\? AND is_deleted = 0 .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"product_no", "product_code"}).AddRow(3, "c0de"))
	mock.ExpectQuery("SELECT \\* FROM `main_categories` WHERE main_category_no = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"main_category_no", "name"}).AddRow(1, "Top"))
	mock.ExpectQuery("SELECT \\* FROM `sub_categories` WHERE sub_category_no = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"sub_category_no", "main_category_id", "name"}).AddRow(4, 1, "Shirt"))
	// 详情未变，不产生新版本
	mock.ExpectQuery("SELECT \\* FROM `product_details` WHERE product_id = \\? AND start_time <= \\? AND close_time > \\?").
		WillReturnRows(sqlmock.NewRows(updateDetailColumns).
			AddRow(5, 3, true, true, 1, 4, "linen shirt", "39000.00", 1, 20, t1, temporal.OpenEnd))

	mock.ExpectQuery("SELECT \\* FROM `colors` WHERE name IN").
		WithArgs("red", "green").
		WillReturnRows(sqlmock.NewRows([]string{"color_no", "name"}).AddRow(red, "red").AddRow(green, "green"))
	mock.ExpectQuery("SELECT \\* FROM `sizes` WHERE name IN").
		WithArgs("M", "S").
		WillReturnRows(sqlmock.NewRows([]string{"size_no", "name"}).AddRow(sizeM, "M").AddRow(sizeS, "S"))
	mock.ExpectQuery("SELECT \\* FROM `product_options` WHERE product_id = \\? AND is_deleted = 0 ORDER BY product_option_no FOR UPDATE").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"product_option_no", "product_id", "color_id", "size_id"}).
			AddRow(21, 3, red, sizeM).
			AddRow(22, 3, blue, sizeL))
	mock.ExpectQuery("SELECT \\* FROM `quantities` WHERE product_option_id = \\? AND start_time <= \\? AND close_time > \\?").
		WithArgs(21, t2, t2).
		WillReturnRows(sqlmock.NewRows(quantityColumns).AddRow(31, 21, 5, t1, temporal.OpenEnd))
	mock.ExpectQuery("SELECT \\* FROM `quantities` WHERE product_option_id = \\? AND start_time <= \\? AND close_time > \\?").
		WithArgs(22, t2, t2).
		WillReturnRows(sqlmock.NewRows(quantityColumns).AddRow(32, 22, 2, t1, temporal.OpenEnd))

	// blue/L：软删除选项并关闭其库存
	mock.ExpectExec("UPDATE `product_options` SET .*`is_deleted`=\\? WHERE product_option_no = \\? AND is_deleted = 0").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `quantities` WHERE product_option_id = \\? AND close_time = \\?.* FOR UPDATE").
		WithArgs(22, temporal.OpenEnd).
		WillReturnRows(sqlmock.NewRows(quantityColumns).AddRow(32, 22, 2, t1, temporal.OpenEnd))
	mock.ExpectExec("UPDATE `quantities` SET `close_time`=\\? WHERE product_option_id = \\? AND close_time = \\?").
		WithArgs(t2, 22, temporal.OpenEnd).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// green/S：新选项及第一个库存版本
	mock.ExpectExec("INSERT INTO `product_options`").
		WillReturnResult(sqlmock.NewResult(23, 1))
	mock.ExpectQuery("SELECT \\* FROM `quantities` WHERE product_option_id = \\? AND close_time = \\?.* FOR UPDATE").
		WithArgs(23, temporal.OpenEnd).
		WillReturnRows(sqlmock.NewRows(quantityColumns))
	mock.ExpectExec("INSERT INTO `quantities`").
		WillReturnResult(sqlmock.NewResult(33, 1))

	// red/M：只换库存版本，不新建选项
	mock.ExpectQuery("SELECT \\* FROM `quantities` WHERE product_option_id = \\? AND close_time = \\?.* FOR UPDATE").
		WithArgs(21, temporal.OpenEnd).
		WillReturnRows(sqlmock.NewRows(quantityColumns).AddRow(31, 21, 5, t1, temporal.OpenEnd))
	mock.ExpectExec("UPDATE `quantities` SET `close_time`=\\? WHERE product_option_id = \\? AND close_time = \\?").
		WithArgs(t2, 21, temporal.OpenEnd).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `quantities`").
		WillReturnResult(sqlmock.NewResult(34, 1))
	mock.ExpectCommit()

	resp, err := s.UpdateProduct(context.Background(), 3, req)
	require.NoError(t, err)
	assert.Equal(t, &types.UpdateProductResponse{
		ProductNo:         3,
		OptionsDeleted:    1,
		OptionsInserted:   1,
		QuantitiesRevised: 1,
	}, resp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_UpdateStockRevisionFailureRollsBack(t *testing.T) {
	s, mock := newCatalogService(t)
	req := validRequest()
	req.Images = nil
	req.Options = []types.ProductOptionInput{{Color: "red", Size: "M", Quantity: 8}}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `products` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"product_no", "product_code"}).AddRow(3, "c0de"))
	mock.ExpectQuery("SELECT \\* FROM `main_categories`").
		WillReturnRows(sqlmock.NewRows([]string{"main_category_no", "name"}).AddRow(1, "Top"))
	mock.ExpectQuery("SELECT \\* FROM `sub_categories`").
		WillReturnRows(sqlmock.NewRows([]string{"sub_category_no", "main_category_id", "name"}).AddRow(4, 1, "Shirt"))
	mock.ExpectQuery("SELECT \\* FROM `product_details`").
		WillReturnRows(sqlmock.NewRows(updateDetailColumns).
			AddRow(5, 3, true, true, 1, 4, "linen shirt", "39000.00", 1, 20, t1, temporal.OpenEnd))
	mock.ExpectQuery("SELECT \\* FROM `colors`").
		WillReturnRows(sqlmock.NewRows([]string{"color_no", "name"}).AddRow(red, "red"))
	mock.ExpectQuery("SELECT \\* FROM `sizes`").
		WillReturnRows(sqlmock.NewRows([]string{"size_no", "name"}).AddRow(sizeM, "M"))
	mock.ExpectQuery("SELECT \\* FROM `product_options` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"product_option_no", "product_id", "color_id", "size_id"}).AddRow(21, 3, red, sizeM))
	mock.ExpectQuery("SELECT \\* FROM `quantities` WHERE product_option_id = \\? AND start_time <= \\?").
		WillReturnRows(sqlmock.NewRows(quantityColumns).AddRow(31, 21, 5, t1, temporal.OpenEnd))
	mock.ExpectQuery("SELECT \\* FROM `quantities` WHERE product_option_id = \\? AND close_time = \\?.* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(quantityColumns).AddRow(31, 21, 5, t1, temporal.OpenEnd))
	mock.ExpectExec("UPDATE `quantities` SET `close_time`=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := s.UpdateProduct(context.Background(), 3, req)
	assert.Equal(t, errs.KindWriteFailed, errs.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	t.Run("soft deletes under the product lock", func(t *testing.T) {
		s, mock := newCatalogService(t)
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `products` WHERE product_no = \\? AND is_deleted = 0 .*FOR UPDATE").
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"product_no", "product_code"}).AddRow(3, "c0de"))
		mock.ExpectExec("UPDATE `products` SET `is_deleted`=\\? WHERE product_no = \\? AND is_deleted = 0").
			WithArgs(true, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, s.DeleteProduct(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already deleted", func(t *testing.T) {
		s, mock := newCatalogService(t)
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `products` .*FOR UPDATE").
			WillReturnRows(sqlmock.NewRows([]string{"product_no", "product_code"}))
		mock.ExpectRollback()

		err := s.DeleteProduct(context.Background(), 3)
		assert.Equal(t, "INVALID_PRODUCT_ID", errs.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
