package dao

import (
	"context"
	"testing"

	"Brandi/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCardColumns = []string{"product_no", "thumbnail_image", "product_name", "original_price", "discount_rate"}

func TestListDisplayed(t *testing.T) {
	t.Run("one row per product", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM products AS P .*ORDER BY P.product_no DESC").
			WillReturnRows(sqlmock.NewRows(productCardColumns).
				AddRow(4, "m4.jpg", "linen shirt", "39000.00", 0).
				AddRow(3, "m3.jpg", "wool coat", "129000.00", 10))

		cards, err := NewProduct(db).ListDisplayed(context.Background(), t2)
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, 10, cards[1].DiscountRate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overlapping detail versions", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM products AS P").
			WillReturnRows(sqlmock.NewRows(productCardColumns).
				AddRow(3, "m3.jpg", "wool coat", "129000.00", 10).
				AddRow(3, "m3.jpg", "wool coat v2", "119000.00", 0))

		_, err := NewProduct(db).ListDisplayed(context.Background(), t2)
		assert.Equal(t, errs.KindInvariant, errs.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListForAdmin_OverlappingVersions(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM products AS P").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	mock.ExpectQuery("SELECT P.created_at, .* FROM products AS P .*LIMIT 10").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "product_no", "product_code", "product_name", "price"}).
			AddRow(t1, 3, "c0de", "wool coat", "129000.00").
			AddRow(t1, 3, "c0de", "wool coat v2", "119000.00"))

	_, _, err := NewProduct(db).ListForAdmin(context.Background(), AdminFilter{}, t2, 10, 0)
	assert.Equal(t, errs.KindInvariant, errs.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
