package dao

import (
	"context"
	"testing"

	"Brandi/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderLineColumnNames = []string{"order_detail_no", "start_time", "user_no", "orderer", "color", "size", "quantity", "price"}

const selectOrderLines = "SELECT OD.order_detail_no, .* FROM orders_details AS OD .*"

func TestUserLine(t *testing.T) {
	t.Run("one version at order time", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectOrderLines + "LIMIT 2").
			WillReturnRows(sqlmock.NewRows(orderLineColumnNames).
				AddRow(9, t1, 5, "kim", "red", "M", 2, "1000.00"))

		line, err := NewOrder(db).UserLine(context.Background(), 5, 9, t2)
		require.NoError(t, err)
		assert.Equal(t, "1000", line.Price.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overlapping detail versions", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectOrderLines + "LIMIT 2").
			WillReturnRows(sqlmock.NewRows(orderLineColumnNames).
				AddRow(9, t1, 5, "kim", "red", "M", 2, "1000.00").
				AddRow(9, t1, 5, "kim", "red", "M", 2, "2000.00"))

		_, err := NewOrder(db).UserLine(context.Background(), 5, 9, t2)
		assert.Equal(t, errs.KindInvariant, errs.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not the user's order", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectOrderLines).WillReturnRows(sqlmock.NewRows(orderLineColumnNames))

		_, err := NewOrder(db).UserLine(context.Background(), 6, 9, t2)
		assert.ErrorIs(t, err, ErrInvalidOrderDetail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserLines_DuplicateDetail(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(selectOrderLines).
		WillReturnRows(sqlmock.NewRows(orderLineColumnNames).
			AddRow(9, t1, 5, "kim", "red", "M", 2, "1000.00").
			AddRow(10, t1, 5, "kim", "blue", "L", 1, "1000.00").
			AddRow(9, t1, 5, "kim", "red", "M", 2, "2000.00"))

	_, err := NewOrder(db).UserLines(context.Background(), 5, t2)
	assert.Equal(t, errs.KindInvariant, errs.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminLines(t *testing.T) {
	const countDetails = "SELECT count\\(\\*\\) FROM orders_details AS OD WHERE OD.order_status_id = \\?"
	paid := uint64(1)

	t.Run("page", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(countDetails).WithArgs(paid).
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
		mock.ExpectQuery(selectOrderLines + "ORDER BY OD.order_detail_no DESC LIMIT 10").
			WillReturnRows(sqlmock.NewRows(orderLineColumnNames).
				AddRow(10, t2, 6, "lee", "blue", "L", 1, "5000.00").
				AddRow(9, t1, 5, "kim", "red", "M", 2, "1000.00"))

		lines, total, err := NewOrder(db).AdminLines(context.Background(), &paid, t2, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, lines, 2)
		assert.Equal(t, uint64(10), lines[0].OrderDetailNo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to list skips the join", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(countDetails).
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

		lines, total, err := NewOrder(db).AdminLines(context.Background(), &paid, t2, 10, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, lines)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overlapping versions", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(countDetails).
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
		mock.ExpectQuery(selectOrderLines).
			WillReturnRows(sqlmock.NewRows(orderLineColumnNames).
				AddRow(9, t1, 5, "kim", "red", "M", 2, "1000.00").
				AddRow(9, t1, 5, "kim", "red", "M", 2, "2000.00"))

		_, _, err := NewOrder(db).AdminLines(context.Background(), &paid, t2, 10, 0)
		assert.Equal(t, errs.KindInvariant, errs.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
