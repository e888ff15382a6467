package dao

import (
	"errors"

	"Brandi/pkg/errs"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

var ErrDuplicate = errs.Conflict("DUPLICATE_ENTRY")

// translate 将唯一键冲突转换为 Conflict，其余错误原样返回
func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrDuplicate.Wrap(err)
	}
	return err
}

func errWriteFailed(stmt string, got, want int64) error {
	return errs.WriteFailed("%s affected %d rows, want %d", stmt, got, want)
}
