package utils

import (
	"fmt"

	"github.com/speps/go-hashids/v2"
)

const hashMinLength = 12

func newHashID(salt string) (*hashids.HashID, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = hashMinLength
	return hashids.NewWithData(hd)
}

// GenHashID 生成对外展示的订单号
func GenHashID(salt string, id uint64) string {
	h, err := newHashID(salt)
	if err != nil {
		return ""
	}
	e, _ := h.EncodeInt64([]int64{int64(id)})
	return e
}

// DecodeHashID 还原 GenHashID 的编号
func DecodeHashID(salt string, hash string) (uint64, error) {
	h, err := newHashID(salt)
	if err != nil {
		return 0, err
	}
	ids, err := h.DecodeInt64WithError(hash)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 || ids[0] <= 0 {
		return 0, fmt.Errorf("hashid %q: unexpected payload", hash)
	}
	return uint64(ids[0]), nil
}
