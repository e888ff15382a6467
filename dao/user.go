package dao

import (
	"context"
	"time"

	"Brandi/models"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// FindByEmail 邮箱查询
func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "email = ? AND is_deleted = 0", email)
}

// IsEmailExist 判断邮箱是否已注册
func (u *Users) IsEmailExist(ctx context.Context, email string) (bool, error) {
	return u.Repo.IsExist(ctx, "email = ?", email)
}

// FindBySocial 社交账号查询
func (u *Users) FindBySocial(ctx context.Context, socialID int, subject string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "social_id = ? AND user_social_id = ? AND is_deleted = 0", socialID, subject)
}

func (u *Users) FindByNo(ctx context.Context, userNo uint64) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "user_no = ? AND is_deleted = 0", userNo)
}

// TouchLastAccess 更新最后登录时间
func (u *Users) TouchLastAccess(ctx context.Context, userNo uint64, at time.Time) error {
	res := u.Model(ctx).Where("user_no = ?", userNo).Update("last_access", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return errWriteFailed("update last_access", res.RowsAffected, 1)
	}
	return nil
}

type UserListRow struct {
	UserNo      uint64     `gorm:"column:user_no"`
	Name        string     `gorm:"column:name"`
	Email       string     `gorm:"column:email"`
	LastAccess  *time.Time `gorm:"column:last_access"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PhoneNumber *string    `gorm:"column:phone_number"`
}

// CountLive 未删除用户数
func (u *Users) CountLive(ctx context.Context) (int64, error) {
	var total int64
	err := u.Model(ctx).Where("is_deleted = 0").Count(&total).Error
	return total, err
}

// ListLive 后台用户列表，带最近一次收货信息里的手机号
func (u *Users) ListLive(ctx context.Context, limit, offset int) ([]*UserListRow, error) {
	latest := u.Conn(ctx).
		Table("user_shipping_details").
		Select("user_id, MAX(user_shipping_detail_no) AS latest_no").
		Group("user_id")

	rows := make([]*UserListRow, 0)
	err := u.Conn(ctx).
		Table("users AS U").
		Select("U.user_no, U.name, U.email, U.last_access, U.created_at, S.phone_number").
		Joins("LEFT JOIN (?) AS L ON L.user_id = U.user_no", latest).
		Joins("LEFT JOIN user_shipping_details AS S ON S.user_shipping_detail_no = L.latest_no").
		Where("U.is_deleted = 0").
		Order("U.user_no").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
