package models

import "time"

// SocialGoogle 是 users.social_id 中 Google 账号的取值
const SocialGoogle = 1

type User struct {
	UserNo       uint64     `gorm:"column:user_no;primaryKey;autoIncrement" json:"user_no"`
	Name         string     `gorm:"column:name;type:varchar(45);not null" json:"name"`
	Email        string     `gorm:"column:email;type:varchar(100);not null;uniqueIndex:idx_users_email" json:"email"`
	Password     *string    `gorm:"column:password;type:varchar(100)" json:"-"` // bcrypt，社交账号为空
	SocialID     *int       `gorm:"column:social_id;uniqueIndex:idx_users_social,priority:1" json:"social_id"`
	UserSocialID *string    `gorm:"column:user_social_id;type:varchar(100);uniqueIndex:idx_users_social,priority:2" json:"user_social_id"`
	IsAdmin      bool       `gorm:"column:is_admin;not null;default:0" json:"is_admin"`
	IsDeleted    bool       `gorm:"column:is_deleted;not null;default:0" json:"is_deleted"`
	LastAccess   *time.Time `gorm:"column:last_access" json:"last_access"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

type UserShippingDetail struct {
	UserShippingDetailNo uint64 `gorm:"column:user_shipping_detail_no;primaryKey;autoIncrement" json:"user_shipping_detail_no"`
	UserID               uint64 `gorm:"column:user_id;not null;index" json:"user_id"`
	Receiver             string `gorm:"column:receiver;type:varchar(45);not null" json:"receiver"`
	PhoneNumber          string `gorm:"column:phone_number;type:varchar(45);not null" json:"phone_number"`
	Address              string `gorm:"column:address;type:varchar(200);not null" json:"address"`
	AdditionalAddress    string `gorm:"column:additional_address;type:varchar(200)" json:"additional_address"`
	DeliveryRequest      string `gorm:"column:delivery_request;type:varchar(200)" json:"delivery_request"`
}

func (UserShippingDetail) TableName() string {
	return "user_shipping_details"
}

// All 供 migrate 命令使用
func All() []any {
	return []any{
		&Product{}, &ProductDetail{}, &Image{}, &ProductImage{}, &ProductOption{}, &Quantity{},
		&Color{}, &Size{}, &MainCategory{}, &SubCategory{},
		&User{}, &UserShippingDetail{},
		&Order{}, &OrderDetail{}, &OrderProduct{}, &OrderStatus{},
	}
}
