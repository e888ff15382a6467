package types

import "time"

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,max=45"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type SignUpResponse struct {
	UserNo uint64 `json:"user_no"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type UserListRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

type UserListItem struct {
	UserNo      uint64     `json:"user_no"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	LastAccess  *time.Time `json:"last_access"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UserListResponse struct {
	TotalUserNumber int64           `json:"total_user_number"`
	Data            []*UserListItem `json:"data"`
}
