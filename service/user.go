package service

import (
	"context"
	"errors"

	"Brandi/config"
	"Brandi/dao"
	"Brandi/models"
	"Brandi/pkg/clock"
	"Brandi/pkg/encrypt"
	"Brandi/pkg/errs"
	"Brandi/pkg/identity"
	"Brandi/pkg/jwt"
	"Brandi/pkg/paginate"
	"Brandi/types"
)

var (
	ErrEmailExists     = errs.Conflict("EMAIL_EXISTS")
	ErrUnauthorized    = errs.Unauthorized("UNAUTHORIZED")
	ErrFailSocialLogin = errs.Unauthorized("FAIL_SOCIAL_LOGIN")
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	SignUp(ctx context.Context, req *types.SignUpRequest) (*types.SignUpResponse, error)
	SignIn(ctx context.Context, req *types.SignInRequest) (*types.TokenResponse, error)
	GoogleSignIn(ctx context.Context, idToken string) (*types.TokenResponse, error)
	ListUsers(ctx context.Context, req *types.UserListRequest) (*types.UserListResponse, error)
	IsAdmin(ctx context.Context, userNo uint64) (bool, error)
}

type UserService struct {
	Config    *config.Config
	Clock     clock.Clock
	Identity  identity.Provider
	UsersRepo *dao.Users
}

// SignUp 邮箱注册
func (s *UserService) SignUp(ctx context.Context, req *types.SignUpRequest) (*types.SignUpResponse, error) {
	exist, err := s.UsersRepo.IsEmailExist(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrEmailExists
	}

	hash, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: &hash,
	}
	if err := s.UsersRepo.Create(ctx, user); err != nil {
		if errors.Is(err, dao.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return &types.SignUpResponse{UserNo: user.UserNo}, nil
}

// SignIn 邮箱密码登录，账号不存在与密码错误返回同一个错误
func (s *UserService) SignIn(ctx context.Context, req *types.SignInRequest) (*types.TokenResponse, error) {
	user, err := s.UsersRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == nil || !encrypt.VerifyPassword(*user.Password, req.Password) {
		return nil, ErrUnauthorized
	}
	return s.signedIn(ctx, user.UserNo)
}

// GoogleSignIn 校验 Google ID token，首次登录时创建账号
func (s *UserService) GoogleSignIn(ctx context.Context, idToken string) (*types.TokenResponse, error) {
	id, err := s.Identity.Verify(ctx, idToken)
	if err != nil {
		return nil, ErrFailSocialLogin.Wrap(err)
	}

	user, err := s.UsersRepo.FindBySocial(ctx, models.SocialGoogle, id.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		name := id.Name
		if name == "" {
			name = id.Email
		}
		social := models.SocialGoogle
		subject := id.Subject
		user = &models.User{
			Name:         name,
			Email:        id.Email,
			SocialID:     &social,
			UserSocialID: &subject,
		}
		if err := s.UsersRepo.Create(ctx, user); err != nil {
			if errors.Is(err, dao.ErrDuplicate) {
				return nil, ErrEmailExists
			}
			return nil, err
		}
	}
	return s.signedIn(ctx, user.UserNo)
}

func (s *UserService) signedIn(ctx context.Context, userNo uint64) (*types.TokenResponse, error) {
	if err := s.UsersRepo.TouchLastAccess(ctx, userNo, s.Clock.Now()); err != nil {
		return nil, err
	}
	token, err := s.GenerateAccessToken(userNo)
	if err != nil {
		return nil, err
	}
	return &types.TokenResponse{AccessToken: token}, nil
}

// GenerateAccessToken jwt.expire 为 0 时签发不过期的 token
func (s *UserService) GenerateAccessToken(userNo uint64) (string, error) {
	return jwt.GenerateToken([]byte(s.Config.Jwt.Secret), userNo, jwt.TypeAccess, s.Config.Jwt.Expire)
}

// ListUsers 后台用户列表
func (s *UserService) ListUsers(ctx context.Context, req *types.UserListRequest) (*types.UserListResponse, error) {
	page := paginate.New(req.Page, req.Limit)

	total, err := s.UsersRepo.CountLive(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.UsersRepo.ListLive(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]*types.UserListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, &types.UserListItem{
			UserNo:      r.UserNo,
			Name:        r.Name,
			Email:       r.Email,
			PhoneNumber: r.PhoneNumber,
			LastAccess:  r.LastAccess,
			CreatedAt:   r.CreatedAt,
		})
	}
	return &types.UserListResponse{TotalUserNumber: total, Data: items}, nil
}

func (s *UserService) IsAdmin(ctx context.Context, userNo uint64) (bool, error) {
	user, err := s.UsersRepo.FindByNo(ctx, userNo)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin, nil
}
