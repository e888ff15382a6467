package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Brandi/config"
	"Brandi/pkg/jwt"
	"Brandi/service"
	"Brandi/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "handler-test"

type fakeUsers struct {
	admins   map[uint64]bool
	listReq  *types.UserListRequest
	signInOK bool
}

func (f *fakeUsers) SignUp(context.Context, *types.SignUpRequest) (*types.SignUpResponse, error) {
	return &types.SignUpResponse{UserNo: 1}, nil
}

func (f *fakeUsers) SignIn(context.Context, *types.SignInRequest) (*types.TokenResponse, error) {
	if !f.signInOK {
		return nil, service.ErrUnauthorized
	}
	return &types.TokenResponse{AccessToken: "tok"}, nil
}

func (f *fakeUsers) GoogleSignIn(context.Context, string) (*types.TokenResponse, error) {
	return nil, service.ErrFailSocialLogin
}

func (f *fakeUsers) ListUsers(_ context.Context, req *types.UserListRequest) (*types.UserListResponse, error) {
	f.listReq = req
	return &types.UserListResponse{
		TotalUserNumber: 1,
		Data:            []*types.UserListItem{{UserNo: 5, Name: "kim", Email: "kim@brandi.co.kr"}},
	}, nil
}

func (f *fakeUsers) IsAdmin(_ context.Context, userNo uint64) (bool, error) {
	return f.admins[userNo], nil
}

func newRouter(users *fakeUsers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	conf := &config.Config{Jwt: &config.Jwt{Secret: secret}}
	r := gin.New()
	(&User{Config: conf, UserService: users}).RegisterRouter(r)
	(&AdminUser{Config: conf, UserService: users}).RegisterRouter(r)
	(&Product{Config: conf}).RegisterRouter(r)
	return r
}

func bearer(t *testing.T, userNo uint64) string {
	token, err := jwt.GenerateToken([]byte(secret), userNo, jwt.TypeAccess, 0)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestUserList_Admin(t *testing.T) {
	users := &fakeUsers{admins: map[uint64]bool{1: true}}
	r := newRouter(users)

	req := httptest.NewRequest(http.MethodGet, "/admin/user/userlist?page=2&limit=5", nil)
	req.Header.Set("Authorization", bearer(t, 1))
	w, body := serve(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total_user_number"])
	assert.Len(t, body["data"], 1)
	assert.Equal(t, 2, users.listReq.Page)
	assert.Equal(t, 5, users.listReq.Limit)
}

func TestUserList_NotAdmin(t *testing.T) {
	r := newRouter(&fakeUsers{admins: map[uint64]bool{}})

	req := httptest.NewRequest(http.MethodGet, "/admin/user/userlist", nil)
	req.Header.Set("Authorization", bearer(t, 2))
	w, body := serve(r, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "PERMISSION_DENIED", body["message"])
}

func TestUserList_NoToken(t *testing.T) {
	r := newRouter(&fakeUsers{})

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/admin/user/userlist", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", body["message"])
}

func TestSignIn(t *testing.T) {
	payload := `{"email":"kim@brandi.co.kr","password":"pw"}`

	w, body := serve(newRouter(&fakeUsers{signInOK: true}),
		httptest.NewRequest(http.MethodPost, "/user/signin", strings.NewReader(payload)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok", body["access_token"])

	w, body = serve(newRouter(&fakeUsers{}),
		httptest.NewRequest(http.MethodPost, "/user/signin", strings.NewReader(payload)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", body["message"])
}

func TestGoogleSignIn_MissingToken(t *testing.T) {
	w, body := serve(newRouter(&fakeUsers{}), httptest.NewRequest(http.MethodPost, "/user/google-signin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "FAIL_SOCIAL_LOGIN", body["message"])
}

func TestProductDetail_BadID(t *testing.T) {
	w, body := serve(newRouter(&fakeUsers{}), httptest.NewRequest(http.MethodGet, "/products/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PRODUCT_ID", body["message"])
}
