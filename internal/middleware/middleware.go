package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bucketlist-service/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// ErrMissingToken 表示請求未附帶 Authorization 標頭
var ErrMissingToken = errors.New("missing token")

var verifyAccessToken = service.VerifyAccessToken

// ResolveIdentity 將 Authorization 標頭的原始值解析為已驗證的身份
// 令牌即標頭原始值，容許帶 Bearer 前綴；不存取資料庫，
// 任意輸入都不會 panic，解析失敗一律回傳分類錯誤
func ResolveIdentity(rawHeader string) (*service.Claims, error) {
	token := strings.TrimSpace(rawHeader)
	if token == "" {
		return nil, ErrMissingToken
	}
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return verifyAccessToken(token)
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "Failed! You must be logged in to continue."
	case errors.Is(err, service.ErrTokenExpired):
		return "Token is expired! Login again."
	default:
		return "Invalid token! Login again or register."
	}
}

// RequireAuth 驗證請求令牌並將 Claims 放入 context
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := ResolveIdentity(c.Request().Header.Get("Authorization"))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, failureMessage(err))
		}
		c.Set(ContextUserKey, claims)
		return next(c)
	}
}
