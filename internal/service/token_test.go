package service

import (
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func restoreTokenGlobals() {
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
}

func TestIssueAccessToken(t *testing.T) {
	t.Cleanup(restoreTokenGlobals)
	os.Unsetenv("JWT_SECRET")
	_, err := IssueAccessToken(1, time.Minute)
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	tok, err := IssueAccessToken(5, time.Minute)
	require.NoError(t, err)
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil })
	require.NoError(t, err)
	require.Equal(t, 5, claims.UserID)
	require.Equal(t, "5", claims.Subject)
}

func TestVerifyAccessTokenRoundTrip(t *testing.T) {
	t.Cleanup(restoreTokenGlobals)
	t.Setenv("JWT_SECRET", "s")

	tok, err := IssueAccessToken(3, AccessTokenTTL)
	require.NoError(t, err)
	claims, err := VerifyAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, 3, claims.UserID)
}

func TestVerifyAccessTokenFailures(t *testing.T) {
	t.Cleanup(restoreTokenGlobals)
	os.Unsetenv("JWT_SECRET")
	_, err := VerifyAccessToken("abc")
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")

	// 非 JWT 字串
	_, err = VerifyAccessToken("invalid")
	require.ErrorIs(t, err, ErrTokenMalformed)

	// alg=none
	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"foo": "bar"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = VerifyAccessToken(tokNone)
	require.ErrorIs(t, err, ErrTokenMalformed)

	// 簽章不符
	other, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("wrong-secret"))
	_, err = VerifyAccessToken(other)
	require.ErrorIs(t, err, ErrTokenSignature)

	// 缺少 exp
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("s"))
	_, err = VerifyAccessToken(noExp)
	require.ErrorIs(t, err, ErrTokenMalformed)

	// 解析成功但 token 標記無效
	parseWithClaims = func(s string, c jwt.Claims, k jwt.Keyfunc, opts ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = VerifyAccessToken("whatever")
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	t.Cleanup(restoreTokenGlobals)
	t.Setenv("JWT_SECRET", "s")

	// 以過去時間簽發，驗證時已過期
	timeNow = func() time.Time { return time.Now().Add(-2 * AccessTokenTTL) }
	tok, err := IssueAccessToken(7, AccessTokenTTL)
	require.NoError(t, err)

	timeNow = time.Now
	_, err = VerifyAccessToken(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}
