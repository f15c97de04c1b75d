package auth

import (
	"errors"
	"net/http"
	"regexp"

	"bucketlist-service/internal/api"
	"bucketlist-service/internal/database"
	"bucketlist-service/internal/model"
	"bucketlist-service/internal/service"
	"bucketlist-service/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// emailRegexp 比 validator 的 email 規則嚴格：網域必須含有至少一個點
var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
)

// @Summary     Register a new user
// @Description 以 email 與密碼建立新帳號，密碼以 bcrypt 哈希後儲存
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       email    body string true "Email"
// @Param       password body string true "密碼"
// @Success     201 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse "Email 格式錯誤或欄位缺失"
// @Failure     401 {object} api.ErrorResponse "建立帳號時發生錯誤"
// @Failure     409 {object} api.ErrorResponse "Email 已註冊"
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}

		if req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Registration failed. Enter a valid email and password"})
		}
		if !emailRegexp.MatchString(req.Email) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid email format! Please enter a valid email"})
		}

		// Email 唯一性在建立前檢查
		if _, err := getUserByEmail(c.Request().Context(), db, req.Email); err == nil {
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "User already registered. Log in."})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "An error occurred during user registration, try again later"})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "An error occurred during user registration, try again later"})
		}

		if _, err := createUser(c.Request().Context(), db, &model.User{
			Email:        req.Email,
			PasswordHash: hash,
		}); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "An error occurred during user registration, try again later"})
		}

		return c.JSON(http.StatusCreated, api.MessageResponse{Message: "User created successfully! Please log in."})
	}
}

// @Summary     Log in an existing user
// @Description 驗證 email 與密碼，成功時回傳存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       email    body string true "Email"
// @Param       password body string true "密碼"
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse "Email 格式錯誤"
// @Failure     401 {object} api.ErrorResponse "欄位缺失或憑證錯誤"
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}

		// 欄位缺失回 401（非 400），與既有 API 行為一致
		if req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Both email and password are required! Try again."})
		}
		if !emailRegexp.MatchString(req.Email) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid email format! Please enter a valid email"})
		}

		user, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid username or password"})
		}

		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid username or password"})
		}

		token, err := issueAccessToken(user.ID, service.AccessTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			Message:     "User logged in successfully",
			AccessToken: token,
		})
	}
}
