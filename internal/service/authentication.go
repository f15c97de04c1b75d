// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"

	"bucketlist-service/internal/model"
)

// AuthenticateUser 根據使用者結構和明文密碼驗證
// 任何比對失敗（含哈希格式錯誤）都回傳相同錯誤，不洩漏原因
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return errors.New("invalid password")
	}
	return nil
}
