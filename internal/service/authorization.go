// File: internal/service/authorization.go
package service

import (
	"context"
	"errors"

	"bucketlist-service/internal/database"
	"bucketlist-service/internal/model"
	"bucketlist-service/internal/store"

	"github.com/jackc/pgx/v5"
)

// Decision 是授權檢查的結果
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionDeny
	DecisionNotFound
)

var (
	getBucketlistByID = store.GetBucketlistByID
	getItemByID       = store.GetItemByID
)

// AuthorizeBucketlist 檢查 userID 是否擁有指定的 bucketlist
// 先確認資源存在再比對擁有者：以他人令牌探測不存在的 ID 只會得到
// NotFound，不會因 Deny 洩漏資源存在與否
// Allow 時一併回傳已載入的資源，呼叫端不需重查
func AuthorizeBucketlist(ctx context.Context, db database.DB, userID, bucketlistID int) (Decision, *model.Bucketlist, error) {
	b, err := getBucketlistByID(ctx, db, bucketlistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DecisionNotFound, nil, nil
		}
		return DecisionNotFound, nil, err
	}
	if b.CreatedBy != userID {
		return DecisionDeny, nil, nil
	}
	return DecisionAllow, b, nil
}

// AuthorizeItem 檢查 userID 是否擁有指定 bucketlist 下的項目
// 項目的有效擁有者是其父 bucketlist 的建立者（擁有權鏈：項目 → bucketlist → 使用者）
// 項目不存在、不屬於路徑中的 bucketlist、或父 bucketlist 已消失，一律視為 NotFound
func AuthorizeItem(ctx context.Context, db database.DB, userID, bucketlistID, itemID int) (Decision, *model.BucketlistItem, error) {
	item, err := getItemByID(ctx, db, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DecisionNotFound, nil, nil
		}
		return DecisionNotFound, nil, err
	}
	if item.BucketlistID != bucketlistID {
		return DecisionNotFound, nil, nil
	}

	b, err := getBucketlistByID(ctx, db, item.BucketlistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DecisionNotFound, nil, nil
		}
		return DecisionNotFound, nil, err
	}
	if b.CreatedBy != userID {
		return DecisionDeny, nil, nil
	}
	return DecisionAllow, item, nil
}
