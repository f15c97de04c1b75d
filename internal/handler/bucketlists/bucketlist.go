package bucketlists

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bucketlist-service/internal/api"
	"bucketlist-service/internal/cache"
	"bucketlist-service/internal/database"
	"bucketlist-service/internal/middleware"
	"bucketlist-service/internal/model"
	"bucketlist-service/internal/service"
	"bucketlist-service/internal/store"
	"bucketlist-service/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100

	// 列表快取以擁有者版本號組 key，寫入時跳版本即失效
	listCacheTTL = 5 * time.Minute
)

var (
	authorizeBucketlist = service.AuthorizeBucketlist
	authorizeItem       = service.AuthorizeItem
	createBucketlist    = store.CreateBucketlist
	listBucketlists     = store.ListBucketlists
	listItems           = store.ListItemsByBucketlist
	updateBucketlist    = store.UpdateBucketlist
	deleteBucketlist    = store.DeleteBucketlist
	createItem          = store.CreateItem
	updateItem          = store.UpdateItem
	deleteItem          = store.DeleteItem
	jsonMarshal         = json.Marshal
)

func currentClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(middleware.ContextUserKey).(*service.Claims)
	if !ok || claims.UserID == 0 {
		return nil, false
	}
	return claims, true
}

func versionKey(userID int) string {
	return fmt.Sprintf("bucketlists:ver:%d", userID)
}

func listKey(userID int, version int64, q string, page, perPage int) string {
	return fmt.Sprintf("bucketlists:list:%d:%d:%s:%d:%d", userID, version, q, page, perPage)
}

// bumpListVersion 在背景跳升擁有者的列表版本，讓舊快取失效
// 請求路徑不等待 Redis 回應
func bumpListVersion(cch cache.Cache, wp worker.Pool, userID int) {
	wp.Submit(func() {
		cch.Incr(context.Background(), versionKey(userID))
	})
}

func toItemResponse(item model.BucketlistItem) api.ItemResponse {
	return api.ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Done:         item.Done,
		DateCreated:  item.DateCreated,
		DateModified: item.DateModified,
		BucketlistID: item.BucketlistID,
	}
}

func toBucketlistResponse(b *model.Bucketlist) api.BucketlistResponse {
	items := make([]api.ItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, toItemResponse(item))
	}
	return api.BucketlistResponse{
		ID:           b.ID,
		Name:         b.Name,
		Items:        items,
		DateCreated:  b.DateCreated,
		DateModified: b.DateModified,
		CreatedBy:    b.CreatedBy,
	}
}

// @Summary     Create a new bucketlist
// @Description 為目前使用者建立新的 bucketlist
// @Tags        bucketlists
// @Accept      json
// @Produce     json
// @Param       name body string true "Bucketlist 名稱"
// @Success     201 {object} api.BucketlistResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /bucketlists [post]
func CreateBucketlistHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		var req api.BucketlistRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		b, err := createBucketlist(c.Request().Context(), db, &model.Bucketlist{
			Name:      req.Name,
			CreatedBy: claims.UserID,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to create bucketlist"})
		}

		bumpListVersion(cch, wp, claims.UserID)
		return c.JSON(http.StatusCreated, toBucketlistResponse(b))
	}
}

// @Summary     List bucketlists
// @Description 回傳目前使用者擁有的 bucketlist，支援分頁與名稱搜尋
// @Tags        bucketlists
// @Produce     json
// @Param       page     query int    false "頁碼（預設 1）"
// @Param       per_page query int    false "每頁筆數（預設 20，最多 100）"
// @Param       q        query string false "名稱搜尋字串"
// @Success     200 {array}  api.BucketlistResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /bucketlists [get]
func ListBucketlistsHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		var req api.ListBucketlistsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid query parameters"})
		}
		if req.Page < 1 {
			req.Page = 1
		}
		if req.PerPage < 1 {
			req.PerPage = defaultPerPage
		}
		if req.PerPage > maxPerPage {
			req.PerPage = maxPerPage
		}

		ctx := c.Request().Context()

		// Redis 故障時跳過快取，直接讀資料庫
		version, versionOK := int64(0), false
		if v, err := cch.Get(ctx, versionKey(claims.UserID)).Int64(); err == nil {
			version, versionOK = v, true
		} else if errors.Is(err, redis.Nil) {
			versionOK = true
		}

		key := listKey(claims.UserID, version, req.Q, req.Page, req.PerPage)
		if versionOK {
			if raw, err := cch.Get(ctx, key).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, raw)
			}
		}

		lists, err := listBucketlists(ctx, db, claims.UserID, req.Q, req.Page, req.PerPage)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list bucketlists"})
		}

		resp := make([]api.BucketlistResponse, 0, len(lists))
		for i := range lists {
			resp = append(resp, toBucketlistResponse(&lists[i]))
		}

		data, err := jsonMarshal(resp)
		if err != nil {
			return c.JSON(http.StatusOK, resp)
		}
		if versionOK {
			cch.Set(ctx, key, data, listCacheTTL)
		}
		return c.JSONBlob(http.StatusOK, data)
	}
}

// @Summary     Get a bucketlist by ID
// @Description 回傳指定 bucketlist 及其項目，僅限擁有者
// @Tags        bucketlists
// @Produce     json
// @Param       id path int true "Bucketlist ID"
// @Success     200 {object} api.BucketlistResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse "非擁有者"
// @Failure     404 {object} api.ErrorResponse "Bucketlist 不存在"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /bucketlists/{id} [get]
func GetBucketlistHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid bucketlist ID"})
		}

		decision, b, err := authorizeBucketlist(c.Request().Context(), db, claims.UserID, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load bucketlist"})
		}
		switch decision {
		case service.DecisionNotFound:
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: fmt.Sprintf("Bucketlist %d does not exist", id)})
		case service.DecisionDeny:
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid user. Please log in to view a bucketlist."})
		}

		items, err := listItems(c.Request().Context(), db, b.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load bucketlist items"})
		}
		b.Items = items
		return c.JSON(http.StatusOK, toBucketlistResponse(b))
	}
}

// @Summary     Update a bucketlist
// @Description 更新指定 bucketlist 的名稱，僅限擁有者
// @Tags        bucketlists
// @Accept      json
// @Produce     json
// @Param       id   path int    true "Bucketlist ID"
// @Param       name body string true "新名稱"
// @Success     200 {object} api.BucketlistResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse "非擁有者"
// @Failure     404 {object} api.ErrorResponse "Bucketlist 不存在"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /bucketlists/{id} [put]
func UpdateBucketlistHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid bucketlist ID"})
		}

		var req api.BucketlistRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		decision, _, err := authorizeBucketlist(c.Request().Context(), db, claims.UserID, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load bucketlist"})
		}
		switch decision {
		case service.DecisionNotFound:
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: fmt.Sprintf("Bucketlist %d does not exist", id)})
		case service.DecisionDeny:
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid user. Please log in to update a bucketlist."})
		}

		updated, err := updateBucketlist(c.Request().Context(), db, id, req.Name)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to update bucketlist"})
		}

		items, err := listItems(c.Request().Context(), db, updated.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load bucketlist items"})
		}
		updated.Items = items

		bumpListVersion(cch, wp, claims.UserID)
		return c.JSON(http.StatusOK, toBucketlistResponse(updated))
	}
}

// @Summary     Delete a bucketlist
// @Description 刪除指定 bucketlist 及其所有項目，僅限擁有者
// @Tags        bucketlists
// @Param       id path int true "Bucketlist ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse "非擁有者"
// @Failure     404 {object} api.ErrorResponse "Bucketlist 不存在"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /bucketlists/{id} [delete]
func DeleteBucketlistHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid bucketlist ID"})
		}

		decision, _, err := authorizeBucketlist(c.Request().Context(), db, claims.UserID, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load bucketlist"})
		}
		switch decision {
		case service.DecisionNotFound:
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: fmt.Sprintf("Bucketlist %d does not exist", id)})
		case service.DecisionDeny:
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid user. Please log in to delete a bucketlist."})
		}

		if err := deleteBucketlist(c.Request().Context(), db, id); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to delete bucketlist"})
		}

		bumpListVersion(cch, wp, claims.UserID)
		return c.NoContent(http.StatusNoContent)
	}
}
