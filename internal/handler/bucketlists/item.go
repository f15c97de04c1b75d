package bucketlists

import (
	"fmt"
	"net/http"
	"strconv"

	"bucketlist-service/internal/api"
	"bucketlist-service/internal/cache"
	"bucketlist-service/internal/database"
	"bucketlist-service/internal/model"
	"bucketlist-service/internal/service"
	"bucketlist-service/internal/worker"

	"github.com/labstack/echo/v4"
)

// @Summary     Create a bucketlist item
// @Description 在指定 bucketlist 下新增項目，僅限擁有者
// @Tags        items
// @Accept      json
// @Produce     json
// @Param       id   path int    true "Bucketlist ID"
// @Param       name body string true "項目名稱"
// @Success     201 {object} api.ItemResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse "非擁有者"
// @Failure     404 {object} api.ErrorResponse "Bucketlist 不存在"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /bucketlists/{id}/items [post]
func CreateItemHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		bucketlistID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid bucketlist ID"})
		}

		var req api.ItemRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		// 項目的授權透過父 bucketlist 的擁有者檢查
		decision, _, err := authorizeBucketlist(c.Request().Context(), db, claims.UserID, bucketlistID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load bucketlist"})
		}
		switch decision {
		case service.DecisionNotFound:
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: fmt.Sprintf("Bucketlist %d does not exist", bucketlistID)})
		case service.DecisionDeny:
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid user. Please log in to continue."})
		}

		item, err := createItem(c.Request().Context(), db, &model.BucketlistItem{
			Name:         req.Name,
			BucketlistID: bucketlistID,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to create bucketlist item"})
		}

		bumpListVersion(cch, wp, claims.UserID)
		return c.JSON(http.StatusCreated, toItemResponse(*item))
	}
}

// @Summary     Update a bucketlist item
// @Description 更新項目名稱或完成狀態，未提供的欄位保持原值，僅限擁有者
// @Tags        items
// @Accept      json
// @Produce     json
// @Param       id      path int     true  "Bucketlist ID"
// @Param       item_id path int     true  "項目 ID"
// @Param       name    body string  false "項目名稱"
// @Param       done    body boolean false "完成狀態"
// @Success     200 {object} api.ItemResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse "非擁有者"
// @Failure     404 {object} api.ErrorResponse "項目不存在"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /bucketlists/{id}/items/{item_id} [put]
func UpdateItemHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		bucketlistID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid bucketlist ID"})
		}
		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid item ID"})
		}

		var req api.UpdateItemRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}

		decision, item, err := authorizeItem(c.Request().Context(), db, claims.UserID, bucketlistID, itemID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load bucketlist item"})
		}
		switch decision {
		case service.DecisionNotFound:
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: fmt.Sprintf("Bucketlist item %d does not exist", itemID)})
		case service.DecisionDeny:
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid user. Please log in to continue."})
		}

		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Done != nil {
			item.Done = *req.Done
		}

		updated, err := updateItem(c.Request().Context(), db, item)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to update bucketlist item"})
		}

		bumpListVersion(cch, wp, claims.UserID)
		return c.JSON(http.StatusOK, toItemResponse(*updated))
	}
}

// @Summary     Delete a bucketlist item
// @Description 從指定 bucketlist 刪除項目，僅限擁有者
// @Tags        items
// @Produce     json
// @Param       id      path int true "Bucketlist ID"
// @Param       item_id path int true "項目 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse "非擁有者"
// @Failure     404 {object} api.ErrorResponse "項目不存在"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /bucketlists/{id}/items/{item_id} [delete]
func DeleteItemHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		bucketlistID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid bucketlist ID"})
		}
		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid item ID"})
		}

		decision, _, err := authorizeItem(c.Request().Context(), db, claims.UserID, bucketlistID, itemID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load bucketlist item"})
		}
		switch decision {
		case service.DecisionNotFound:
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: fmt.Sprintf("Bucketlist item %d does not exist", itemID)})
		case service.DecisionDeny:
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid user. Please log in to continue."})
		}

		if err := deleteItem(c.Request().Context(), db, itemID); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to delete bucketlist item"})
		}

		bumpListVersion(cch, wp, claims.UserID)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: fmt.Sprintf("Bucketlist item %d deleted successfully", itemID)})
	}
}
