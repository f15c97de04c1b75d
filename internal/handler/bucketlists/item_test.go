package bucketlists

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bucketlist-service/internal/cache"
	"bucketlist-service/internal/database"
	"bucketlist-service/internal/model"
	"bucketlist-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestCreateItemHandler(t *testing.T) {
	t.Cleanup(restoreBucketlistGlobals)
	db := &database.FakeDB{}
	e := echo.New()
	e.Validator = okValidator{}
	now := time.Now().UTC()

	newCreateCtx := func(id, body string) (echo.Context, *httptest.ResponseRecorder) {
		ctx, rec := newJSONCtx(e, http.MethodPost, "/", body)
		ctx.SetParamNames("id")
		ctx.SetParamValues(id)
		return ctx, rec
	}

	// invalid bucketlist id
	ctx, rec := newCreateCtx("abc", `{"name":"Visit Japan"}`)
	require.NoError(t, CreateItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validate error
	e2 := echo.New()
	e2.Validator = errValidator{}
	ctx, rec = newJSONCtx(e2, http.MethodPost, "/", `{"name":""}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues("3")
	require.NoError(t, CreateItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// parent bucketlist missing
	authorizeBucketlist = func(context.Context, database.DB, int, int) (service.Decision, *model.Bucketlist, error) {
		return service.DecisionNotFound, nil, nil
	}
	ctx, rec = newCreateCtx("3", `{"name":"Visit Japan"}`)
	require.NoError(t, CreateItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Bucketlist 3 does not exist")

	// parent owned by someone else
	authorizeBucketlist = func(context.Context, database.DB, int, int) (service.Decision, *model.Bucketlist, error) {
		return service.DecisionDeny, nil, nil
	}
	ctx, rec = newCreateCtx("3", `{"name":"Visit Japan"}`)
	require.NoError(t, CreateItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 2)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid user. Please log in to continue.")

	// store error
	authorizeBucketlist = func(context.Context, database.DB, int, int) (service.Decision, *model.Bucketlist, error) {
		b := model.Bucketlist{ID: 3, CreatedBy: 1}
		return service.DecisionAllow, &b, nil
	}
	createItem = func(context.Context, database.DB, *model.BucketlistItem) (*model.BucketlistItem, error) {
		return nil, errors.New("insert fail")
	}
	ctx, rec = newCreateCtx("3", `{"name":"Visit Japan"}`)
	require.NoError(t, CreateItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// success
	createItem = func(_ context.Context, _ database.DB, item *model.BucketlistItem) (*model.BucketlistItem, error) {
		require.Equal(t, "Visit Japan", item.Name)
		require.Equal(t, 3, item.BucketlistID)
		item.ID = 9
		item.DateCreated = now
		item.DateModified = now
		return item, nil
	}
	var bumped []string
	ctx, rec = newCreateCtx("3", `{"name":"Visit Japan"}`)
	require.NoError(t, CreateItemHandler(db, incrRecorder(&bumped), syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "Visit Japan")
	require.Equal(t, []string{"bucketlists:ver:1"}, bumped)
}

func TestUpdateItemHandler(t *testing.T) {
	t.Cleanup(restoreBucketlistGlobals)
	db := &database.FakeDB{}
	e := echo.New()
	now := time.Now().UTC()

	newUpdateCtx := func(id, itemID, body string) (echo.Context, *httptest.ResponseRecorder) {
		ctx, rec := newJSONCtx(e, http.MethodPut, "/", body)
		ctx.SetParamNames("id", "item_id")
		ctx.SetParamValues(id, itemID)
		return ctx, rec
	}

	// invalid item id
	ctx, rec := newUpdateCtx("3", "abc", `{"done":true}`)
	require.NoError(t, UpdateItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// item missing, or attached to another bucketlist
	authorizeItem = func(context.Context, database.DB, int, int, int) (service.Decision, *model.BucketlistItem, error) {
		return service.DecisionNotFound, nil, nil
	}
	ctx, rec = newUpdateCtx("3", "9", `{"done":true}`)
	require.NoError(t, UpdateItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Bucketlist item 9 does not exist")

	// parent owned by someone else
	authorizeItem = func(context.Context, database.DB, int, int, int) (service.Decision, *model.BucketlistItem, error) {
		return service.DecisionDeny, nil, nil
	}
	ctx, rec = newUpdateCtx("3", "9", `{"done":true}`)
	require.NoError(t, UpdateItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 2)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// partial update: only done provided, name keeps its value
	authorizeItem = func(_ context.Context, _ database.DB, userID, bucketlistID, itemID int) (service.Decision, *model.BucketlistItem, error) {
		require.Equal(t, 1, userID)
		require.Equal(t, 3, bucketlistID)
		require.Equal(t, 9, itemID)
		item := model.BucketlistItem{ID: 9, Name: "Visit Japan", BucketlistID: 3, DateCreated: now, DateModified: now}
		return service.DecisionAllow, &item, nil
	}
	updateItem = func(_ context.Context, _ database.DB, item *model.BucketlistItem) (*model.BucketlistItem, error) {
		require.Equal(t, "Visit Japan", item.Name)
		require.True(t, item.Done)
		return item, nil
	}
	var bumped []string
	ctx, rec = newUpdateCtx("3", "9", `{"done":true}`)
	require.NoError(t, UpdateItemHandler(db, incrRecorder(&bumped), syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"done":true`)
	require.Equal(t, []string{"bucketlists:ver:1"}, bumped)

	// partial update: only name provided, done keeps its value
	updateItem = func(_ context.Context, _ database.DB, item *model.BucketlistItem) (*model.BucketlistItem, error) {
		require.Equal(t, "Climb Fuji", item.Name)
		require.False(t, item.Done)
		return item, nil
	}
	ctx, rec = newUpdateCtx("3", "9", `{"name":"Climb Fuji"}`)
	require.NoError(t, UpdateItemHandler(db, incrRecorder(&bumped), syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Climb Fuji")

	// update error
	updateItem = func(context.Context, database.DB, *model.BucketlistItem) (*model.BucketlistItem, error) {
		return nil, errors.New("update fail")
	}
	ctx, rec = newUpdateCtx("3", "9", `{"done":true}`)
	require.NoError(t, UpdateItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeleteItemHandler(t *testing.T) {
	t.Cleanup(restoreBucketlistGlobals)
	db := &database.FakeDB{}
	e := echo.New()

	newDeleteCtx := func(id, itemID string) (echo.Context, *httptest.ResponseRecorder) {
		ctx, rec := newJSONCtx(e, http.MethodDelete, "/", "")
		ctx.SetParamNames("id", "item_id")
		ctx.SetParamValues(id, itemID)
		return ctx, rec
	}

	// item missing
	authorizeItem = func(context.Context, database.DB, int, int, int) (service.Decision, *model.BucketlistItem, error) {
		return service.DecisionNotFound, nil, nil
	}
	ctx, rec := newDeleteCtx("3", "9")
	require.NoError(t, DeleteItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Bucketlist item 9 does not exist")

	// parent owned by someone else
	authorizeItem = func(context.Context, database.DB, int, int, int) (service.Decision, *model.BucketlistItem, error) {
		return service.DecisionDeny, nil, nil
	}
	ctx, rec = newDeleteCtx("3", "9")
	require.NoError(t, DeleteItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 2)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// delete error
	authorizeItem = func(context.Context, database.DB, int, int, int) (service.Decision, *model.BucketlistItem, error) {
		item := model.BucketlistItem{ID: 9, BucketlistID: 3}
		return service.DecisionAllow, &item, nil
	}
	deleteItem = func(context.Context, database.DB, int) error { return errors.New("delete fail") }
	ctx, rec = newDeleteCtx("3", "9")
	require.NoError(t, DeleteItemHandler(db, &cache.FakeCache{}, syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// success
	deleteItem = func(_ context.Context, _ database.DB, itemID int) error {
		require.Equal(t, 9, itemID)
		return nil
	}
	var bumped []string
	ctx, rec = newDeleteCtx("3", "9")
	require.NoError(t, DeleteItemHandler(db, incrRecorder(&bumped), syncPool{})(withClaims(ctx, 1)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Bucketlist item 9 deleted successfully")
	require.Equal(t, []string{"bucketlists:ver:1"}, bumped)
}
