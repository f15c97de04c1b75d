package router

import (
	"github.com/labstack/echo/v4"

	"bucketlist-service/internal/cache"
	"bucketlist-service/internal/database"
	"bucketlist-service/internal/handler"
	"bucketlist-service/internal/handler/auth"
	"bucketlist-service/internal/handler/bucketlists"
	"bucketlist-service/internal/middleware"
	"bucketlist-service/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, wp worker.Pool) {
	// 健康檢查（需登入）
	e.GET("/ping", handler.PingHandler(db, cch), middleware.RequireAuth)

	// 註冊與登入
	apiAuth := e.Group("/auth")
	apiAuth.POST("/register", auth.RegisterHandler(db))
	apiAuth.POST("/login", auth.LoginHandler(db))

	// Bucketlist CRUD，全部經過身份驗證與擁有權檢查
	apiBucketlists := e.Group("/bucketlists", middleware.RequireAuth)
	apiBucketlists.POST("/", bucketlists.CreateBucketlistHandler(db, cch, wp))
	apiBucketlists.GET("/", bucketlists.ListBucketlistsHandler(db, cch))
	apiBucketlists.GET("/:id", bucketlists.GetBucketlistHandler(db))
	apiBucketlists.PUT("/:id", bucketlists.UpdateBucketlistHandler(db, cch, wp))
	apiBucketlists.DELETE("/:id", bucketlists.DeleteBucketlistHandler(db, cch, wp))

	// Bucketlist 項目，授權鏈：項目 → bucketlist → 使用者
	apiBucketlists.POST("/:id/items", bucketlists.CreateItemHandler(db, cch, wp))
	apiBucketlists.PUT("/:id/items/:item_id", bucketlists.UpdateItemHandler(db, cch, wp))
	apiBucketlists.DELETE("/:id/items/:item_id", bucketlists.DeleteItemHandler(db, cch, wp))
}
