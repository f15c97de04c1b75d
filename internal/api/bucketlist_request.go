package api

// swagger:model api.BucketlistRequest
type BucketlistRequest struct {
	Name string `json:"name" form:"name" validate:"required" example:"Go skydiving in Diani"`
}

// ListBucketlistsRequest 綁定分頁與搜尋查詢參數
// swagger:model api.ListBucketlistsRequest
type ListBucketlistsRequest struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Q       string `query:"q"`
}
