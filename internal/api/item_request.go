package api

// swagger:model api.ItemRequest
type ItemRequest struct {
	Name string `json:"name" form:"name" validate:"required" example:"Buy skydiving gear and take lessons"`
}

// UpdateItemRequest 部分更新：未出現的欄位保持原值
// swagger:model api.UpdateItemRequest
type UpdateItemRequest struct {
	Name *string `json:"name" form:"name"`
	Done *bool   `json:"done" form:"done"`
}
