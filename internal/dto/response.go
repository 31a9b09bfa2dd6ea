package dto

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// ── 系统状态 ──

// StatusResponse 目录与存储状态（GET /api/v1/status）
type StatusResponse struct {
	Store        string `json:"store"`
	CacheEnabled bool   `json:"cache_enabled"`
	Courses      int64  `json:"courses"`
	Modules      int64  `json:"modules"`
}

// ImportResult 目录导入结果
type ImportResult struct {
	Courses int `json:"courses"`
	Modules int `json:"modules"`
}
