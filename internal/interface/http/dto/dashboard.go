package dto

// SalesTrendsQuery 销售趋势查询参数
type SalesTrendsQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=day week month year"`
	Limit  int    `form:"limit" binding:"gte=1,lte=365"`
}

func (q *SalesTrendsQuery) ApplyDefaults() {
	if q.Period == "" {
		q.Period = "month"
	}
	if q.Limit == 0 {
		q.Limit = 12
	}
}
