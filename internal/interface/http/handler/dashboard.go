package handler

import (
	"github.com/gin-gonic/gin"

	appdashboard "github.com/xiebiao/bookstore-admin/internal/application/dashboard"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// DashboardHandler 仪表盘HTTP处理器（管理员）
type DashboardHandler struct {
	statsUseCase     *appdashboard.GetStatsUseCase
	trendsUseCase    *appdashboard.SalesTrendsUseCase
	analyticsUseCase *appdashboard.CustomerAnalyticsUseCase
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(
	statsUseCase *appdashboard.GetStatsUseCase,
	trendsUseCase *appdashboard.SalesTrendsUseCase,
	analyticsUseCase *appdashboard.CustomerAnalyticsUseCase,
) *DashboardHandler {
	return &DashboardHandler{
		statsUseCase:     statsUseCase,
		trendsUseCase:    trendsUseCase,
		analyticsUseCase: analyticsUseCase,
	}
}

// Stats 汇总统计
// @Summary      仪表盘汇总统计
// @Tags         仪表盘
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dashboard.Stats}
// @Router       /api/v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.statsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// SalesTrends 销售趋势
// @Summary      销售趋势
// @Tags         仪表盘
// @Produce      json
// @Security     BearerAuth
// @Param        period query string false "day | week | month | year" default(month)
// @Param        limit  query int    false "周期数" default(12)
// @Success      200 {object} response.Response{data=appdashboard.SalesTrendsResponse}
// @Router       /api/v1/dashboard/sales-trends [get]
func (h *DashboardHandler) SalesTrends(c *gin.Context) {
	var q dto.SalesTrendsQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.trendsUseCase.Execute(c.Request.Context(), appdashboard.SalesTrendsRequest{
		Period: q.Period,
		Limit:  q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// CustomerAnalytics 客户分析
// @Summary      客户分析
// @Tags         仪表盘
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dashboard.CustomerAnalytics}
// @Router       /api/v1/dashboard/customer-analytics [get]
func (h *DashboardHandler) CustomerAnalytics(c *gin.Context) {
	resp, err := h.analyticsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}
