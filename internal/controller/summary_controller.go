package controller

import (
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	SummaryService *service.SummaryService
}

func NewSummaryController(summaryService *service.SummaryService) *SummaryController {
	return &SummaryController{SummaryService: summaryService}
}

// GetSummary godoc
// @Summary 完成情况汇总
// @Description 每个有记录的日期的完成数与可做数，用于热力图
// @Tags 汇总
// @Produce json
// @Success 200 {array} service.SummaryItem
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /summary [get]
func (c *SummaryController) GetSummary(ctx *gin.Context) {
	items, err := c.SummaryService.Summarize(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}
