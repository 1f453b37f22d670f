package controller

import (
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DayController struct {
	DayService *service.DayService
	Calendar   *util.Calendar
}

func NewDayController(dayService *service.DayService, calendar *util.Calendar) *DayController {
	return &DayController{DayService: dayService, Calendar: calendar}
}

// GetDay godoc
// @Summary 获取某天的习惯
// @Description 返回当天可做的习惯和已完成的习惯ID
// @Tags 日
// @Produce json
// @Param date query string true "ISO8601 日期或时间戳"
// @Success 200 {object} service.DayView
// @Failure 400 {object} util.Response "日期缺失或格式错误"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /day [get]
func (c *DayController) GetDay(ctx *gin.Context) {
	date, err := c.Calendar.ParseDate(ctx.Query("date"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	view, err := c.DayService.GetDayView(ctx.Request.Context(), date)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}
