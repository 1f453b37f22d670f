package controller

import (
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HabitController 处理习惯相关的API请求
type HabitController struct {
	HabitService  *service.HabitService
	ToggleService *service.ToggleService
	Calendar      *util.Calendar
}

func NewHabitController(habitService *service.HabitService, toggleService *service.ToggleService, calendar *util.Calendar) *HabitController {
	return &HabitController{
		HabitService:  habitService,
		ToggleService: toggleService,
		Calendar:      calendar,
	}
}

// CreateHabitRequest 创建习惯请求
// swagger:model CreateHabitRequest
type CreateHabitRequest struct {
	Title    string `json:"title" binding:"required"`
	WeekDays []int  `json:"weekDays" binding:"required,dive,min=0,max=6"`
}

// CreateHabit godoc
// @Summary 创建习惯
// @Description 创建一个在指定星期重复的习惯，created_at 为当天零点
// @Tags 习惯
// @Accept json
// @Param request body CreateHabitRequest true "习惯信息"
// @Success 200 "成功，无响应体"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /habits [post]
func (c *HabitController) CreateHabit(ctx *gin.Context) {
	var request CreateHabitRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BindError(ctx, err)
		return
	}

	if _, err := c.HabitService.CreateHabit(ctx.Request.Context(), request.Title, request.WeekDays); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.OK(ctx)
}

// ListHabits godoc
// @Summary 习惯列表
// @Description 按创建顺序返回全部习惯
// @Tags 习惯
// @Produce json
// @Success 200 {array} model.Habit
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /habits [get]
func (c *HabitController) ListHabits(ctx *gin.Context) {
	habits, err := c.HabitService.ListHabits(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, habits)
}

// ToggleHabit godoc
// @Summary 切换习惯完成状态
// @Description 切换习惯在某天的完成状态，date 缺省为今天
// @Tags 习惯
// @Param id path string true "习惯ID (uuid)"
// @Param date query string false "ISO8601 日期"
// @Success 200 "成功，无响应体"
// @Failure 400 {object} util.Response "ID 或日期格式错误"
// @Failure 404 {object} util.Response "习惯不存在"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /habits/{id}/toggle [patch]
func (c *HabitController) ToggleHabit(ctx *gin.Context) {
	id := ctx.Param("id")
	if !model.IsUUID(id) {
		util.FieldError(ctx, "id", "invalid id: must be a uuid")
		return
	}

	var date time.Time
	if raw, ok := ctx.GetQuery("date"); ok {
		parsed, err := c.Calendar.ParseDate(raw)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		date = parsed
	} else {
		date = c.Calendar.Today()
	}

	if _, err := c.ToggleService.Toggle(ctx.Request.Context(), date, id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.OK(ctx)
}
