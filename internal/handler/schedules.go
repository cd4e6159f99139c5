package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mercato-dev/business-hours/backend/internal/availability"
	"github.com/mercato-dev/business-hours/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// scheduleResponse 是营业时间相关接口统一返回的视图，
// 除了结构化数据外还带上引擎格式化出的中文摘要和统计信息
type scheduleResponse struct {
	Timezone            string                     `json:"timezone"`
	Week                []availability.DaySchedule `json:"week"`
	SpecialDates        []availability.SpecialDate `json:"specialDates"`
	OpenDays            []int                      `json:"openDays"`
	ClosedDays          []int                      `json:"closedDays"`
	TotalOpenMinutes    int                        `json:"totalOpenMinutes"`
	AverageHoursPerDay  float64                    `json:"averageHoursPerDay"`
	Summary             string                     `json:"summary"`
	SpecialDatesSummary string                     `json:"specialDatesSummary"`
}

func newScheduleResponse(schedule *availability.Schedule) *scheduleResponse {
	return &scheduleResponse{
		Timezone:            schedule.Timezone(),
		Week:                schedule.WeeklySchedule(),
		SpecialDates:        schedule.SpecialDates(),
		OpenDays:            schedule.OpenDays(),
		ClosedDays:          schedule.ClosedDays(),
		TotalOpenMinutes:    schedule.TotalOpenMinutesForWeek(),
		AverageHoursPerDay:  schedule.AverageOpenHoursPerDay(),
		Summary:             schedule.FormatWeek(),
		SpecialDatesSummary: schedule.FormatSpecialDates(),
	}
}

// 引擎返回的校验错误直接作为业务错误回给客户端，其余错误一律视为内部错误
func (h *Handler) scheduleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *availability.ValidationError
	if errors.As(err, &validationErr) {
		h.errorResponse(w, r, validationErr.Message)
		return
	}
	h.internalServerError(w, r, err)
}

func (h *Handler) GetBusinessSchedule(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	schedule, err := h.repository.GetBusinessSchedule(business)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取营业时间成功", newScheduleResponse(schedule))
}

type specialDateRequest struct {
	Date   string                  `json:"date" validate:"required,datetime=2006-01-02"`
	IsOpen bool                    `json:"isOpen"`
	Slots  []availability.TimeSlot `json:"slots"`
	Reason string                  `json:"reason"`
}

func (req *specialDateRequest) toSpecialDate() availability.SpecialDate {
	// 请求体已通过 datetime 校验，这里不会失败
	date, _ := time.Parse("2006-01-02", req.Date)
	return availability.SpecialDate{
		Date:   date,
		IsOpen: req.IsOpen,
		Slots:  req.Slots,
		Reason: req.Reason,
	}
}

func (h *Handler) ReplaceBusinessSchedule(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	var req struct {
		Week         []availability.DaySchedule `json:"week" validate:"required"`
		SpecialDates []specialDateRequest       `json:"specialDates" validate:"omitempty,dive"`
		Timezone     string                     `json:"timezone" validate:"omitempty,timezone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = business.Timezone
	}

	specials := make([]availability.SpecialDate, 0, len(req.SpecialDates))
	for _, sd := range req.SpecialDates {
		specials = append(specials, sd.toSpecialDate())
	}

	schedule, err := availability.New(req.Week, specials, timezone)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	if err := h.repository.ReplaceBusinessSchedule(business, schedule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyScheduleChanged(business, schedule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "营业时间更新成功", newScheduleResponse(schedule))
}

func (h *Handler) ApplySchedulePreset(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	var req struct {
		Preset     string `json:"preset" validate:"required,oneof=standard 24h always_closed"`
		OpenDays   []int  `json:"openDays" validate:"omitempty,dive,gte=0,lte=6"`
		OpenTime   string `json:"openTime"`
		CloseTime  string `json:"closeTime"`
		LunchStart string `json:"lunchStart"`
		LunchEnd   string `json:"lunchEnd"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var (
		preset *availability.Schedule
		err    error
	)

	switch req.Preset {
	case "standard":
		var lunch *availability.LunchBreak
		if req.LunchStart != "" || req.LunchEnd != "" {
			lunch = &availability.LunchBreak{Start: req.LunchStart, End: req.LunchEnd}
		}
		preset, err = availability.NewStandardWeek(req.OpenDays, req.OpenTime, req.CloseTime, lunch)
	case "24h":
		preset, err = availability.New24Hours(req.OpenDays)
	case "always_closed":
		preset = availability.NewAlwaysClosed()
	}

	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	// 预设模板不携带时区，沿用商户自己的时区重新构造
	schedule, err := availability.New(preset.WeeklySchedule(), preset.SpecialDates(), business.Timezone)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.ReplaceBusinessSchedule(business, schedule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyScheduleChanged(business, schedule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "营业时间更新成功", newScheduleResponse(schedule))
}

func (h *Handler) UpdateBusinessDay(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	dayParam := chi.URLParam(r, "day")
	dayOfWeek, ok := parseDayOfWeek(dayParam)
	if !ok {
		h.errorResponse(w, r, "无效的星期参数")
		return
	}

	var req struct {
		IsOpen bool                    `json:"isOpen"`
		Slots  []availability.TimeSlot `json:"slots"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := h.repository.GetBusinessSchedule(business)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	updated, err := schedule.WithUpdatedDay(dayOfWeek, req.IsOpen, req.Slots)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	if err := h.repository.ReplaceBusinessSchedule(business, updated); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyScheduleChanged(business, updated); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "营业时间更新成功", newScheduleResponse(updated))
}

func (h *Handler) AddSpecialDate(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	var req specialDateRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := h.repository.GetBusinessSchedule(business)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	updated, err := schedule.WithSpecialDate(req.toSpecialDate())
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	if err := h.repository.ReplaceBusinessSchedule(business, updated); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyScheduleChanged(business, updated); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "特殊日期添加成功", newScheduleResponse(updated))
}

func (h *Handler) RemoveSpecialDate(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		h.errorResponse(w, r, "无效的日期参数")
		return
	}

	schedule, err := h.repository.GetBusinessSchedule(business)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	updated, err := schedule.WithoutSpecialDate(date)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	if err := h.repository.ReplaceBusinessSchedule(business, updated); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyScheduleChanged(business, updated); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "特殊日期删除成功", newScheduleResponse(updated))
}

func (h *Handler) QueryAvailability(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "无效的日期参数")
		return
	}

	schedule, err := h.repository.GetBusinessSchedule(business)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	resp := struct {
		Date   string                  `json:"date"`
		Time   string                  `json:"time,omitempty"`
		IsOpen bool                    `json:"isOpen"`
		Slots  []availability.TimeSlot `json:"slots"`
	}{
		Date:  date.Format("2006-01-02"),
		Slots: schedule.SlotsForDate(date),
	}

	// 不带 time 参数时查整天，带上则精确到某一时刻
	if clock := r.URL.Query().Get("time"); clock != "" {
		isOpen, err := schedule.IsOpenAt(date, clock)
		if err != nil {
			h.scheduleError(w, r, err)
			return
		}
		resp.Time = clock
		resp.IsOpen = isOpen
	} else {
		resp.IsOpen = schedule.IsOpenOnDate(date)
	}

	h.successResponse(w, r, "查询成功", resp)
}

func (h *Handler) QueryNextOpening(w http.ResponseWriter, r *http.Request) {
	business := r.Context().Value(BusinessCtx).(*domain.Business)

	schedule, err := h.repository.GetBusinessSchedule(business)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// from 缺省为商户时区下的当前时间
	from := time.Now()
	if loc, err := time.LoadLocation(schedule.Timezone()); err == nil {
		from = from.In(loc)
	}
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		from, err = time.Parse(time.RFC3339, fromParam)
		if err != nil {
			h.errorResponse(w, r, "无效的起始时间参数")
			return
		}
	}

	opening, found := schedule.FindNextOpening(from)
	if !found {
		h.successResponse(w, r, "未来 7 天内没有开门时段", nil)
		return
	}

	resp := struct {
		Date    string                `json:"date"`
		DayName string                `json:"dayName"`
		Slot    availability.TimeSlot `json:"slot"`
	}{
		Date:    opening.Date.Format("2006-01-02"),
		DayName: availability.DayName(int(opening.Date.Weekday())),
		Slot:    opening.Slot,
	}

	h.successResponse(w, r, "查询成功", resp)
}

// parseDayOfWeek 接受 0~6 的数字，不做星期名称的解析
func parseDayOfWeek(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '6' {
		return 0, false
	}
	return int(s[0] - '0'), true
}

// notifyScheduleChanged 在营业时间变更后给店主发邮件
func (h *Handler) notifyScheduleChanged(business *domain.Business, schedule *availability.Schedule) error {
	owner, err := h.repository.GetUserByID(business.OwnerID)
	if err != nil {
		return err
	}

	mailMessage := domain.MailMessage{
		Type: "schedule_changed",
		To:   owner.Email,
		Data: domain.ScheduleChangedMailData{
			FullName:     owner.FullName,
			BusinessName: business.Name,
			Summary:      schedule.String(),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
