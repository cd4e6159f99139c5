package availability

import (
	"fmt"
	"slices"
)

// DefaultTimezone 是未显式指定时区时使用的时区标签。
// 引擎只把时区当成一个不透明的标签保存和透传，不做任何时区换算
const DefaultTimezone = "Asia/Shanghai"

// 标准营业周和全天营业使用的时段名称。
// 这些名称是对外契约的一部分，持久化层和前端都依赖它们
const (
	SlotNameMorning   = "Morning"
	SlotNameAfternoon = "Afternoon"
	SlotNameAllDay    = "24h"
)

// Schedule 是营业时间的聚合根：每周固定营业计划 + 按日期的特殊覆盖 + 时区标签。
// Schedule 一经构造便不可变，所有 With* 方法都返回一个全新的实例，
// 原实例保持原样，因此多个持有者可以放心地并发读取同一个实例。
// 构造时总是完整地重新校验所有不变式，不存在跳过校验的内部捷径
type Schedule struct {
	week     []DaySchedule
	specials []SpecialDate
	timezone string
}

// New 校验并构造一个营业时间表。
// week 必须恰好包含 7 天且第 i 个位置的 DayOfWeek 必须等于 i（0 为周日）。
// specials 可以为空；允许同一个日期出现多条覆盖，查询时以列表顺序的第一条为准。
// timezone 为空时使用 DefaultTimezone。
// 任何一项校验失败都会让整个构造失败，绝不会产生半成品
func New(week []DaySchedule, specials []SpecialDate, timezone string) (*Schedule, error) {
	if err := validateWeek(week); err != nil {
		return nil, err
	}

	for _, sd := range specials {
		if err := validateSpecialDate(sd); err != nil {
			return nil, err
		}
	}

	if timezone == "" {
		timezone = DefaultTimezone
	}

	// 深拷贝输入，防止调用方事后修改切片破坏不可变性
	return &Schedule{
		week:     cloneWeek(week),
		specials: cloneSpecialDates(specials),
		timezone: timezone,
	}, nil
}

// LunchBreak 表示午休时间，用于把一个营业日拆分为上午和下午两个时段
type LunchBreak struct {
	Start string
	End   string
}

// NewStandardWeek 构造一个标准营业周：openDays 中的每一天使用相同的营业时间，
// 其余的日子不营业。提供 lunch 时，每个营业日会被拆分为
// [openTime, lunch.Start) 的 "Morning" 和 [lunch.End, closeTime) 的 "Afternoon" 两个时段
func NewStandardWeek(openDays []int, openTime string, closeTime string, lunch *LunchBreak) (*Schedule, error) {
	for _, day := range openDays {
		if day < 0 || day >= DaysPerWeek {
			return nil, newValidationError(KindStructural, "营业日 %d 超出 0~6 的范围", day)
		}
	}

	var slots []TimeSlot
	if lunch == nil {
		slot, err := NewTimeSlot(openTime, closeTime, "")
		if err != nil {
			return nil, err
		}
		slots = []TimeSlot{slot}
	} else {
		morning, err := NewTimeSlot(openTime, lunch.Start, SlotNameMorning)
		if err != nil {
			return nil, err
		}
		afternoon, err := NewTimeSlot(lunch.End, closeTime, SlotNameAfternoon)
		if err != nil {
			return nil, err
		}
		slots = []TimeSlot{morning, afternoon}
	}

	week := make([]DaySchedule, DaysPerWeek)
	for d := 0; d < DaysPerWeek; d++ {
		if slices.Contains(openDays, d) {
			week[d] = OpenDay(d, cloneSlots(slots)...)
		} else {
			week[d] = ClosedDay(d)
		}
	}

	return New(week, nil, DefaultTimezone)
}

// NewAlwaysClosed 构造一个整周歇业、没有任何特殊日期的营业时间表
func NewAlwaysClosed() *Schedule {
	week := make([]DaySchedule, DaysPerWeek)
	for d := 0; d < DaysPerWeek; d++ {
		week[d] = ClosedDay(d)
	}

	s, err := New(week, nil, DefaultTimezone)
	if err != nil {
		// 整周歇业的计划不可能校验失败
		panic(fmt.Sprintf("availability: 构造整周歇业计划失败: %v", err))
	}
	return s
}

// New24Hours 构造一个全天营业的时间表：openDays 中的每一天都只有
// 一个名为 "24h" 的 00:00-23:59 时段。
// 注意编码刻意使用 23:59 而不是 24:00，因此一天的最后一分钟按区间规则不算营业，
// 这是沿用至今的既有行为，调用方不应依赖 23:59 这一分钟
func New24Hours(openDays []int) (*Schedule, error) {
	for _, day := range openDays {
		if day < 0 || day >= DaysPerWeek {
			return nil, newValidationError(KindStructural, "营业日 %d 超出 0~6 的范围", day)
		}
	}

	allDay, err := NewTimeSlot("00:00", "23:59", SlotNameAllDay)
	if err != nil {
		return nil, err
	}

	week := make([]DaySchedule, DaysPerWeek)
	for d := 0; d < DaysPerWeek; d++ {
		if slices.Contains(openDays, d) {
			week[d] = OpenDay(d, allDay)
		} else {
			week[d] = ClosedDay(d)
		}
	}

	return New(week, nil, DefaultTimezone)
}

/**
 * 校验逻辑
 * 按固定顺序执行，第一个失败的检查决定返回的错误：
 * 		1. 周计划必须恰好包含 7 天
 * 		2. 第 i 个位置的 DayOfWeek 必须等于 i
 * 		3. 每一天的营业标记和时段列表必须一致（歇业无时段 / 营业有时段）
 * 		4. 每个时段的起止时间必须合法且开始严格早于结束
 * 		5. 每一天内的时段按开始时间排序后相邻扫描，不允许重叠
 * 		6. 每个特殊日期重复 3~5 的检查
 */

func validateWeek(week []DaySchedule) error {
	if len(week) != DaysPerWeek {
		return newValidationError(KindStructural, "每周营业计划必须恰好包含 7 天，实际为 %d 天", len(week))
	}

	for i, day := range week {
		if day.DayOfWeek != i {
			return newValidationError(KindStructural, "第 %d 个位置的星期序号应为 %d，实际为 %d", i, i, day.DayOfWeek)
		}
	}

	for _, day := range week {
		if err := validateDay(day); err != nil {
			return err
		}
	}

	return nil
}

func validateDay(day DaySchedule) error {
	name := dayNames[day.DayOfWeek]

	if !day.IsOpen && len(day.Slots) > 0 {
		return newValidationError(KindSlotShape, "%s标记为不营业，但仍包含 %d 个营业时段", name, len(day.Slots))
	}
	if day.IsOpen && len(day.Slots) == 0 {
		return newValidationError(KindSlotShape, "%s标记为营业，但没有任何营业时段", name)
	}

	return validateSlots(name, day.Slots)
}

func validateSpecialDate(sd SpecialDate) error {
	name := "特殊日期 " + sd.Date.Format("2006-01-02")

	if !sd.IsOpen && len(sd.Slots) > 0 {
		return newValidationError(KindSlotShape, "%s标记为不营业，但仍包含 %d 个营业时段", name, len(sd.Slots))
	}
	if sd.IsOpen && len(sd.Slots) == 0 {
		return newValidationError(KindSlotShape, "%s标记为营业，但没有任何营业时段", name)
	}

	return validateSlots(name, sd.Slots)
}
