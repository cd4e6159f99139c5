package availability

import (
	"math"
	"time"
)

// Timezone 返回营业时间表的时区标签
func (s *Schedule) Timezone() string {
	return s.timezone
}

// WeeklySchedule 返回每周固定计划的深拷贝
func (s *Schedule) WeeklySchedule() []DaySchedule {
	return cloneWeek(s.week)
}

// SpecialDates 返回特殊日期列表的深拷贝，顺序和添加顺序一致
func (s *Schedule) SpecialDates() []SpecialDate {
	return cloneSpecialDates(s.specials)
}

// IsOpenOnDay 返回每周固定计划中 dayOfWeek（0 为周日）这一天是否营业，
// 不考虑任何特殊日期覆盖
func (s *Schedule) IsOpenOnDay(dayOfWeek int) (bool, error) {
	if dayOfWeek < 0 || dayOfWeek >= DaysPerWeek {
		return false, newValidationError(KindRange, "星期序号 %d 超出 0~6 的范围", dayOfWeek)
	}
	return s.week[dayOfWeek].IsOpen, nil
}

// SlotsForDay 返回每周固定计划中某一天的时段列表（拷贝）
func (s *Schedule) SlotsForDay(dayOfWeek int) ([]TimeSlot, error) {
	if dayOfWeek < 0 || dayOfWeek >= DaysPerWeek {
		return nil, newValidationError(KindRange, "星期序号 %d 超出 0~6 的范围", dayOfWeek)
	}
	return cloneSlots(s.week[dayOfWeek].Slots), nil
}

// specialFor 返回覆盖 date 的第一条特殊日期。
// 同一日期存在多条覆盖时，以添加顺序的第一条为准，后添加的不会生效
func (s *Schedule) specialFor(date time.Time) *SpecialDate {
	for i := range s.specials {
		if s.specials[i].SameDate(date) {
			return &s.specials[i]
		}
	}
	return nil
}

// IsOpenOnDate 返回某个具体日期是否营业。
// 优先级规则：存在特殊日期覆盖时完全以覆盖为准，
// 即使每周固定计划给出相反的结论；否则回退到固定计划中对应的星期
func (s *Schedule) IsOpenOnDate(date time.Time) bool {
	if sd := s.specialFor(date); sd != nil {
		return sd.IsOpen
	}
	return s.week[int(date.Weekday())].IsOpen
}

// SlotsForDate 返回某个具体日期实际生效的时段列表（拷贝），
// 优先级规则同 IsOpenOnDate
func (s *Schedule) SlotsForDate(date time.Time) []TimeSlot {
	if sd := s.specialFor(date); sd != nil {
		return cloneSlots(sd.Slots)
	}
	return cloneSlots(s.week[int(date.Weekday())].Slots)
}

// IsOpenAt 判断某个日期的 clock（HH:MM）时刻是否营业。
// 时段是左闭右开的：营业至 18:00 的店在 18:00 整已经关门。
// clock 格式非法时返回错误而不是 false，调用方必须区分这两种情况
func (s *Schedule) IsOpenAt(date time.Time, clock string) (bool, error) {
	t, err := ParseTimeOfDay(clock)
	if err != nil {
		return false, newValidationError(KindRange, "%s", err)
	}

	for _, slot := range s.SlotsForDate(date) {
		if slot.Contains(t) {
			return true, nil
		}
	}
	return false, nil
}

// TotalOpenMinutesForDay 返回每周固定计划中某一天的营业总时长（分钟），
// 不营业的日子为 0
func (s *Schedule) TotalOpenMinutesForDay(dayOfWeek int) (int, error) {
	if dayOfWeek < 0 || dayOfWeek >= DaysPerWeek {
		return 0, newValidationError(KindRange, "星期序号 %d 超出 0~6 的范围", dayOfWeek)
	}
	return s.week[dayOfWeek].OpenMinutes(), nil
}

// TotalOpenMinutesForWeek 返回每周固定计划一整周的营业总时长（分钟）
func (s *Schedule) TotalOpenMinutesForWeek() int {
	total := 0
	for _, day := range s.week {
		total += day.OpenMinutes()
	}
	return total
}

// AverageOpenHoursPerDay 返回按 7 天平均的每日营业小时数，保留两位小数。
// 除数固定为 7 天，不是营业天数
func (s *Schedule) AverageOpenHoursPerDay() float64 {
	hours := float64(s.TotalOpenMinutesForWeek()) / DaysPerWeek / 60
	return math.Round(hours*100) / 100
}

// OpenDays 返回每周固定计划中营业的星期序号，升序
func (s *Schedule) OpenDays() []int {
	days := make([]int, 0, DaysPerWeek)
	for _, day := range s.week {
		if day.IsOpen {
			days = append(days, day.DayOfWeek)
		}
	}
	return days
}

// ClosedDays 返回每周固定计划中不营业的星期序号，升序
func (s *Schedule) ClosedDays() []int {
	days := make([]int, 0, DaysPerWeek)
	for _, day := range s.week {
		if !day.IsOpen {
			days = append(days, day.DayOfWeek)
		}
	}
	return days
}

// OpenDaysCount 返回每周营业的天数
func (s *Schedule) OpenDaysCount() int {
	return len(s.OpenDays())
}
