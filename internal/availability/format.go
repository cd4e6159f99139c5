package availability

import (
	"fmt"
	"strings"
)

// FormatDay 把每周固定计划中某一天格式化为一行文本，
// 例如 "周一: 09:00-12:00 (Morning), 13:00-18:00 (Afternoon)" 或 "周六: 不营业"
func (s *Schedule) FormatDay(dayOfWeek int) (string, error) {
	if dayOfWeek < 0 || dayOfWeek >= DaysPerWeek {
		return "", newValidationError(KindRange, "星期序号 %d 超出 0~6 的范围", dayOfWeek)
	}

	day := s.week[dayOfWeek]
	if !day.IsOpen {
		return fmt.Sprintf("%s: 不营业", dayNames[dayOfWeek]), nil
	}

	return fmt.Sprintf("%s: %s", dayNames[dayOfWeek], formatSlots(day.Slots)), nil
}

// FormatWeek 把整周计划格式化为 7 行文本，每天一行
func (s *Schedule) FormatWeek() string {
	lines := make([]string, 0, DaysPerWeek)
	for d := 0; d < DaysPerWeek; d++ {
		// 序号一定在范围内，错误不可能发生
		line, _ := s.FormatDay(d)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatSpecialDates 把特殊日期列表格式化为多行文本，每条一行，
// 例如 "2026-10-01: 不营业（国庆节）"；没有特殊日期时返回 "无特殊日期"
func (s *Schedule) FormatSpecialDates() string {
	if len(s.specials) == 0 {
		return "无特殊日期"
	}

	lines := make([]string, 0, len(s.specials))
	for _, sd := range s.specials {
		var status string
		if sd.IsOpen {
			status = formatSlots(sd.Slots)
		} else {
			status = "不营业"
		}

		line := fmt.Sprintf("%s: %s", sd.Date.Format("2006-01-02"), status)
		if sd.Reason != "" {
			line += fmt.Sprintf("（%s）", sd.Reason)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// String 返回整个营业时间表的多行文本描述，便于日志和通知邮件直接引用
func (s *Schedule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "营业时间（时区 %s）\n", s.timezone)
	b.WriteString(s.FormatWeek())
	b.WriteString("\n特殊日期:\n")
	b.WriteString(s.FormatSpecialDates())
	return b.String()
}

func formatSlots(slots []TimeSlot) string {
	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		parts = append(parts, slot.String())
	}
	return strings.Join(parts, ", ")
}
