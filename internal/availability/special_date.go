package availability

import "time"

// SpecialDate 表示针对某个具体日历日的营业安排覆盖（节假日、临时歇业、临时加开等），
// 对于所覆盖的日期，它的优先级高于每周固定计划。
// 日期只精确到天，时分秒部分在比较时一律忽略
type SpecialDate struct {
	Date   time.Time  `json:"date"`
	IsOpen bool       `json:"isOpen"`
	Slots  []TimeSlot `json:"slots,omitempty"`
	Reason string     `json:"reason"`
}

// SameDate 判断 t 是否和这条覆盖落在同一个日历日
func (sd SpecialDate) SameDate(t time.Time) bool {
	y1, m1, d1 := sd.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// OpenMinutes 返回这一天所有时段的总时长（分钟）
func (sd SpecialDate) OpenMinutes() int {
	total := 0
	for _, slot := range sd.Slots {
		total += slot.Minutes()
	}
	return total
}

func cloneSpecialDates(specials []SpecialDate) []SpecialDate {
	cloned := make([]SpecialDate, len(specials))
	for i, sd := range specials {
		cloned[i] = SpecialDate{
			Date:   sd.Date,
			IsOpen: sd.IsOpen,
			Slots:  cloneSlots(sd.Slots),
			Reason: sd.Reason,
		}
	}
	return cloned
}
