package availability

import "time"

// NextOpening 表示向后查找到的下一次开门时间
type NextOpening struct {
	Date time.Time `json:"date"`
	Slot TimeSlot  `json:"slot"`
}

// FindNextOpening 从 from 开始在固定的 7 天范围内向后查找下一次开门。
// 对于 from 当天，只考虑开始时间严格晚于 from 时刻的时段，
// 已经开始或已经结束的时段不会被报告；对于之后的日期，取当天生效列表的
// 第一个时段（列表保持构造时的顺序，按惯例调用方会按时间先后提供）。
// 7 天内没有任何开门时段时第二个返回值为 false
func (s *Schedule) FindNextOpening(from time.Time) (NextOpening, bool) {
	fromClock := TimeOfDay(from.Hour()*60 + from.Minute())

	for offset := 0; offset < DaysPerWeek; offset++ {
		date := from.AddDate(0, 0, offset)
		if !s.IsOpenOnDate(date) {
			continue
		}

		slots := s.SlotsForDate(date)
		if len(slots) == 0 {
			continue
		}

		if offset == 0 {
			// 当天只报告还没开始的时段
			for _, slot := range slots {
				if slot.Start > fromClock {
					return NextOpening{Date: date, Slot: slot}, true
				}
			}
			continue
		}

		return NextOpening{Date: date, Slot: slots[0]}, true
	}

	return NextOpening{}, false
}
