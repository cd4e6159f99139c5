package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mercato-dev/business-hours/backend/internal/availability"
	"github.com/mercato-dev/business-hours/backend/internal/domain"
)

// GetBusinessSchedule 从三张表里重建商户的营业时间表。
// 周表按 day_of_week 排序保证下标齐整，特殊日期按主键排序以保留录入顺序
func (r *Repository) GetBusinessSchedule(business *domain.Business) (*availability.Schedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	week, err := r.getWeek(ctx, business.ID)
	if err != nil {
		return nil, err
	}

	specials, err := r.getSpecialDates(ctx, business.ID)
	if err != nil {
		return nil, err
	}

	return availability.New(week, specials, business.Timezone)
}

func (r *Repository) getWeek(ctx context.Context, businessID int64) ([]availability.DaySchedule, error) {
	query := `
		SELECT d.day_of_week, d.is_open, s.start_time, s.end_time, s.name
		FROM business_day_schedules d
		LEFT JOIN business_time_slots s ON s.day_schedule_id = d.id
		WHERE d.business_id = $1
		ORDER BY d.day_of_week, s.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	week := make([]availability.DaySchedule, 0, availability.DaysPerWeek)
	for rows.Next() {
		var (
			dayOfWeek int
			isOpen    bool
			startTime sql.NullString
			endTime   sql.NullString
			slotName  sql.NullString
		)
		if err := rows.Scan(&dayOfWeek, &isOpen, &startTime, &endTime, &slotName); err != nil {
			return nil, err
		}

		if len(week) == 0 || week[len(week)-1].DayOfWeek != dayOfWeek {
			week = append(week, availability.DaySchedule{
				DayOfWeek: dayOfWeek,
				IsOpen:    isOpen,
			})
		}

		// 歇业日的 LEFT JOIN 右侧全为 NULL
		if !startTime.Valid {
			continue
		}

		slot, err := availability.NewTimeSlot(startTime.String, endTime.String, slotName.String)
		if err != nil {
			return nil, err
		}
		week[len(week)-1].Slots = append(week[len(week)-1].Slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return week, nil
}

func (r *Repository) getSpecialDates(ctx context.Context, businessID int64) ([]availability.SpecialDate, error) {
	query := `
		SELECT sd.id, sd.date, sd.is_open, sd.reason, s.start_time, s.end_time, s.name
		FROM business_special_dates sd
		LEFT JOIN business_special_date_slots s ON s.special_date_id = sd.id
		WHERE sd.business_id = $1
		ORDER BY sd.id, s.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specials := make([]availability.SpecialDate, 0)
	var lastID int64 = -1
	for rows.Next() {
		var (
			id        int64
			date      time.Time
			isOpen    bool
			reason    string
			startTime sql.NullString
			endTime   sql.NullString
			slotName  sql.NullString
		)
		if err := rows.Scan(&id, &date, &isOpen, &reason, &startTime, &endTime, &slotName); err != nil {
			return nil, err
		}

		if id != lastID {
			specials = append(specials, availability.SpecialDate{
				Date:   date,
				IsOpen: isOpen,
				Reason: reason,
			})
			lastID = id
		}

		if !startTime.Valid {
			continue
		}

		slot, err := availability.NewTimeSlot(startTime.String, endTime.String, slotName.String)
		if err != nil {
			return nil, err
		}
		specials[len(specials)-1].Slots = append(specials[len(specials)-1].Slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return specials, nil
}

// ReplaceBusinessSchedule 以删后重插的方式整体替换时间表，
// 同时通过版本号把并发的修改挡在门外
func (r *Repository) ReplaceBusinessSchedule(business *domain.Business, schedule *availability.Schedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE businesses
		SET timezone = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, schedule.Timezone(), business.ID, business.Version).Scan(&business.Version); err != nil {
		return err
	}

	deletes := []string{
		`DELETE FROM business_day_schedules WHERE business_id = $1`,
		`DELETE FROM business_special_dates WHERE business_id = $1`,
	}
	for _, query := range deletes {
		if _, err := tx.ExecContext(ctx, query, business.ID); err != nil {
			return err
		}
	}

	if err := insertSchedule(ctx, tx, business.ID, schedule); err != nil {
		return err
	}

	return tx.Commit()
}

func insertSchedule(ctx context.Context, tx *sql.Tx, businessID int64, schedule *availability.Schedule) error {
	dayQuery := `
		INSERT INTO business_day_schedules (business_id, day_of_week, is_open)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	slotQuery := `
		INSERT INTO business_time_slots (day_schedule_id, start_time, end_time, name)
		VALUES ($1, $2, $3, $4)
	`

	for _, day := range schedule.WeeklySchedule() {
		var dayID int64
		if err := tx.QueryRowContext(ctx, dayQuery, businessID, day.DayOfWeek, day.IsOpen).Scan(&dayID); err != nil {
			return err
		}
		for _, slot := range day.Slots {
			if _, err := tx.ExecContext(ctx, slotQuery, dayID, slot.Start.String(), slot.End.String(), slot.Name); err != nil {
				return err
			}
		}
	}

	specialQuery := `
		INSERT INTO business_special_dates (business_id, date, is_open, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	specialSlotQuery := `
		INSERT INTO business_special_date_slots (special_date_id, start_time, end_time, name)
		VALUES ($1, $2, $3, $4)
	`

	for _, special := range schedule.SpecialDates() {
		var specialID int64
		args := []any{businessID, special.Date, special.IsOpen, special.Reason}
		if err := tx.QueryRowContext(ctx, specialQuery, args...).Scan(&specialID); err != nil {
			return err
		}
		for _, slot := range special.Slots {
			if _, err := tx.ExecContext(ctx, specialSlotQuery, specialID, slot.Start.String(), slot.End.String(), slot.Name); err != nil {
				return err
			}
		}
	}

	return nil
}
