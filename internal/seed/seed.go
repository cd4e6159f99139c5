package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mercato-dev/business-hours/backend/internal/availability"
	"github.com/mercato-dev/business-hours/backend/internal/domain"
	"github.com/mercato-dev/business-hours/backend/internal/repository"
	"github.com/mercato-dev/business-hours/backend/internal/utils"
)

// 营业日列的取值和 DayOfWeek 一致，0 为周日
var requiredHeaders = []string{"商户名称", "店主用户名", "店主姓名", "店主邮箱", "时区", "营业日", "开门", "关门", "午休开始", "午休结束"}

// SeedRealData 从 CSV 中导入示范商户及其营业时间表。
// 店主不存在时会顺便创建对应的商家账号
func SeedRealData(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/businesses.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	headerIndex := make(map[string]int, len(headers))
	for i, header := range headers {
		headerIndex[header] = i
	}
	for _, header := range requiredHeaders {
		if _, ok := headerIndex[header]; !ok {
			slog.Error("没有找到所需的列", "header", header)
			return
		}
	}

	count := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		record := make(map[string]string, len(headers))
		for i, value := range row {
			record[headers[i]] = value
		}

		// 先尝试获取店主
		username := record["店主用户名"]
		if username == "" {
			slog.Error("没有找到店主用户名", "record", record)
			continue
		}

		owner, err := r.GetUserByUsername(username)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				// 店主不在数据库中，需要新建并插入
				owner = &domain.User{
					Username:     username,
					PasswordHash: "$2a$10$aUTaWl3vmXuQFocBkb9Qx.YJPAzNoaAcj2VC5tI45l1Roh24meCgO", // mercato@test8403
					FullName:     record["店主姓名"],
					Email:        record["店主邮箱"],
					Role:         domain.RoleMerchant,
				}

				if err := r.CreateUser(owner); err != nil {
					slog.Error("插入店主失败", "error", err)
					continue
				}
			default:
				slog.Error("获取店主失败", "error", err)
				continue
			}
		}

		// 插入商户
		business := &domain.Business{
			Name:     record["商户名称"],
			Slug:     utils.Slugify(record["商户名称"]),
			OwnerID:  owner.ID,
			Timezone: record["时区"],
		}

		if err := r.CreateBusiness(business); err != nil {
			slog.Error("插入商户失败", "error", err)
			continue
		}

		// 构造营业时间表
		schedule, err := buildSchedule(record, business.Timezone)
		if err != nil {
			slog.Error("构造营业时间表失败", "business", business.Name, "error", err)
			continue
		}

		if err := r.ReplaceBusinessSchedule(business, schedule); err != nil {
			slog.Error("保存营业时间表失败", "business", business.Name, "error", err)
			continue
		}

		count++
	}

	slog.Info("插入数据完成", "count", count)
}

func buildSchedule(record map[string]string, timezone string) (*availability.Schedule, error) {
	openDays := make([]int, 0, availability.DaysPerWeek)
	for _, day := range strings.Split(record["营业日"], ", ") {
		if day == "" {
			continue
		}
		if len(day) != 1 || day[0] < '0' || day[0] > '6' {
			return nil, errors.New("营业日取值非法: " + day)
		}
		openDays = append(openDays, int(day[0]-'0'))
	}

	var lunch *availability.LunchBreak
	if record["午休开始"] != "" && record["午休结束"] != "" {
		lunch = &availability.LunchBreak{
			Start: record["午休开始"],
			End:   record["午休结束"],
		}
	}

	week, err := availability.NewStandardWeek(openDays, record["开门"], record["关门"], lunch)
	if err != nil {
		return nil, err
	}

	// 标准周模板不带时区，用商户自己的时区重建
	return availability.New(week.WeeklySchedule(), nil, timezone)
}
