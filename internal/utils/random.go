package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/mercato-dev/business-hours/backend/internal/availability"
	"github.com/mercato-dev/business-hours/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleUser,
	domain.RoleMerchant,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

// Slugify 把商户名称转成 URL 友好的 slug：
// 汉字转拼音，字母数字保留并转小写，其余字符折叠成连字符
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // 避免开头出现连字符

	for _, r := range name {
		switch {
		case unicode.Is(unicode.Han, r):
			py := pinyin.LazyConvert(string(r), nil)
			if len(py) == 0 {
				continue
			}
			if !lastHyphen {
				b.WriteByte('-')
			}
			b.WriteString(py[0])
			b.WriteByte('-')
			lastHyphen = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var tradePrefixes = []string{
	"老王", "幸福", "远航", "金桂", "四季", "小巷", "青竹", "春风", "长乐", "日升",
}
var tradeSuffixes = []string{
	"面馆", "咖啡馆", "便利店", "书店", "理发店", "药房", "茶馆", "烘焙坊", "五金店", "洗衣店",
}

func GenerateRandomBusinessName() string {
	return tradePrefixes[rand.Intn(len(tradePrefixes))] + tradeSuffixes[rand.Intn(len(tradeSuffixes))]
}

// 用 Fisher-Yates 洗牌算法随机挑选营业的星期（0 为周日）
func GenerateRandomOpenDays() []int {
	days := []int{0, 1, 2, 3, 4, 5, 6}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(len(days)) + 1

	return days[:n]
}

// GenerateRandomSchedule 随机生成一份营业时间表，
// 少数商户是 24 小时营业或常年歇业，多数走标准的朝九晚六带午休
func GenerateRandomSchedule() (*availability.Schedule, error) {
	switch rand.Intn(10) {
	case 0:
		return availability.New24Hours(GenerateRandomOpenDays())
	case 1:
		return availability.NewAlwaysClosed(), nil
	default:
		openHour := rand.Intn(3) + 7   // 7~9 点开门
		closeHour := rand.Intn(5) + 17 // 17~21 点关门

		var lunch *availability.LunchBreak
		if rand.Intn(2) == 0 {
			lunch = &availability.LunchBreak{Start: "12:00", End: "13:00"}
		}

		return availability.NewStandardWeek(
			GenerateRandomOpenDays(),
			fmt.Sprintf("%02d:00", openHour),
			fmt.Sprintf("%02d:00", closeHour),
			lunch,
		)
	}
}

var specialDateReasons = []string{"设备检修", "店庆", "员工培训", "临时歇业", "节假日加开"}

// GenerateRandomSpecialDates 在未来 30 天内随机生成几条特殊日期覆盖
func GenerateRandomSpecialDates() []availability.SpecialDate {
	n := rand.Intn(3)
	specials := make([]availability.SpecialDate, 0, n)

	for i := 0; i < n; i++ {
		date := time.Now().AddDate(0, 0, rand.Intn(30)+1)
		sd := availability.SpecialDate{
			Date:   date,
			Reason: specialDateReasons[rand.Intn(len(specialDateReasons))],
		}

		if rand.Intn(2) == 0 {
			slot, err := availability.NewTimeSlot("10:00", "16:00", "临时营业")
			if err == nil {
				sd.IsOpen = true
				sd.Slots = []availability.TimeSlot{slot}
			}
		}

		specials = append(specials, sd)
	}

	return specials
}
