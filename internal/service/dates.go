package service

import "time"

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate 宽松解析：先按 ISO-8601，再按 DD.MM.YYYY，
// 都失败则按“无日期”处理，不报错。既有客户端依赖这一行为。
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if t, err := time.Parse("02.01.2006", s); err == nil {
		return &t
	}
	return nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
