package opt

import "encoding/json"

// Opt 区分三种 JSON 字段状态：缺失 / 显式 null / 有值。
// 编辑接口用它来决定字段是“不改”、“清空”还是“覆盖”。
type Opt[T any] struct {
	present bool
	null    bool
	value   T
}

// Of 构造一个有值的 Opt。
func Of[T any](v T) Opt[T] { return Opt[T]{present: true, value: v} }

// Null 构造一个显式 null 的 Opt。
func Null[T any]() Opt[T] { return Opt[T]{present: true, null: true} }

// Present 字段是否出现在请求里（含 null）。
func (o Opt[T]) Present() bool { return o.present }

// IsNull 字段是否为显式 null。
func (o Opt[T]) IsNull() bool { return o.present && o.null }

// Get 返回值；第二个返回值为 false 表示缺失或 null。
func (o Opt[T]) Get() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

func (o *Opt[T]) UnmarshalJSON(b []byte) error {
	o.present = true
	if string(b) == "null" {
		o.null = true
		return nil
	}
	return json.Unmarshal(b, &o.value)
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.present || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
