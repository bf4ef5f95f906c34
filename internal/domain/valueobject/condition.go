package valueobject

import "errors"

// Condition представляет оператор сравнения порогового правила (Value Object)
type Condition string

const (
	ConditionGreater  Condition = ">"
	ConditionLess     Condition = "<"
	ConditionEqual    Condition = "=="
	ConditionNotEqual Condition = "!="
)

// Validate проверяет валидность оператора
func (c Condition) Validate() error {
	switch c {
	case ConditionGreater, ConditionLess, ConditionEqual, ConditionNotEqual:
		return nil
	default:
		return errors.New("invalid condition")
	}
}

// String возвращает строковое представление оператора
func (c Condition) String() string {
	return string(c)
}

// Holds применяет оператор к значению и порогу.
// Сравнение == и != на float64 — унаследованное поведение IEEE-754,
// задокументированная хрупкость, а не цель дизайна.
func (c Condition) Holds(value, threshold float64) bool {
	switch c {
	case ConditionGreater:
		return value > threshold
	case ConditionLess:
		return value < threshold
	case ConditionEqual:
		return value == threshold
	case ConditionNotEqual:
		return value != threshold
	default:
		return false
	}
}
