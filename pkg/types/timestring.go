package types

import (
	"errors"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfRange = errors.New("time is out of day range")
)

// TimeString время внутри суток в формате "HH:MM"
// Используется вместо time.Time для всех сравнений внутри одного дня,
// чтобы исключить проблемы с таймзонами и переходами через полночь.
// Специальное значение "24:00" допустимо только как конец интервала.
type TimeString string

// NewTimeString создает TimeString из time.Time (часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// MustTimeString создает TimeString из строки, паникует при некорректном формате.
// Только для констант в тестах и инициализации.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Validate проверяет формат "HH:MM" и диапазон 00:00..24:00
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes возвращает количество минут с полуночи
func (t TimeString) Minutes() (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	total := hours*60 + minutes
	if total > minutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	return total, nil
}

// AddMinutes возвращает время через delta минут
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}

	result := current + delta
	if result < 0 || result > minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrOutOfRange, string(t), delta)
	}

	return fromMinutes(result), nil
}

// IsBefore возвращает true, если t строго раньше other
// Некорректные значения считаются несравнимыми (false)
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

func fromMinutes(m int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}
