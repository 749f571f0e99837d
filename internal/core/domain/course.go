package domain

import "time"

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
	LevelTOPIK        CourseLevel = "TOPIK"
)

func (l CourseLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelTOPIK:
		return true
	}
	return false
}

type Course struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	Slug       string      `json:"slug"`
	Level      CourseLevel `json:"level"`
	Capacity   int         `json:"capacity"`
	PriceCents int64       `json:"price_cents"`
	Currency   string      `json:"currency"`
	Active     bool        `json:"active"`
	CreatedAt  time.Time   `json:"created_at"`
}
