package model

import (
	"strings"
	"time"
)

// Question is an ownerless multiple-choice exam question kept in the
// question bank database
type Question struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	QuestionText    string    `gorm:"type:text;not null" json:"question_text"`
	Topic           string    `gorm:"not null;index" json:"topic"`
	MainSLO         string    `gorm:"column:main_slo;not null" json:"main_slo"`
	EnablingSLOs    string    `gorm:"column:enabling_slos" json:"enabling_slos"`
	ComplexityLevel string    `gorm:"not null;index" json:"complexity_level"`
	StudentLevel    string    `gorm:"not null" json:"student_level"`
	Options         string    `gorm:"type:text;not null" json:"options"` // newline delimited
	CorrectAnswer   string    `gorm:"type:varchar(5);not null" json:"correct_answer"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList splits the stored options, dropping blank lines
func (q *Question) OptionList() []string {
	return SplitOptions(q.Options)
}

// SplitOptions splits newline delimited options and discards blank lines
func SplitOptions(raw string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
