package main

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Lesson content is polymorphic: a lesson either teaches (ordered pages of
// narrative) or tests (a question list). The discriminator is validated once,
// when the row is scanned; downstream code switches on Type and never
// re-inspects raw JSON.

const (
	ContentTypeQuiz  = "quiz_lesson"
	ContentTypePaged = "paged"
)

type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
	Explanation   string   `json:"explanation,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"` // "easy" | "medium" | "hard"
	Category      string   `json:"category,omitempty"`
}

type Page struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type LessonContent struct {
	Type      string     `json:"type"`
	Questions []Question `json:"questions,omitempty"`
	Pages     []Page     `json:"pages,omitempty"`
}

// IsQuiz reports whether this content can be served as a daily quiz:
// quiz-typed with a non-empty question list.
func (c LessonContent) IsQuiz() bool {
	return c.Type == ContentTypeQuiz && len(c.Questions) > 0
}

func (c LessonContent) QuestionCount() int {
	return len(c.Questions)
}

// QuestionByID returns the question with the given id, or nil.
func (c LessonContent) QuestionByID(id string) *Question {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i]
		}
	}
	return nil
}

// Validate checks the union shape. Quiz questions must have at least two
// options and an in-range correct index; paged content must not carry
// questions, and vice versa.
func (c LessonContent) Validate() error {
	switch c.Type {
	case ContentTypeQuiz:
		if len(c.Pages) > 0 {
			return fmt.Errorf("quiz_lesson content must not have pages")
		}
		for i, q := range c.Questions {
			if len(q.Options) < 2 {
				return fmt.Errorf("question %d: needs at least 2 options", i)
			}
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
				return fmt.Errorf("question %d: correctAnswer %d out of range", i, q.CorrectAnswer)
			}
		}
		return nil
	case ContentTypePaged:
		if len(c.Questions) > 0 {
			return fmt.Errorf("paged content must not have questions")
		}
		if len(c.Pages) == 0 {
			return fmt.Errorf("paged content must have at least one page")
		}
		return nil
	default:
		return fmt.Errorf("unknown content type %q", c.Type)
	}
}

// Scan implements sql.Scanner so GORM loads content as a validated union.
func (c *LessonContent) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		return fmt.Errorf("lesson content is null")
	default:
		return fmt.Errorf("unsupported content column type %T", value)
	}
	var parsed LessonContent
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse lesson content: %w", err)
	}
	if err := parsed.Validate(); err != nil {
		return fmt.Errorf("invalid lesson content: %w", err)
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer; writes are validated the same way.
func (c LessonContent) Value() (driver.Value, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
