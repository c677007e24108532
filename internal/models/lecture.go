package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LectureTypeReading = "reading"
	LectureTypeQuiz    = "quiz"
)

// ReadingCompleteScore is recorded when a reading lecture is viewed.
const ReadingCompleteScore = 100

type Lecture struct {
	ID        uuid.UUID   `json:"id"`
	CourseID  uuid.UUID   `json:"course_id"`
	Title     string      `json:"title"`
	Type      string      `json:"type"`
	Order     int         `json:"order"`
	Content   string      `json:"content"`
	File      *FileAttach `json:"file,omitempty"`
	Questions []Question  `json:"questions,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// FileAttach describes an uploaded attachment as returned by the blob store.
type FileAttach struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Question options are indexed from zero; CorrectAnswer must point into Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

func (l *Lecture) IsQuiz() bool {
	return l.Type == LectureTypeQuiz
}

func (l *Lecture) IsReading() bool {
	return l.Type == LectureTypeReading
}
