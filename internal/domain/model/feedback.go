package model

import "time"

// FeedbackRecord - проверенный устный или письменный ответ ученика
type FeedbackRecord struct {
	ID         int       `json:"id"`
	UserID     int64     `json:"user_id"`
	FullName   string    `json:"full_name"`
	Topic      string    `json:"topic"`
	Transcript string    `json:"transcript"`
	Feedback   string    `json:"feedback"`
	CreatedAt  time.Time `json:"created_at"`
}
