package model

import "time"

// AnswerRecord представляет ответ пользователя на вопрос теста
type AnswerRecord struct {
	ID            int       `json:"id"`
	UserID        int64     `json:"user_id"`
	DisplayName   string    `json:"username"`
	TestType      int       `json:"test_type"`
	QuestionID    int       `json:"question_id"`
	QuestionText  string    `json:"question_text"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	AnsweredAt    time.Time `json:"answer_time"`
}

// MistakeQuestion - ошибочный ответ из истории, используется в работе над ошибками
type MistakeQuestion struct {
	TestType      int    `json:"test_type"`
	QuestionID    int    `json:"question_id"`
	QuestionText  string `json:"question_text"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

// Activity - запись журнала активности: когда вопрос показан и когда на него ответили
type Activity struct {
	ID         int        `json:"id"`
	UserID     int64      `json:"user_id"`
	TestType   int        `json:"test_type"`
	QuestionID int        `json:"question_id"`
	StartedAt  time.Time  `json:"started_at"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
	UserAnswer *string    `json:"user_answer,omitempty"`
	IsCorrect  *bool      `json:"is_correct,omitempty"`
}

// Open сообщает, что на вопрос еще не ответили
func (a Activity) Open() bool {
	return a.AnsweredAt == nil
}

// TestStat - сводка ответов пользователя по одному тесту
type TestStat struct {
	TestType int `json:"test_type"`
	Total    int `json:"total"`
	Correct  int `json:"correct"`
}
