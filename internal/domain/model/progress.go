package model

// QuizProgress - сохраненная позиция пользователя в тесте
type QuizProgress struct {
	UserID      int64 `json:"user_id"`
	TestType    int   `json:"test_type"`
	Index       int   `json:"idx"`
	QuestionIDs []int `json:"q_ids"`
}
