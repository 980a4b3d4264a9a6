package dto

// LearnerProgressResponse структура для отчета о прогрессе ученика
type LearnerProgressResponse struct {
	Username    string         `json:"username"`
	TelegramID  int64          `json:"telegram_id"`
	FullName    string         `json:"full_name"`
	GeneratedAt string         `json:"generated_at"`
	Topics      TopicsProgress `json:"topics"`
	TestHistory []TestHistory  `json:"test_history"`
	Comments    []CommentInfo  `json:"comments"`
}

// TopicsProgress - сданные темы устного зачета
type TopicsProgress struct {
	Done  []string `json:"done"`
	Total int      `json:"total"`
}

type TestHistory struct {
	TestType       int `json:"test_type"`
	TotalAnswers   int `json:"total_answers"`
	CorrectAnswers int `json:"correct_answers"`
	Percent        int `json:"percent"`
}

type CommentInfo struct {
	Topic     string `json:"topic"`
	Feedback  string `json:"feedback"`
	CreatedAt string `json:"created_at"`
}
