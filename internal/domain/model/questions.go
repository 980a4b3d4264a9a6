package model

// Question представляет вопрос теста из банка вопросов
type Question struct {
	ID                  int      `json:"id"`
	TestType            int      `json:"test_type"`
	Text                string   `json:"question"`
	Options             []string `json:"options"`
	CorrectAnswer       string   `json:"correct_answer"` // номера правильных вариантов, например "2" или "13"
	Hint                string   `json:"hint,omitempty"`
	Explanation         string   `json:"explanation,omitempty"`
	DetailedExplanation string   `json:"detailed_explanation,omitempty"`
}

// ExplanationText возвращает краткое объяснение, а если его нет - подробное
func (q Question) ExplanationText() string {
	if q.Explanation != "" {
		return q.Explanation
	}
	return q.DetailedExplanation
}
