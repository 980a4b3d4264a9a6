package session

// State - текущее положение пользователя. Реализации: Idle, CourseBrowsing,
// QuizActive, MistakeReview. Одновременно у пользователя только одно состояние.
type State interface {
	kind() string
}

// Idle - пользователь ничего не проходит
type Idle struct{}

// CourseBrowsing - чтение главы курса по порциям
type CourseBrowsing struct {
	Chapter          string `json:"chapter"`
	Chunk            int    `json:"chunk"`
	AwaitingQuestion bool   `json:"awaiting_question"`
}

// QuizActive - прохождение теста
type QuizActive struct {
	TestType    int   `json:"test_type"`
	Cursor      int   `json:"cursor"`
	QuestionIDs []int `json:"question_ids"`
}

// MistakeReview - работа над ошибками по одному тесту
type MistakeReview struct {
	TestType    int   `json:"test_type"`
	Cursor      int   `json:"cursor"`
	QuestionIDs []int `json:"question_ids"`
}

const (
	kindIdle   = "idle"
	kindCourse = "course"
	kindQuiz   = "quiz"
	kindReview = "review"
)

func (Idle) kind() string           { return kindIdle }
func (CourseBrowsing) kind() string { return kindCourse }
func (QuizActive) kind() string     { return kindQuiz }
func (MistakeReview) kind() string  { return kindReview }

// record - представление State для JSON-хранилища
type record struct {
	Kind   string          `json:"kind"`
	Course *CourseBrowsing `json:"course,omitempty"`
	Quiz   *QuizActive     `json:"quiz,omitempty"`
	Review *MistakeReview  `json:"review,omitempty"`
}

func toRecord(s State) record {
	r := record{Kind: s.kind()}
	switch st := s.(type) {
	case CourseBrowsing:
		r.Course = &st
	case QuizActive:
		r.Quiz = &st
	case MistakeReview:
		r.Review = &st
	}
	return r
}

func (r record) state() (State, bool) {
	switch {
	case r.Kind == kindCourse && r.Course != nil:
		return *r.Course, true
	case r.Kind == kindQuiz && r.Quiz != nil:
		return *r.Quiz, true
	case r.Kind == kindReview && r.Review != nil:
		return *r.Review, true
	case r.Kind == kindIdle:
		return Idle{}, true
	}
	return nil, false
}

// KindOf - короткое название состояния для логов и отладки
func KindOf(s State) string {
	if s == nil {
		return kindIdle
	}
	return s.kind()
}
