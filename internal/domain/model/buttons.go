package model

// Префиксы и ключи callback-данных inline-кнопок. Обработчик callback'ов
// разбирает данные по этим значениям, поэтому менять их можно только вместе с ним.
const (
	LearnTopicPrefix = "learn_topic_"
	LearnOK          = "learn_ok"
	LearnBack        = "learn_back"
	LearnAsk         = "learn_ask"
	LearnStop        = "learn_stop"
	LearnToChapters  = "learn_to_chapters"

	ChooseTestPrefix   = "choose_test_"
	ContinueTestPrefix = "continue_test_"
	RestartTestPrefix  = "restart_test_"
	StopTest           = "stop_test"
	HintPrefix         = "hint_"
	WorkOnMistakes     = "work_on_mistakes"
	MistakeTestPrefix  = "mistake_test_"
	ToMainMenu         = "to_main_menu"
)

// Тексты кнопок главного меню (reply-клавиатура)
const (
	MenuCourse  = "🌱 Курс по органике"
	MenuTests   = "📝 Тесты"
	MenuExam    = "🧪 Устный зачет"
	MenuReport  = "📈 Получить отчёт"
	MenuHelp    = "ℹ️ Как работает бот"
	MenuResume  = "▶️ Продолжить"
	MenuBack    = "⬅️ В меню"
	MenuTopics  = "⬅️ К темам"
	MenuCommand = "Меню"
)
