package model

// Format - режим разметки исходящего сообщения
type Format int

const (
	FormatPlain Format = iota
	FormatHTML
	FormatMarkdown
)

// Keyboard - что сделать с reply-клавиатурой пользователя
type Keyboard int

const (
	KeyboardKeep Keyboard = iota
	KeyboardMain
	KeyboardTopics
	KeyboardAfterTopic
	KeyboardChapters
	KeyboardRemove
)

// Button - inline-кнопка с callback-данными
type Button struct {
	Text string
	Data string
}

// Reply - исходящее сообщение, не зависящее от транспорта
type Reply struct {
	Text     string
	Format   Format
	Inline   [][]Button
	Keyboard Keyboard
	// Alert - показать текст всплывающим уведомлением в ответ на callback
	Alert bool
}

// Text создает простое текстовое сообщение
func Text(text string) Reply {
	return Reply{Text: text}
}

// Row собирает ряд inline-кнопок
func Row(buttons ...Button) []Button {
	return buttons
}
