package model

import "time"

// Learner - ученик, зарегистрированный командой /start
type Learner struct {
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"telegram_username"`
	FirstName  string    `json:"telegram_first_name"`
	FullName   string    `json:"full_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// DisplayName возвращает username, а если его нет - полное имя
func (l Learner) DisplayName() string {
	if l.Username != "" {
		return l.Username
	}
	return l.FullName
}
