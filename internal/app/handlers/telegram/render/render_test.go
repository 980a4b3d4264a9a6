package render

import (
	"fmt"
	"testing"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

func TestNotice(t *testing.T) {
	assert.Equal(t, MsgMalformed, Notice(fmt.Errorf("x: %w", model.ErrMalformedInput)))
	assert.Equal(t, MsgNotFound, Notice(fmt.Errorf("x: %w", model.ErrNotFound)))
	assert.Equal(t, MsgCapability, Notice(fmt.Errorf("classify: %w: %w", model.ErrCapability, fmt.Errorf("timeout"))))
	assert.Equal(t, MsgPersistence, Notice(fmt.Errorf("save: %w", model.ErrPersistence)))
	assert.Equal(t, MsgInternal, Notice(fmt.Errorf("boom")))
}

func TestMarkup(t *testing.T) {
	r := NewRenderer([]string{"Алканы", "Алкены", "Спирты"}, zap.NewNop())

	m := r.markup(model.Reply{Inline: [][]model.Button{model.Row(model.Button{Text: "Тест 3", Data: "choose_test_3"})}})
	require.Len(t, m.InlineKeyboard, 1)
	assert.Equal(t, tele.InlineButton{Text: "Тест 3", Data: "choose_test_3"}, m.InlineKeyboard[0][0])

	m = r.markup(model.Reply{Keyboard: model.KeyboardTopics})
	require.Len(t, m.ReplyKeyboard, 3)
	assert.Len(t, m.ReplyKeyboard[0], 2)
	assert.Len(t, m.ReplyKeyboard[1], 1)
	assert.Equal(t, model.MenuBack, m.ReplyKeyboard[2][0].Text)
	assert.True(t, m.OneTimeKeyboard)

	assert.True(t, r.markup(model.Reply{Keyboard: model.KeyboardRemove}).RemoveKeyboard)
	assert.Nil(t, r.markup(model.Reply{Text: "plain"}))
}

func TestParseMode(t *testing.T) {
	r := NewRenderer(nil, zap.NewNop())
	assert.Equal(t, tele.ModeHTML, r.parseMode(model.FormatHTML))
	assert.Equal(t, tele.ModeMarkdown, r.parseMode(model.FormatMarkdown))
	assert.Equal(t, tele.ModeDefault, r.parseMode(model.FormatPlain))
}
