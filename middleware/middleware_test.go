package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

func newContext(t *testing.T, u tele.Update) tele.Context {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return b.NewContext(u)
}

func TestRecover_TurnsPanicIntoError(t *testing.T) {
	c := newContext(t, tele.Update{ID: 1, Message: &tele.Message{Text: "hi", Sender: &tele.User{ID: 7}}})

	var got error
	h := Recover(zap.NewNop(), func(err error, _ tele.Context) { got = err })(func(tele.Context) error {
		panic("boom")
	})

	err := h(c)
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, err, got)
}

func TestRecover_PassesErrorsThrough(t *testing.T) {
	c := newContext(t, tele.Update{ID: 2, Message: &tele.Message{Text: "hi"}})
	want := errors.New("handler failed")

	err := Recover(zap.NewNop())(func(tele.Context) error { return want })(c)
	assert.Equal(t, want, err)
}

func TestUpdateKind(t *testing.T) {
	tests := []struct {
		update tele.Update
		want   string
	}{
		{tele.Update{Callback: &tele.Callback{Data: "learn_ok"}}, "callback"},
		{tele.Update{Message: &tele.Message{Voice: &tele.Voice{}}}, "voice"},
		{tele.Update{Message: &tele.Message{Text: "2"}}, "message"},
		{tele.Update{}, "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UpdateKind(newContext(t, tt.update)))
	}
}

type callbackContext struct {
	tele.Context
	cb        *tele.Callback
	responses []*tele.CallbackResponse
}

func (c *callbackContext) Callback() *tele.Callback { return c.cb }

func (c *callbackContext) Respond(resp ...*tele.CallbackResponse) error {
	var r *tele.CallbackResponse
	if len(resp) > 0 {
		r = resp[0]
	}
	c.responses = append(c.responses, r)
	return nil
}

func TestAutoRespond_AnswersUnansweredCallback(t *testing.T) {
	c := &callbackContext{cb: &tele.Callback{ID: "1", Data: "learn_ok"}}

	err := AutoRespond()(func(tele.Context) error { return nil })(c)
	require.NoError(t, err)
	assert.Len(t, c.responses, 1)
}

func TestAutoRespond_SkipsSecondAnswerAfterAlert(t *testing.T) {
	c := &callbackContext{cb: &tele.Callback{ID: "1", Data: "learn_back"}}
	alert := &tele.CallbackResponse{Text: "Это первая порция главы.", ShowAlert: true}

	err := AutoRespond()(func(c tele.Context) error {
		return c.Respond(alert)
	})(c)
	require.NoError(t, err)
	require.Len(t, c.responses, 1)
	assert.Same(t, alert, c.responses[0])
}

func TestAutoRespond_IgnoresMessages(t *testing.T) {
	c := &callbackContext{}

	called := false
	err := AutoRespond()(func(tele.Context) error { called = true; return nil })(c)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, c.responses)
}
