package callback_handler

import (
	"testing"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/IT-Nick/tutorbot/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newHandler() *CallbackHandler {
	return NewCallbackHandler(session.NewMachine(session.Deps{}), nil, nil, zap.NewNop())
}

func TestCleanData(t *testing.T) {
	assert.Equal(t, "choose_test_3", CleanData(" \fchoose_test_3 "))
	assert.Equal(t, "learn_ok", CleanData(`\flearn_ok`))
}

func TestRoute(t *testing.T) {
	h := newHandler()

	for _, data := range []string{
		model.LearnOK, model.LearnBack, model.StopTest, model.ToMainMenu,
		"learn_topic_0", "choose_test_3", "continue_test_3", "restart_test_3", "mistake_test_12", "hint_101",
	} {
		act, err := h.route(data)
		require.NoError(t, err, data)
		assert.NotNil(t, act, data)
	}
}

func TestRoute_MalformedSuffix(t *testing.T) {
	h := newHandler()

	for _, data := range []string{"choose_test_x", "hint_", "learn_topic_1a"} {
		act, err := h.route(data)
		assert.ErrorIs(t, err, model.ErrMalformedInput, data)
		assert.Nil(t, act)
	}
}

func TestRoute_Unknown(t *testing.T) {
	act, err := newHandler().route("assign_test")
	assert.NoError(t, err)
	assert.Nil(t, act)
}
