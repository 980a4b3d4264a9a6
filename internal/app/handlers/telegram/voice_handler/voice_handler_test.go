package voice_handler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

type fakeContext struct {
	telebot.Context
	msg  *telebot.Message
	sent []string
}

func (c *fakeContext) Message() *telebot.Message { return c.msg }
func (c *fakeContext) Sender() *telebot.User { return c.msg.Sender }
func (c *fakeContext) Callback() *telebot.Callback { return nil }
func (c *fakeContext) Notify(telebot.ChatAction) error { return nil }
func (c *fakeContext) Send(what any, _ ...any) error {
	c.sent = append(c.sent, fmt.Sprint(what))
	return nil
}

func voiceContext() *fakeContext {
	return &fakeContext{msg: &telebot.Message{
		Sender: &telebot.User{ID: 7, FirstName: "Маша"},
		Voice:  &telebot.Voice{File: telebot.File{FileID: "voice-1"}},
	}}
}

type transcriberFunc func(path string) (string, error)

func (f transcriberFunc) Transcribe(_ context.Context, path string) (string, error) { return f(path) }

type speechFunc func(learner model.Learner, transcript string) ([]model.Reply, error)

func (f speechFunc) HandleSpeech(_ context.Context, learner model.Learner, transcript string) ([]model.Reply, error) {
	return f(learner, transcript)
}

// newHandler собирает обработчик, который "скачивает" голосовое в tempDir
func newHandler(t *testing.T, machine SpeechHandler, tr Transcriber) (*VoiceHandler, string, *string) {
	t.Helper()
	dir := t.TempDir()
	var downloaded string

	h := NewVoiceHandler(machine, tr, dir, render.NewRenderer(nil, zap.NewNop()), zap.NewNop())
	h.download = func(_ telebot.Context, _ *telebot.File, path string) error {
		downloaded = path
		return os.WriteFile(path, []byte("OggS"), 0o644)
	}
	return h, dir, &downloaded
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	left, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestVoiceHandler_RemovesFileWhenTranscriptionFails(t *testing.T) {
	machine := speechFunc(func(model.Learner, string) ([]model.Reply, error) {
		t.Fatal("machine must not be called")
		return nil, nil
	})
	tr := transcriberFunc(func(path string) (string, error) {
		assert.FileExists(t, path)
		return "", fmt.Errorf("transcribe: %w", model.ErrCapability)
	})
	h, dir, downloaded := newHandler(t, machine, tr)
	c := voiceContext()

	require.NoError(t, h.Handle(c))

	require.NotEmpty(t, *downloaded)
	assert.Equal(t, dir, filepath.Dir(*downloaded))
	assert.NoFileExists(t, *downloaded)
	assertDirEmpty(t, dir)
	assert.Equal(t, []string{render.MsgCapability}, c.sent)
}

func TestVoiceHandler_RemovesFileWhenDownloadFails(t *testing.T) {
	tr := transcriberFunc(func(string) (string, error) {
		t.Fatal("transcriber must not be called")
		return "", nil
	})
	h, dir, _ := newHandler(t, nil, tr)
	var partial string
	h.download = func(_ telebot.Context, _ *telebot.File, path string) error {
		partial = path
		require.NoError(t, os.WriteFile(path, []byte("Ogg"), 0o644))
		return errors.New("connection reset")
	}
	c := voiceContext()

	require.NoError(t, h.Handle(c))

	assert.NoFileExists(t, partial)
	assertDirEmpty(t, dir)
	assert.Equal(t, []string{render.MsgInternal}, c.sent)
}

func TestVoiceHandler_PassesTranscriptAndRemovesFile(t *testing.T) {
	var got string
	machine := speechFunc(func(learner model.Learner, transcript string) ([]model.Reply, error) {
		assert.Equal(t, int64(7), learner.TelegramID)
		got = transcript
		return []model.Reply{model.Text("Тема: Алканы")}, nil
	})
	tr := transcriberFunc(func(string) (string, error) { return "метан это алкан", nil })
	h, dir, downloaded := newHandler(t, machine, tr)
	c := voiceContext()

	require.NoError(t, h.Handle(c))

	assert.Equal(t, "метан это алкан", got)
	assert.Equal(t, []string{"Тема: Алканы"}, c.sent)
	assert.NoFileExists(t, *downloaded)
	assertDirEmpty(t, dir)
}

func TestVoiceHandler_IgnoresMessagesWithoutAudio(t *testing.T) {
	h, _, downloaded := newHandler(t, nil, nil)
	c := &fakeContext{msg: &telebot.Message{Text: "привет", Sender: &telebot.User{ID: 7}}}

	require.NoError(t, h.Handle(c))
	assert.Empty(t, *downloaded)
	assert.Empty(t, c.sent)
}
