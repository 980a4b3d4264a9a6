package voice_handler

import (
	"context"
	"fmt"
	"os"

	"github.com/IT-Nick/tutorbot/internal/app/handlers/telegram/render"
	"github.com/IT-Nick/tutorbot/internal/domain/model"
	"github.com/IT-Nick/tutorbot/internal/infra/speech"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

type SpeechHandler interface {
	HandleSpeech(ctx context.Context, learner model.Learner, transcript string) ([]model.Reply, error)
}

// VoiceHandler распознает голосовое сообщение и передает текст в машину состояний.
// Скачанный файл удаляется при любом исходе.
type VoiceHandler struct {
	machine     SpeechHandler
	transcriber Transcriber
	download    func(c telebot.Context, file *telebot.File, path string) error
	tempDir     string
	render      *render.Renderer
	log         *zap.Logger
}

// NewVoiceHandler возвращает структуру обработчика
func NewVoiceHandler(
	machine SpeechHandler,
	transcriber Transcriber,
	tempDir string,
	render *render.Renderer,
	log *zap.Logger,
) *VoiceHandler {
	return &VoiceHandler{
		machine:     machine,
		transcriber: transcriber,
		download:    downloadFile,
		tempDir:     tempDir,
		render:      render,
		log:         log,
	}
}

func downloadFile(c telebot.Context, file *telebot.File, path string) error {
	return c.Bot().Download(file, path)
}

func (h *VoiceHandler) Handle(c telebot.Context) error {
	msg := c.Message()

	var file *telebot.File
	switch {
	case msg.Voice != nil:
		file = &msg.Voice.File
	case msg.Audio != nil:
		file = &msg.Audio.File
	default:
		return nil
	}

	ctx := context.Background()
	_ = c.Notify(telebot.Typing)

	path := speech.TempVoicePath(h.tempDir)
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			h.log.Warn("failed to remove voice file", zap.String("path", path), zap.Error(err))
		}
	}()

	if err := h.download(c, file, path); err != nil {
		return h.render.Fail(c, fmt.Errorf("failed to download voice: %w", err))
	}

	transcript, err := h.transcriber.Transcribe(ctx, path)
	if err != nil {
		return h.render.Fail(c, err)
	}

	replies, err := h.machine.HandleSpeech(ctx, render.LearnerOf(c), transcript)
	return h.render.Reply(c, replies, err)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *VoiceHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
