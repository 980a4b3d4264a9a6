package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// Segmenter режет аудиофайл на отрезки и возвращает пути к ним по порядку
type Segmenter interface {
	Split(ctx context.Context, src, dir string) ([]string, error)
}

// ChunkTranscriber распознает один отрезок
type ChunkTranscriber interface {
	TranscribeChunk(ctx context.Context, path string) (string, error)
}

// FFmpegSegmenter режет OGG на отрезки фиксированной длины без перекодирования
type FFmpegSegmenter struct {
	Seconds int
}

func (s FFmpegSegmenter) Split(ctx context.Context, src, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := filepath.Join(dir, "seg_%03d.ogg")
	err := ffmpeg.Input(src).
		Output(pattern, ffmpeg.KwArgs{
			"f":            "segment",
			"segment_time": s.Seconds,
			"c":            "copy",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg segment %s: %w", src, err)
	}

	segments, err := filepath.Glob(filepath.Join(dir, "seg_*.ogg"))
	if err != nil {
		return nil, err
	}
	sort.Strings(segments)
	return segments, nil
}

// Transcriber распознает голосовое сообщение целиком
type Transcriber struct {
	segmenter Segmenter
	stt       ChunkTranscriber
	tempDir   string
	log       *zap.Logger
}

// NewTranscriber создает новый экземпляр Transcriber
func NewTranscriber(segmenter Segmenter, stt ChunkTranscriber, tempDir string, log *zap.Logger) *Transcriber {
	return &Transcriber{segmenter: segmenter, stt: stt, tempDir: tempDir, log: log}
}

// Transcribe режет файл на отрезки и распознает каждый. Ошибка на отрезке
// дает пустой фрагмент, а не обрывает распознавание. Непустые фрагменты
// склеиваются через перевод строки. Отрезки удаляются в любом случае.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (string, error) {
	dir, err := os.MkdirTemp(t.tempDir, "segments_")
	if err != nil {
		return "", fmt.Errorf("failed to create segments dir: %w", err)
	}
	defer os.RemoveAll(dir)

	segments, err := t.segmenter.Split(ctx, path, dir)
	if err != nil {
		return "", err
	}

	fragments := make([]string, 0, len(segments))
	for i, seg := range segments {
		text, err := t.stt.TranscribeChunk(ctx, seg)
		if err != nil {
			t.log.Warn("failed to transcribe segment", zap.Int("segment", i), zap.Error(err))
			text = ""
		}
		if text != "" {
			fragments = append(fragments, text)
		}
	}

	t.log.Info("transcription finished", zap.Int("segments", len(segments)), zap.Int("fragments", len(fragments)))
	return strings.Join(fragments, "\n"), nil
}

// TempVoicePath возвращает уникальное имя файла для скачанного голосового сообщения
func TempVoicePath(dir string) string {
	return filepath.Join(dir, "voice_"+uuid.NewString()+".ogg")
}
