package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LectureStore - хранилище подготовленных лекций
type LectureStore interface {
	Lecture(ctx context.Context, topic string, idx int) (string, bool, error)
	SaveLecture(ctx context.Context, topic string, idx int, origText, lecture string) error
}

// Lecturer превращает фрагмент учебника в лекцию
type Lecturer interface {
	TeachMaterial(ctx context.Context, chunk string) (string, error)
}

// PrepareStats - итог подготовки лекций
type PrepareStats struct {
	Prepared int
	Skipped  int
	Failed   int
}

// Preparer готовит лекции для порций учебника, у которых их еще нет
type Preparer struct {
	catalog *Catalog
	store   LectureStore
	lecturer Lecturer
	log     *zap.Logger
}

// NewPreparer создает новый экземпляр Preparer
func NewPreparer(catalog *Catalog, store LectureStore, lecturer Lecturer, log *zap.Logger) *Preparer {
	return &Preparer{catalog: catalog, store: store, lecturer: lecturer, log: log}
}

// Prepare проходит по главам (или по одной главе, если chapter не пуст).
// Уже готовые лекции пропускаются, если не задан force. Ошибка модели по одной
// порции не прерывает подготовку остальных.
func (p *Preparer) Prepare(ctx context.Context, chapter string, force bool) (PrepareStats, error) {
	var stats PrepareStats

	chapters := p.catalog.Chapters()
	if chapter != "" {
		if p.catalog.Index(chapter) < 0 {
			return stats, fmt.Errorf("unknown chapter %q", chapter)
		}
		chapters = []string{chapter}
	}

	for _, name := range chapters {
		for idx, chunk := range p.catalog.Chunks(name) {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			if !force {
				_, ok, err := p.store.Lecture(ctx, name, idx)
				if err != nil {
					return stats, err
				}
				if ok {
					stats.Skipped++
					continue
				}
			}

			lecture, err := p.lecturer.TeachMaterial(ctx, chunk)
			if err != nil {
				stats.Failed++
				p.log.Warn("failed to prepare lecture",
					zap.String("chapter", name), zap.Int("chunk", idx), zap.Error(err))
				continue
			}

			if err := p.store.SaveLecture(ctx, name, idx, chunk, lecture); err != nil {
				return stats, err
			}
			stats.Prepared++
			p.log.Info("lecture prepared", zap.String("chapter", name), zap.Int("chunk", idx))
		}
	}

	return stats, nil
}
