package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Chapter - глава учебника, разбитая на порции
type Chapter struct {
	Name   string
	Chunks []string
}

// Catalog - оглавление курса: главы в порядке имен файлов
type Catalog struct {
	chapters []Chapter
	index    map[string]int
}

// NewCatalog собирает каталог из уже загруженных глав
func NewCatalog(chapters []Chapter) *Catalog {
	c := &Catalog{
		chapters: chapters,
		index:    make(map[string]int, len(chapters)),
	}
	for i, ch := range chapters {
		c.index[ch.Name] = i
	}
	return c
}

// LoadCatalog читает каталог из директории с файлами <глава>.json,
// каждый из которых содержит массив строк-порций
func LoadCatalog(dir string) (*Catalog, error) {
	const op = "lectures.LoadCatalog"

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sort.Strings(files)

	chapters := make([]Chapter, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("%s: read %s: %w", op, file, err)
		}

		var chunks []string
		if err := json.Unmarshal(data, &chunks); err != nil {
			return nil, fmt.Errorf("%s: decode %s: %w", op, file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		chapters = append(chapters, Chapter{Name: name, Chunks: chunks})
	}

	return NewCatalog(chapters), nil
}

// Chapters возвращает названия глав по порядку
func (c *Catalog) Chapters() []string {
	names := make([]string, len(c.chapters))
	for i, ch := range c.chapters {
		names[i] = ch.Name
	}
	return names
}

// Chapter возвращает главу по индексу
func (c *Catalog) Chapter(idx int) (Chapter, bool) {
	if idx < 0 || idx >= len(c.chapters) {
		return Chapter{}, false
	}
	return c.chapters[idx], true
}

// Index возвращает номер главы по названию или -1
func (c *Catalog) Index(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

// Chunks возвращает порции главы; nil для неизвестной главы
func (c *Catalog) Chunks(name string) []string {
	i := c.Index(name)
	if i < 0 {
		return nil
	}
	return c.chapters[i].Chunks
}

// Passages возвращает до n первых непустых порций главы как контекст для проверки ответа
func (c *Catalog) Passages(topic string, n int) []string {
	var passages []string
	for _, chunk := range c.Chunks(topic) {
		if len(passages) == n {
			break
		}
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		passages = append(passages, chunk)
	}
	return passages
}

// Len - количество глав
func (c *Catalog) Len() int {
	return len(c.chapters)
}
