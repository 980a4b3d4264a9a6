package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/IT-Nick/tutorbot/internal/domain/model"
)

// Store хранит состояние пользователей. Get возвращает ok == false, если
// состояния нет, и ошибку, если хранилище не удалось прочитать.
type Store interface {
	Get(userID int64) (State, bool, error)
	Put(userID int64, state State) error
	Delete(userID int64) error
}

// MemoryStore - in-memory реализация. Состояние теряется при перезапуске.
type MemoryStore struct {
	data map[int64]State
	mu   sync.RWMutex
}

// NewMemoryStore создает новый MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[int64]State)}
}

func (m *MemoryStore) Get(userID int64) (State, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.data[userID]
	return state, ok, nil
}

func (m *MemoryStore) Put(userID int64, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[userID] = state
	return nil
}

func (m *MemoryStore) Delete(userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userID)
	return nil
}

// JSONStore хранит состояния в JSON-файле, чтобы они переживали перезапуск
type JSONStore struct {
	filename string
	mu       sync.Mutex
}

// NewJSONStore создает JSONStore; файл создается при первой записи
func NewJSONStore(filename string) *JSONStore {
	return &JSONStore{filename: filename}
}

func (j *JSONStore) load() (map[int64]record, error) {
	data, err := os.ReadFile(j.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[int64]record), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", j.filename, err)
	}
	m := make(map[int64]record)
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", j.filename, err)
	}
	return m, nil
}

func (j *JSONStore) save(m map[int64]record) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(j.filename), 0o755); err != nil {
		return err
	}
	tmp := j.filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	return os.Rename(tmp, j.filename)
}

func (j *JSONStore) Get(userID int64) (State, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", model.ErrPersistence, err)
	}
	r, ok := m[userID]
	if !ok {
		return nil, false, nil
	}
	st, ok := r.state()
	return st, ok, nil
}

func (j *JSONStore) Put(userID int64, state State) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	m[userID] = toRecord(state)
	return j.save(m)
}

func (j *JSONStore) Delete(userID int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	m, err := j.load()
	if err != nil {
		return err
	}
	if _, ok := m[userID]; !ok {
		return nil
	}
	delete(m, userID)
	return j.save(m)
}

// NewStore возвращает реализацию Store в зависимости от типа хранения
func NewStore(storageType, filename string) Store {
	if storageType == "json" {
		return NewJSONStore(filename)
	}
	return NewMemoryStore()
}
