package session

import "sync"

// locker выдает мьютекс на пользователя: действия одного пользователя
// выполняются по очереди, разные пользователи не мешают друг другу
type locker struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newLocker() *locker {
	return &locker{locks: make(map[int64]*userLock)}
}

// lock захватывает блокировку пользователя и возвращает функцию освобождения
func (l *locker) lock(userID int64) func() {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()

	return func() {
		ul.mu.Unlock()

		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
