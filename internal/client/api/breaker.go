package api

import (
	"sync"
	"time"
)

// OfflineWindow — фиксированная длительность, на которую клиент перестает
// ходить в сеть после того, как ни один кандидат не ответил
const OfflineWindow = 5 * time.Second

// Breaker — грубый предохранитель на весь клиент: одна метка времени,
// а не состояние по каждому хосту. Плохой сетевой всплеск ненадолго
// глушит весь трафик вместо дорогого перебора хостов на каждый вызов.
// Сбрасывается сам по истечении окна, явного reset нет.
type Breaker struct {
	mu           sync.Mutex
	offlineUntil time.Time
	now          func() time.Time
}

// NewBreaker создает предохранитель с системными часами
func NewBreaker() *Breaker {
	return &Breaker{now: time.Now}
}

// NewBreakerWithClock создает предохранитель с внешними часами (для тестов)
func NewBreakerWithClock(now func() time.Time) *Breaker {
	return &Breaker{now: now}
}

// ShortCircuit сообщает, нужно ли отказать запросу без попытки сети
func (b *Breaker) ShortCircuit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now().Before(b.offlineUntil)
}

// TripFor глушит сетевые попытки на указанную длительность.
// При конкурирующих срабатываниях побеждает последняя запись.
func (b *Breaker) TripFor(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.offlineUntil = b.now().Add(d)
}
