package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock — управляемое время для тестов предохранителя
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestBreaker_ClosedByDefault(t *testing.T) {
	b := NewBreaker()

	assert.False(t, b.ShortCircuit())
}

func TestBreaker_TripOpensForWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)}
	b := NewBreakerWithClock(clock.Now)

	b.TripFor(OfflineWindow)

	assert.True(t, b.ShortCircuit())

	// Внутри окна предохранитель остается открытым
	clock.Advance(OfflineWindow - time.Millisecond)
	assert.True(t, b.ShortCircuit())

	// Истечение окна закрывает предохранитель без явного сброса
	clock.Advance(time.Millisecond)
	assert.False(t, b.ShortCircuit())
}

func TestBreaker_RepeatedTripExtendsWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)}
	b := NewBreakerWithClock(clock.Now)

	b.TripFor(OfflineWindow)
	clock.Advance(3 * time.Second)

	// Повторное срабатывание перезаписывает срок: последний выигрывает
	b.TripFor(OfflineWindow)
	clock.Advance(4 * time.Second)
	assert.True(t, b.ShortCircuit())

	clock.Advance(time.Second)
	assert.False(t, b.ShortCircuit())
}
