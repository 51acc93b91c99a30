package respage

import (
	"sync"
	"time"
)

// cacheTTL срок жизни кэша списка аменити
// Список меняется редко, а каждый промах — лишний запрос к платформе
const cacheTTL = 5 * time.Minute

// amenityCache процессный кэш списка аменити с TTL
// Допускается конкурентное обновление: лишний refresh стоит один запрос
// и не влияет на корректность
type amenityCache struct {
	mu        sync.Mutex
	data      []Amenity
	fetchedAt time.Time
}

// get возвращает закэшированный список, если он ещё не устарел
func (c *amenityCache) get(now time.Time) ([]Amenity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data == nil || now.Sub(c.fetchedAt) >= cacheTTL {
		return nil, false
	}
	return c.data, true
}

// put заменяет содержимое кэша
func (c *amenityCache) put(data []Amenity, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = data
	c.fetchedAt = now
}
