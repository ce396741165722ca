package fakevalues

import (
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Picker chooses an index in [0, n). Implementations must be safe for
// concurrent use.
type Picker interface {
	Intn(n int) int
}

// NewPicker returns a Picker seeded with seed. A zero seed uses the clock.
func NewPicker(seed int64) Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &fakerPicker{faker: gofakeit.New(seed)}
}

type fakerPicker struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

func (p *fakerPicker) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.faker.Number(0, n-1)
}
