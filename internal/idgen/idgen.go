// Package idgen produces catalog item ids. The store only enforces the
// PREFIX-plus-digits contract, so the generation scheme can be swapped
// without touching the catalog core.
package idgen

import (
	"fmt"
	"math/rand"
	"time"
)

// Generator hands out new product ids.
type Generator interface {
	NewID() string
}

type timeRandom struct {
	prefix string
	now    func() time.Time
}

// NewTimeRandom returns a Generator producing prefix + unix-millis + a
// 3-digit random suffix, e.g. MLA1700000000000042.
func NewTimeRandom(prefix string) Generator {
	return &timeRandom{prefix: prefix, now: time.Now}
}

func (g *timeRandom) NewID() string {
	return fmt.Sprintf("%s%d%03d", g.prefix, g.now().UnixMilli(), rand.Intn(1000))
}
