package receiptnumber

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// Prefix is prepended to every suggested receipt number.
const Prefix = "REC-"

var pattern = regexp.MustCompile(`^REC-\d{6}$`)

// Generator suggests human-facing receipt numbers of the form REC-######.
// Suggestions are convenient labels, not unique identifiers; collisions are
// tolerated and uniqueness is never enforced.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator seeded from the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a deterministic generator for tests.
func NewSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next suggestion, always six digits with no leading zero.
func (g *Generator) Next() string {
	return fmt.Sprintf("%s%06d", Prefix, 100000+g.rng.Intn(900000))
}

// IsValid reports whether s looks like a generated receipt number.
func IsValid(s string) bool {
	return pattern.MatchString(s)
}
