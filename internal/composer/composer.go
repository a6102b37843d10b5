// Package composer combines four item lists into random hints.
package composer

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/verte-zerg/randomhints/internal/itemlist"
	"github.com/verte-zerg/randomhints/internal/model"
)

// Composer holds the loaded item lists and the current selection.
// It is not safe for concurrent use.
type Composer struct {
	rnd *rand.Rand

	applications []string
	targets      []string
	objects      []string
	actions      []string
	patterns     int

	current model.Selection
}

// New returns a Composer drawing from rnd. A nil rnd is seeded with the
// current time.
func New(rnd *rand.Rand) *Composer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{rnd: rnd}
}

// LoadAll reads all four lists. On any error the held lists are left
// untouched and the first error is returned unchanged.
func (c *Composer) LoadAll(paths model.Paths) error {
	applications, err := itemlist.Load(paths.Applications)
	if err != nil {
		return err
	}
	targets, err := itemlist.Load(paths.Targets)
	if err != nil {
		return err
	}
	objects, err := itemlist.Load(paths.Objects)
	if err != nil {
		return err
	}
	actions, err := itemlist.Load(paths.Actions)
	if err != nil {
		return err
	}

	c.applications = applications
	c.targets = targets
	c.objects = objects
	c.actions = actions
	c.patterns = product(len(applications), len(targets), len(objects), len(actions))
	return nil
}

// Loaded reports whether LoadAll has succeeded at least once.
func (c *Composer) Loaded() bool {
	return len(c.applications) > 0
}

// Generate draws one item from each list and a random color, uniformly and
// with replacement. The result becomes the current selection. Before the
// first successful load it returns the zero Selection.
func (c *Composer) Generate() model.Selection {
	if !c.Loaded() {
		return model.Selection{}
	}
	c.current = model.Selection{
		Application: choice(c.rnd, c.applications),
		Target:      choice(c.rnd, c.targets),
		Object:      choice(c.rnd, c.objects),
		Action:      choice(c.rnd, c.actions),
		Color:       randomColor(c.rnd),
	}
	return c.current
}

// Current returns the last generated selection.
func (c *Composer) Current() model.Selection {
	return c.current
}

// PatternCount returns the number of distinct combinations as of the last
// successful load.
func (c *Composer) PatternCount() int {
	return c.patterns
}

// Sizes returns the length of each list.
func (c *Composer) Sizes() model.Sizes {
	return model.Sizes{
		Applications: len(c.applications),
		Targets:      len(c.targets),
		Objects:      len(c.objects),
		Actions:      len(c.actions),
	}
}

// Lists returns copies of the four lists in application, target, object,
// action order.
func (c *Composer) Lists() [4][]string {
	return [4][]string{
		append([]string(nil), c.applications...),
		append([]string(nil), c.targets...),
		append([]string(nil), c.objects...),
		append([]string(nil), c.actions...),
	}
}

func choice(rnd *rand.Rand, items []string) string {
	return items[rnd.Intn(len(items))]
}

func randomColor(rnd *rand.Rand) colorful.Color {
	return colorful.Color{R: rnd.Float64(), G: rnd.Float64(), B: rnd.Float64()}
}

// product multiplies sizes, saturating at math.MaxInt.
func product(sizes ...int) int {
	total := 1
	for _, n := range sizes {
		if n == 0 {
			return 0
		}
		if total > math.MaxInt/n {
			return math.MaxInt
		}
		total *= n
	}
	return total
}
