package domain

import "fmt"

// Category is the classified depth of a subject's engagement, ordered
// Pass < Look < Stop < Use.
type Category string

const (
	CategoryPass Category = "pass"
	CategoryLook Category = "look"
	CategoryStop Category = "stop"
	CategoryUse  Category = "use"
)

func (c Category) Validate() error {
	switch c {
	case CategoryPass, CategoryLook, CategoryStop, CategoryUse:
		return nil
	default:
		return fmt.Errorf("unknown category %q", string(c))
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Depth returns the category's position in the engagement order.
func (c Category) Depth() int {
	switch c {
	case CategoryLook:
		return 1
	case CategoryStop:
		return 2
	case CategoryUse:
		return 3
	default:
		return 0
	}
}

// FlagSet is the monotone indicator set derived from a Category. The
// implication chain Use => Stop => Look => Pass always holds; Pass is true
// for every recorded subject.
type FlagSet struct {
	Pass bool `json:"pass"`
	Look bool `json:"look"`
	Stop bool `json:"stop"`
	Use  bool `json:"use"`
}

// DeriveFlags maps a category to its flag set. Flags are never set
// independently: this is invoked at entry creation and whenever an edit
// changes the category, and only then.
func DeriveFlags(c Category) FlagSet {
	f := FlagSet{Pass: true}
	f.Use = c == CategoryUse
	f.Stop = c == CategoryStop || f.Use
	f.Look = c == CategoryLook || f.Stop
	return f
}
