package spending

import "fmt"

// Category groups spends and screen-time samples.
type Category string

const (
	Social              Category = "Social"
	Entertainment       Category = "Entertainment"
	ProductivityFinance Category = "Productivity & Finance"
	Other               Category = "Other"
)

// CategoryOrder is the fixed display and sort order for categories.
var CategoryOrder = []Category{Social, Entertainment, ProductivityFinance, Other}

var categoryRank = func() map[Category]int {
	m := make(map[Category]int, len(CategoryOrder))
	for i, c := range CategoryOrder {
		m[c] = i
	}
	return m
}()

// Rank returns the position of c in CategoryOrder. Unknown categories sort last.
func Rank(c Category) int {
	if r, ok := categoryRank[c]; ok {
		return r
	}
	return len(CategoryOrder)
}

// ParseCategory maps a stored label back to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryRank[c]; !ok {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func (c Category) String() string { return string(c) }
