package masterdata

import (
	"strings"

	"golang.org/x/text/cases"
)

// SearchByName returns up to limit products whose name contains query,
// ignoring case. A limit of zero or less returns every match.
func SearchByName(products ProductScanner, query string, limit int) []Product {
	needle := fold(query)
	return products.FindBy(func(p Product) bool {
		return strings.Contains(fold(p.Name), needle)
	}, limit)
}

// FilterByCategory returns up to limit products whose category equals
// category, ignoring case.
func FilterByCategory(products ProductScanner, category string, limit int) []Product {
	want := fold(category)
	return products.FindBy(func(p Product) bool {
		return fold(p.Category) == want
	}, limit)
}

func fold(s string) string {
	return cases.Fold().String(s)
}
