package products

import (
	"net/url"
	"strings"

	"storefront/internal/domain/validation"
	"storefront/internal/params"
)

// Relation names accepted by ?include=.
const (
	RelationCategory    = "category"
	RelationSubCategory = "subCategory"
	RelationUser        = "user"
)

// ParseInclude maps relation names to inclusion flags. Names are matched
// case-insensitively against the allow-list; anything else is rejected.
func ParseInclude(names []string) (Include, error) {
	var inc Include
	for _, name := range names {
		switch {
		case strings.EqualFold(name, RelationCategory):
			inc.Category = true
		case strings.EqualFold(name, RelationSubCategory):
			inc.SubCategory = true
		case strings.EqualFold(name, RelationUser):
			inc.User = true
		default:
			return Include{}, validation.Errorf(
				"unknown include %q, expected one of %s, %s, %s",
				name, RelationCategory, RelationSubCategory, RelationUser,
			)
		}
	}
	return inc, nil
}

// ParseFilter reads the listing query string. Malformed price bounds are
// dropped rather than rejected.
func ParseFilter(q url.Values) (Filter, error) {
	inc, err := ParseInclude(params.List(q, "include"))
	if err != nil {
		return Filter{}, err
	}

	return Filter{
		Category:     strings.TrimSpace(q.Get("category")),
		From:         params.Float(q, "from"),
		To:           params.Float(q, "to"),
		DiscountOnly: params.Bool(q, "discount"),
		Search:       strings.TrimSpace(q.Get("search")),
		Include:      inc,
	}, nil
}

// Matches applies the in-memory part of the filter to a product.
func (f Filter) Matches(p *Product) bool {
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search))
}
