package products

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type Category struct {
	ID            int64          `json:"id"`
	Slug          string         `json:"slug"`
	Name          string         `json:"name"`
	LogoImg       string         `json:"logoImg"`
	IsTopup       bool           `json:"isTopup"`
	SubCategories []*SubCategory `json:"subCategories"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// SubCategory finds a sub-category of c by slug.
func (c *Category) SubCategory(slug string) *SubCategory {
	for _, sc := range c.SubCategories {
		if sc.Slug == slug {
			return sc
		}
	}
	return nil
}

type SubCategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	LogoImg    string `json:"logoImg"`
	Position   int    `json:"position"`
}

// Creator is the public part of the user that created a product.
type Creator struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

type Product struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Price         float64        `json:"price"`
	Discount      float64        `json:"discount"`
	Img           string         `json:"img"`
	CategoryID    int64          `json:"categoryId"`
	SubCategoryID *int64         `json:"subCategoryId"`
	UserID        int64          `json:"userId"`
	Category      *Category      `json:"category,omitempty"`
	SubCategory   *SubCategory   `json:"subCategory,omitempty"`
	User          *Creator       `json:"user,omitempty"`
	Attributes    map[string]any `json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// MarshalJSON writes the free-form attributes next to the regular fields.
// Regular fields win on a name clash.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	base, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	if len(p.Attributes) == 0 {
		return base, nil
	}

	merged := make(map[string]any, len(p.Attributes)+16)
	for k, v := range p.Attributes {
		merged[k] = v
	}
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(base))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// reserved payload keys are owned by the server and never stored as attributes.
var reserved = map[string]bool{
	"id":            true,
	"user":          true,
	"userId":        true,
	"categoryId":    true,
	"subCategoryId": true,
	"createdAt":     true,
	"updatedAt":     true,
}

// Payload is one product as posted by an admin. Title and Price are pointers
// so that a missing field can be told apart from a zero value.
type Payload struct {
	Title       *string
	Price       *float64
	Discount    float64
	Category    string
	SubCategory string
	Img         string
	Attributes  map[string]any
}

func (p *Payload) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("product must be a JSON object: %w", err)
	}

	*p = Payload{}
	for key, val := range raw {
		var err error
		switch key {
		case "title":
			err = json.Unmarshal(val, &p.Title)
		case "price":
			err = json.Unmarshal(val, &p.Price)
		case "discount":
			var d *float64
			err = json.Unmarshal(val, &d)
			if d != nil {
				p.Discount = *d
			}
		case "category":
			err = json.Unmarshal(val, &p.Category)
		case "subCategory":
			var s *string
			err = json.Unmarshal(val, &s)
			if s != nil {
				p.SubCategory = *s
			}
		case "img":
			var s *string
			err = json.Unmarshal(val, &s)
			if s != nil {
				p.Img = *s
			}
		default:
			if reserved[key] {
				continue
			}
			var v any
			err = json.Unmarshal(val, &v)
			if p.Attributes == nil {
				p.Attributes = make(map[string]any)
			}
			p.Attributes[key] = v
		}
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

// Include lists the relations loaded alongside each product.
type Include struct {
	Category    bool
	SubCategory bool
	User        bool
}

// Filter narrows a product listing. Nil bounds are open.
type Filter struct {
	Category     string
	From         *float64
	To           *float64
	DiscountOnly bool
	Search       string
	Include      Include
}

type ListResult struct {
	Products []*Product `json:"products"`
	Length   int        `json:"length"`
}
