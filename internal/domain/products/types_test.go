package products

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadUnmarshal(t *testing.T) {
	var p Payload
	err := json.Unmarshal([]byte(`{
		"title": "86 Diamonds",
		"price": 1.5,
		"discount": null,
		"category": "mobile-legends",
		"subCategory": "a",
		"img": "x.png",
		"stock": 20,
		"userId": 1,
		"id": 99
	}`), &p)
	require.NoError(t, err)

	require.NotNil(t, p.Title)
	require.NotNil(t, p.Price)
	assert.Equal(t, "86 Diamonds", *p.Title)
	assert.Equal(t, 1.5, *p.Price)
	assert.Equal(t, 0.0, p.Discount)
	assert.Equal(t, "mobile-legends", p.Category)
	assert.Equal(t, "a", p.SubCategory)
	assert.Equal(t, "x.png", p.Img)
	assert.Equal(t, map[string]any{"stock": 20.0}, p.Attributes)
}

func TestPayloadUnmarshalMissingAndInvalid(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"title": null}`), &p))
	assert.Nil(t, p.Title)
	assert.Nil(t, p.Price)

	assert.Error(t, json.Unmarshal([]byte(`{"price": "cheap"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &p))
}

func TestProductMarshalFlattensAttributes(t *testing.T) {
	p := Product{
		ID:         1,
		Title:      "Phone",
		Price:      300,
		Attributes: map[string]any{"stock": 3, "title": "shadowed"},
	}
	b, err := json.Marshal(&p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "Phone", out["title"])
	assert.Equal(t, 3.0, out["stock"])
	assert.NotContains(t, out, "category")
}

func TestCategorySubCategory(t *testing.T) {
	c := gameCategory()
	assert.Equal(t, "b.png", c.SubCategory("b").LogoImg)
	assert.Nil(t, c.SubCategory("z"))
}
