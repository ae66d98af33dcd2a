package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	p := ParsePagination(url.Values{"page": {"3"}, "limit": {"10"}})
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Offset)

	p = ParsePagination(url.Values{"page": {"-1"}, "limit": {"500"}})
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Offset)

	p = ParsePagination(url.Values{"limit": {"abc"}})
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestComputeMeta(t *testing.T) {
	p := ParsePagination(url.Values{"page": {"2"}, "limit": {"10"}})
	p.ComputeMeta(25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)

	p.ComputeMeta(20)
	assert.False(t, p.HasNext)
}

func TestFloat(t *testing.T) {
	q := url.Values{
		"from":  {"10"},
		"to":    {" 20.5 "},
		"nan":   {"NaN"},
		"inf":   {"+Inf"},
		"word":  {"cheap"},
		"blank": {""},
	}

	from := Float(q, "from")
	require.NotNil(t, from)
	assert.Equal(t, 10.0, *from)

	to := Float(q, "to")
	require.NotNil(t, to)
	assert.Equal(t, 20.5, *to)

	for _, key := range []string{"nan", "inf", "word", "blank", "missing"} {
		assert.Nil(t, Float(q, key), key)
	}
}

func TestBoolAndList(t *testing.T) {
	q := url.Values{"discount": {"TRUE"}, "include": {"category, ,subCategory,"}}
	assert.True(t, Bool(q, "discount"))
	assert.False(t, Bool(url.Values{"discount": {"1"}}, "discount"))

	assert.Equal(t, []string{"category", "subCategory"}, List(q, "include"))
	assert.Nil(t, List(url.Values{}, "include"))
}
