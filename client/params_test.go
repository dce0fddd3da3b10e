package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchParamsValuesOmitsZeroFields(t *testing.T) {
	p := SearchParams{Category: "GCE 'O' Levels", Page: 2, Size: 20}
	v := p.Values()

	assert.Equal(t, "GCE 'O' Levels", v.Get("category"))
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "20", v.Get("size"))
	assert.False(t, v.Has("subject"))
	assert.False(t, v.Has("doc_type"))
	assert.False(t, v.Has("keyword"))
	assert.False(t, v.Has("year"))
}

func TestSearchParamsValuesStripsZeroYear(t *testing.T) {
	p := SearchParams{Keyword: "chemistry", Year: 0, Page: 1}
	v := p.Values()

	assert.False(t, v.Has("year"), "year=0 is the legacy unset sentinel and must be omitted")

	p.Year = 2023
	assert.Equal(t, "2023", p.Values().Get("year"))
}

func TestParseSearchParamsRoundTrip(t *testing.T) {
	orig := SearchParams{
		Category: "GCE 'A' Levels",
		Subject:  "H2 Mathematics",
		DocType:  "Practice Papers",
		Keyword:  "vectors",
		Page:     3,
		Size:     50,
		Year:     2022,
	}
	got := ParseSearchParams(orig.Values())
	assert.Equal(t, orig, got)
}

func TestParseSearchParamsIgnoresBadNumbers(t *testing.T) {
	v := url.Values{}
	v.Set("page", "two")
	v.Set("size", "")
	v.Set("keyword", "math")

	p := ParseSearchParams(v)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, 0, p.Size)
	assert.Equal(t, "math", p.Keyword)
}

func TestWithParamPreservesOtherFields(t *testing.T) {
	base := url.Values{}
	base.Set("category", "GCE 'O' Levels")
	base.Set("subject", "Mathematics")
	base.Set("page", "4")

	got := WithParam(base, "keyword", "trigonometry")
	assert.Equal(t, "trigonometry", got.Get("keyword"))
	assert.Equal(t, "GCE 'O' Levels", got.Get("category"))
	assert.Equal(t, "Mathematics", got.Get("subject"))
	assert.Equal(t, "4", got.Get("page"))

	// The input is never mutated.
	assert.False(t, base.Has("keyword"))
}

func TestWithParamEmptyValueRemovesField(t *testing.T) {
	base := url.Values{}
	base.Set("category", "GCE 'O' Levels")
	base.Set("keyword", "algebra")

	got := WithParam(base, "keyword", "")
	assert.False(t, got.Has("keyword"))
	assert.Equal(t, "GCE 'O' Levels", got.Get("category"))
}
