package client

import (
	"net/url"
	"strconv"
)

// SearchParams is the flat set of optional library filters. The zero value
// of a field means "no filter on that dimension", never "filter on the empty
// value"; zero fields are omitted from the encoded query entirely.
type SearchParams struct {
	Category           string
	Subject            string
	DocType            string
	Keyword            string
	Page               int
	Size               int
	Year               int
	SortedByUploadDate string
}

// Values encodes the params as URL query values. Year 0 is the legacy form
// default for "unset" and is stripped here, before any request is built.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	setNonEmpty := func(name, value string) {
		if value != "" {
			v.Set(name, value)
		}
	}
	setNonEmpty("category", p.Category)
	setNonEmpty("subject", p.Subject)
	setNonEmpty("doc_type", p.DocType)
	setNonEmpty("keyword", p.Keyword)
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	if p.Year > 0 {
		v.Set("year", strconv.Itoa(p.Year))
	}
	setNonEmpty("sorted_by_upload_date", p.SortedByUploadDate)
	return v
}

// ParseSearchParams reads filters back out of URL query values. Only page,
// size, and year are coerced to integers; unparseable numbers drop to zero
// and other values pass through untouched for the backend to judge.
func ParseSearchParams(v url.Values) SearchParams {
	page, _ := strconv.Atoi(v.Get("page"))
	size, _ := strconv.Atoi(v.Get("size"))
	year, _ := strconv.Atoi(v.Get("year"))
	return SearchParams{
		Category:           v.Get("category"),
		Subject:            v.Get("subject"),
		DocType:            v.Get("doc_type"),
		Keyword:            v.Get("keyword"),
		Page:               page,
		Size:               size,
		Year:               year,
		SortedByUploadDate: v.Get("sorted_by_upload_date"),
	}
}

// WithParam returns a copy of query with one field set (or removed when
// value is empty). All other fields are preserved as-is, so a single filter
// change never clobbers the rest of the URL state.
func WithParam(query url.Values, name, value string) url.Values {
	out := url.Values{}
	for k, vs := range query {
		out[k] = append([]string(nil), vs...)
	}
	if value == "" {
		out.Del(name)
	} else {
		out.Set(name, value)
	}
	return out
}
