package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// FilterOptions holds the enumerations that populate the library filter
// dropdowns. Slices are never nil; a dimension whose load failed is simply
// empty and the rest of the UI keeps working.
type FilterOptions struct {
	Categories []Category
	DocTypes   []DocumentType
	Subjects   []Subject
}

// LoadFilterOptions fetches categories, document types, and subjects
// concurrently. When categoryID is non-nil only that category's subjects are
// loaded. Each fetch fails independently: a failure yields an empty list for
// that dimension without blocking or erroring the others, and there is no
// retry beyond the next page visit.
func (c *Client) LoadFilterOptions(ctx context.Context, categoryID *int) FilterOptions {
	opts := FilterOptions{
		Categories: []Category{},
		DocTypes:   []DocumentType{},
		Subjects:   []Subject{},
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		var categories []Category
		if err := c.getJSON(ctx, "/all_category_level", nil, &categories); err == nil {
			opts.Categories = categories
		}
	}()
	go func() {
		defer wg.Done()
		var docTypes []DocumentType
		if err := c.getJSON(ctx, "/all_document_type", nil, &docTypes); err == nil {
			opts.DocTypes = docTypes
		}
	}()
	go func() {
		defer wg.Done()
		query := url.Values{}
		if categoryID != nil {
			query.Set("category_id", strconv.Itoa(*categoryID))
		}
		var subjects []Subject
		if err := c.getJSON(ctx, "/all_subjects", query, &subjects); err == nil {
			opts.Subjects = subjects
		}
	}()

	wg.Wait()
	return opts
}

// getJSON issues an unauthenticated-friendly GET and decodes a bare (non
// enveloped) JSON body.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
