package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationHelperClamps(t *testing.T) {
	p := NewPaginationHelper(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Equal(t, 0, p.Offset)

	p = NewPaginationHelper(-3, 500)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.Size)

	p = NewPaginationHelper(3, 20)
	assert.Equal(t, 40, p.Offset)
}

func TestBuildResultPageMetadata(t *testing.T) {
	p := NewPaginationHelper(2, 20)
	res := p.BuildResult([]string{"a", "b"}, 38)

	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 20, res.Size)
	assert.Equal(t, 38, res.Total)
}

func TestBuildResultEmptyTotal(t *testing.T) {
	p := NewPaginationHelper(1, 10)
	res := p.BuildResult([]string{}, 0)
	assert.Equal(t, 0, res.Pages)
	assert.Equal(t, 0, res.Total)
}
