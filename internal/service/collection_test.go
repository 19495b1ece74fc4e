package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/internship-admin/internal/models"
)

func TestCollectionDiscardsSupersededFetch(t *testing.T) {
	c := NewCollection[models.Department]()
	first := c.Begin()
	second := c.Begin()

	assert.True(t, c.Commit(second, []models.Department{{ID: 2, Name: "new"}}))
	assert.False(t, c.Commit(first, []models.Department{{ID: 1, Name: "old"}}))
	assert.Equal(t, []models.Department{{ID: 2, Name: "new"}}, c.Items())
}

func TestCollectionWriteInvalidatesInflightFetch(t *testing.T) {
	c := NewCollection[models.Department]()
	c.Commit(c.Begin(), []models.Department{{ID: 1, Name: "a"}})

	ticket := c.Begin()
	c.Replace(models.Department{ID: 1, Name: "patched"})
	assert.False(t, c.Commit(ticket, []models.Department{{ID: 1, Name: "a"}}))
	got, _ := c.Find(1)
	assert.Equal(t, "patched", got.Name)
}

func TestCollectionRemoveExactlyOne(t *testing.T) {
	c := NewCollection[models.Department]()
	c.Commit(c.Begin(), []models.Department{{ID: 1}, {ID: 2}, {ID: 3}})

	assert.True(t, c.Remove(2))
	assert.Equal(t, []models.Department{{ID: 1}, {ID: 3}}, c.Items())
	assert.False(t, c.Remove(2))
	assert.False(t, c.Replace(models.Department{ID: 9}))
	assert.Equal(t, 2, c.Len())
}

func TestCollectionAppendAndReset(t *testing.T) {
	c := NewCollection[models.Department]()
	c.Append(models.Department{ID: 1, Name: "a"})
	c.Append(models.Department{ID: 1, Name: "b"})
	assert.Equal(t, 1, c.Len())

	ticket := c.Begin()
	c.Reset()
	assert.False(t, c.Loaded())
	assert.False(t, c.Commit(ticket, []models.Department{{ID: 5}}))
	assert.Empty(t, c.Items())
}

func TestMatchesSearch(t *testing.T) {
	assert.True(t, matchesSearch("jo", "John Doe"))
	assert.True(t, matchesSearch("DOE", "John Doe"))
	assert.True(t, matchesSearch("", "anything"))
	assert.True(t, matchesSearch("21-cs", "Jane", "2021-CS-01"))
	assert.False(t, matchesSearch("xyz", "John Doe", "2021"))
}

func TestCollectionFailAndInvalidate(t *testing.T) {
	c := NewCollection[models.Department]()
	require.True(t, c.Commit(c.Begin(), []models.Department{{ID: 1}}))
	assert.True(t, c.Loaded())

	c.Invalidate()
	assert.False(t, c.Loaded())
	assert.Equal(t, 1, c.Len())

	stale := c.Begin()
	current := c.Begin()
	assert.False(t, c.Fail(stale))
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Fail(current))
	assert.Zero(t, c.Len())
	assert.False(t, c.Loaded())
}
