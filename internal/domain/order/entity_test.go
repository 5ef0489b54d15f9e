package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookIDs(t *testing.T) {
	o := &Order{Items: []Item{{BookID: "b2"}, {BookID: "b1"}, {BookID: "b2"}}}
	assert.Equal(t, []string{"b2", "b1"}, o.BookIDs())
}

func TestBookIDsOf(t *testing.T) {
	orders := []*Order{
		{Items: []Item{{BookID: "b1"}, {BookID: "b2"}}},
		{Items: []Item{{BookID: "b2"}, {BookID: "b3"}}},
		{},
	}
	assert.Equal(t, []string{"b1", "b2", "b3"}, BookIDsOf(orders))
	assert.Empty(t, BookIDsOf(nil))
}
