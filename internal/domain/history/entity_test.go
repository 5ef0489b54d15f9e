package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_LastLocation(t *testing.T) {
	h := NewHistory("u1", "b1", "epubcfi(/6/2)", nil)

	h.Apply("", nil, false)
	assert.Equal(t, "epubcfi(/6/2)", h.LastLocation)

	h.Apply("epubcfi(/6/8)", nil, false)
	assert.Equal(t, "epubcfi(/6/8)", h.LastLocation)
}

func TestApply_AppendHighlights(t *testing.T) {
	h := NewHistory("u1", "b1", "", []Highlight{{"s1", "yellow"}})

	h.Apply("", []Highlight{{"s2", "green"}, {"s1", "blue"}}, false)

	assert.Equal(t, []Highlight{{"s1", "yellow"}, {"s2", "green"}, {"s1", "blue"}}, h.Highlights)
}

func TestApply_RemoveExactlyMatchingSelections(t *testing.T) {
	h := NewHistory("u1", "b1", "", []Highlight{
		{"s1", "yellow"},
		{"s2", "green"},
		{"s3", "pink"},
		{"s1", "blue"},
	})

	// fill不参与匹配
	h.Apply("", []Highlight{{"s1", "red"}, {"s9", "red"}}, true)

	assert.Equal(t, []Highlight{{"s2", "green"}, {"s3", "pink"}}, h.Highlights)
}

func TestApply_RemoveWithoutHighlightsIsNoop(t *testing.T) {
	h := NewHistory("u1", "b1", "", []Highlight{{"s1", "yellow"}})

	h.Apply("", nil, true)

	assert.Equal(t, []Highlight{{"s1", "yellow"}}, h.Highlights)
}
