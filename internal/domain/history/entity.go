package history

import (
	"time"
)

// Highlight 阅读高亮,Selection是选区(EPUB CFI),Fill是颜色
type Highlight struct {
	Selection string
	Fill      string
}

// History 阅读记录,每个(读者,图书)一条
type History struct {
	ID           string
	ReaderID     string
	BookID       string
	LastLocation string
	Highlights   []Highlight
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewHistory 创建阅读记录
func NewHistory(readerID, bookID, lastLocation string, highlights []Highlight) *History {
	now := time.Now()
	if highlights == nil {
		highlights = []Highlight{}
	}
	return &History{
		ReaderID:     readerID,
		BookID:       bookID,
		LastLocation: lastLocation,
		Highlights:   highlights,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Apply 应用客户端提交的更新
// 1. lastLocation非空时覆盖
// 2. remove=false:追加highlights
// 3. remove=true:移除selection与任一提交项相同的高亮,其余保留
func (h *History) Apply(lastLocation string, highlights []Highlight, remove bool) {
	if lastLocation != "" {
		h.LastLocation = lastLocation
	}

	if len(highlights) > 0 {
		if remove {
			drop := make(map[string]struct{}, len(highlights))
			for _, hl := range highlights {
				drop[hl.Selection] = struct{}{}
			}
			kept := make([]Highlight, 0, len(h.Highlights))
			for _, hl := range h.Highlights {
				if _, ok := drop[hl.Selection]; !ok {
					kept = append(kept, hl)
				}
			}
			h.Highlights = kept
		} else {
			h.Highlights = append(h.Highlights, highlights...)
		}
	}

	h.UpdatedAt = time.Now()
}
