package dto

import (
	"github.com/xiebiao/ebookstore/internal/domain/history"
)

// HighlightDTO 高亮
type HighlightDTO struct {
	Selection string `json:"selection" binding:"required" example:"epubcfi(/6/4!/4/2,/1:0,/1:12)"`
	Fill      string `json:"fill" example:"yellow"`
}

// UpdateHistoryRequest 更新阅读记录
type UpdateHistoryRequest struct {
	Book         string         `json:"book" binding:"required" example:"6560f1c2a9b3e4d5f6a7b8c9"`
	LastLocation string         `json:"last_location" example:"epubcfi(/6/4)"`
	Highlights   []HighlightDTO `json:"highlights" binding:"omitempty,dive"`
	Remove       bool           `json:"remove"`
}

// ToHighlights HTTP请求 → 领域对象
func (r UpdateHistoryRequest) ToHighlights() []history.Highlight {
	out := make([]history.Highlight, 0, len(r.Highlights))
	for _, h := range r.Highlights {
		out = append(out, history.Highlight{Selection: h.Selection, Fill: h.Fill})
	}
	return out
}

// HistoryBody 阅读记录
type HistoryBody struct {
	LastLocation string         `json:"last_location"`
	Highlights   []HighlightDTO `json:"highlights"`
}

// HistoryResponse 查询阅读记录响应
type HistoryResponse struct {
	History HistoryBody `json:"history"`
}

// NewHistoryResponse 领域实体 → HTTP响应
func NewHistoryResponse(h *history.History) HistoryResponse {
	highlights := make([]HighlightDTO, 0, len(h.Highlights))
	for _, hl := range h.Highlights {
		highlights = append(highlights, HighlightDTO{Selection: hl.Selection, Fill: hl.Fill})
	}
	return HistoryResponse{History: HistoryBody{LastLocation: h.LastLocation, Highlights: highlights}}
}
