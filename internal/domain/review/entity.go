package review

import (
	"time"
)

// Review 评论实体
// 每个(图书,用户)只有一条评论,重复提交覆盖content和rating
type Review struct {
	ID        string
	BookID    string
	UserID    string
	Content   string
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Date 创建日期(YYYY-MM-DD, UTC)
func (r *Review) Date() string {
	return r.CreatedAt.UTC().Format(time.DateOnly)
}

// Summary 一本书的评分聚合结果
type Summary struct {
	Average float64
	Count   int64
}
