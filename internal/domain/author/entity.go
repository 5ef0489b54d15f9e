package author

import (
	"time"

	"github.com/xiebiao/ebookstore/pkg/slug"
)

// Author 作者实体
// Slug由姓名和ID生成（slug(name + " " + id)），保证唯一
type Author struct {
	ID          string
	UserID      string
	Name        string
	About       string
	Slug        string
	SocialLinks []string
	Books       []string // 已发布图书ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAuthor 创建作者（工厂方法）
// id需要预先生成，因为slug依赖id
func NewAuthor(id, userID, name, about string, socialLinks []string) *Author {
	now := time.Now()
	if socialLinks == nil {
		socialLinks = []string{}
	}
	return &Author{
		ID:          id,
		UserID:      userID,
		Name:        name,
		About:       about,
		Slug:        slug.Generate(name, id),
		SocialLinks: socialLinks,
		Books:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateDetails 更新作者资料
// slug在创建时确定，改名不影响已分享的链接
func (a *Author) UpdateDetails(name, about string, socialLinks []string) {
	a.Name = name
	a.About = about
	if socialLinks == nil {
		socialLinks = []string{}
	}
	a.SocialLinks = socialLinks
	a.UpdatedAt = time.Now()
}
