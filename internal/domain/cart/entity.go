package cart

import (
	"time"
)

// Item 购物车条目
type Item struct {
	ProductID string // 图书ID
	Quantity  int
}

// Cart 购物车实体,每个用户最多一个
type Cart struct {
	ID        string
	UserID    string
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart 创建购物车,初始条目按Merge规则写入
func NewCart(userID string, items []Item) *Cart {
	now := time.Now()
	c := &Cart{
		UserID:    userID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Merge(items)
	return c
}

// Merge 合并客户端提交的条目
// 规则:
// 1. 已有商品:数量替换为提交的数量,结果<=0时移除该商品
// 2. 新商品:数量>0时追加一次,同一次提交中重复出现的商品按第1条处理
func (c *Cart) Merge(items []Item) {
	for _, in := range items {
		idx := c.indexOf(in.ProductID)
		switch {
		case idx >= 0 && in.Quantity <= 0:
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		case idx >= 0:
			c.Items[idx].Quantity = in.Quantity
		case in.Quantity > 0:
			c.Items = append(c.Items, in)
		}
	}
	c.UpdatedAt = time.Now()
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.UpdatedAt = time.Now()
}

// ProductIDs 购物车中的商品ID(保持顺序)
func (c *Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

func (c *Cart) indexOf(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
