package order

import (
	"time"
)

// Order 订单实体(聚合根)
// 订单由支付流程(Stripe checkout webhook)创建,本服务只读
// 金额单位均为分
type Order struct {
	ID               string
	UserID           string
	StripeCustomerID string
	PaymentID        string
	TotalAmount      int64
	PaymentStatus    string
	Items            []Item
	CreatedAt        time.Time
}

// Item 订单明细项
// Price记录下单时的单价(历史价格快照)
type Item struct {
	BookID     string
	Price      int64
	Qty        int
	TotalPrice int64
}

// BookIDs 明细中的图书ID,去重并保持顺序
func (o *Order) BookIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	ids := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.BookID]; ok {
			continue
		}
		seen[it.BookID] = struct{}{}
		ids = append(ids, it.BookID)
	}
	return ids
}

// BookIDsOf 多个订单的图书ID合集(去重)
func BookIDsOf(orders []*Order) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, o := range orders {
		for _, id := range o.BookIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
