package sales

// 定价规则
// 设计说明:
// 1. 促销金额先减,百分比折扣后乘,顺序是规范性的:
//    先折扣再减促销会得到不同(且错误)的结果
// 2. 促销金额收敛到[0, 基价],折扣收敛到[0, 100],收敛而非报错
//    (这两处是面向录入的便利设计,不属于校验失败)
// 3. 只有LKS分类参与促销/折扣,其他分类静默忽略这两个字段,
//    按基价全额计价(批量套折扣的入口只作用于LKS,非LKS不报错)
// 4. 金额为int64卢比,除法截断

// CategoryLKS 参与促销/折扣的分类编码快照值
const CategoryLKS = "LKS"

// EffectivePrice 计算折后单价
// 公式: max(0, (base − promotion) × (100 − discountPercent) / 100)
func EffectivePrice(basePrice, promotion int64, discountPercent int) int64 {
	if basePrice < 0 {
		basePrice = 0
	}

	// 促销金额收敛到[0, 基价]
	if promotion < 0 {
		promotion = 0
	}
	if promotion > basePrice {
		promotion = basePrice
	}

	// 折扣收敛到[0, 100]
	if discountPercent < 0 {
		discountPercent = 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}

	price := (basePrice - promotion) * int64(100-discountPercent) / 100
	if price < 0 {
		price = 0
	}
	return price
}

// EffectivePrice 明细的折后单价
// 非LKS分类忽略促销与折扣,按基价快照计价
func (i Item) EffectivePrice() int64 {
	if i.CategoryCode != CategoryLKS {
		if i.BasePrice < 0 {
			return 0
		}
		return i.BasePrice
	}
	return EffectivePrice(i.BasePrice, i.Promotion, i.Discount)
}

// Subtotal 明细小计 = 折后单价 × 数量
func (i Item) Subtotal() int64 {
	return i.EffectivePrice() * int64(i.Quantity)
}

// TransactionTotal 销售单总额 = Σ明细小计 + Σ运费
func TransactionTotal(items []Item, shippings []Shipping) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	for _, s := range shippings {
		total += s.TotalAmount
	}
	return total
}

// Total 销售单总额
func (t *Transaction) Total() int64 {
	return TransactionTotal(t.Items, t.Shippings)
}
