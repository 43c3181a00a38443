package catalog

// GroupProductsByBase partitions products by base SKU and emits one
// representative per partition. The row whose SKU equals the base is
// preferred as representative, otherwise the first variant seen. The
// representative is in stock when any variant is, carries the minimum
// variant price, and has the color suffix stripped from its name.
// Output order follows first appearance of each base SKU; callers should
// only rely on each base appearing exactly once.
func GroupProductsByBase(products []Product) []Product {
	byBase := make(map[string][]Product)
	order := make([]string, 0, len(products))
	for _, p := range products {
		base := BaseSKU(p)
		if _, seen := byBase[base]; !seen {
			order = append(order, base)
		}
		byBase[base] = append(byBase[base], p)
	}

	result := make([]Product, 0, len(order))
	for _, base := range order {
		variants := byBase[base]

		main := variants[0]
		for _, v := range variants {
			if v.ID == base {
				main = v
				break
			}
		}

		rep := main
		rep.ID = base
		rep.Name = BaseProductName(main)
		rep.InStock = false
		rep.Price = variants[0].Price
		for _, v := range variants {
			rep.InStock = rep.InStock || v.InStock
			if v.Price < rep.Price {
				rep.Price = v.Price
			}
		}
		result = append(result, rep)
	}
	return result
}
