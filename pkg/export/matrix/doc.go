// Package matrix lays out items as cell assignments on a main sheet and
// on auxiliary sheets, one per relation exported with the sheet mode.
//
// Row 1 of every sheet is the header; data starts at row 2. Columns are
// 1-based. A single item may span several rows when it carries relations
// exported with the lines mode; the item's other values repeat on every
// one of those rows.
//
//	descs := resolver.New(reg).Resolve(userType, nil, items)
//	m := matrix.Build(items, descs)
//	for _, row := range m.Main.Rows() {
//		...
//	}
package matrix
