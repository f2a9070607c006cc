package accounts

import "github.com/purplebook-dev/purplebook/internal/model"

// DefaultChart returns the default chart of accounts for a business kind.
func DefaultChart(kind string) []model.Account {
	switch kind {
	case "farm":
		return farmChart()
	default:
		return farmChart()
	}
}

func farmChart() []model.Account {
	return []model.Account{
		{Name: "Kas", Category: model.CategoryAsset, Description: "Cash on hand"},
		{Name: "Piutang Usaha", Category: model.CategoryAsset, Description: "Accounts receivable"},
		{Name: "Persediaan Barang", Category: model.CategoryAsset, Description: "Stock on hand"},
		{Name: "Peralatan", Category: model.CategoryAsset, Description: "Farm equipment"},
		{Name: "Utang Usaha", Category: model.CategoryLiability, Description: "Accounts payable"},
		{Name: "Modal", Category: model.CategoryEquity, Description: "Owner's capital"},
		{Name: "Tambahan Modal", Category: model.CategoryEquity, Description: "Additional paid-in capital"},
		{Name: "Prive", Category: model.CategoryDraw, Description: "Owner withdrawals"},
		{Name: "Pendapatan Penjualan", Category: model.CategoryRevenue, Description: "Harvest sales"},
		{Name: "Beban Sewa", Category: model.CategoryExpense, Description: "Land and equipment rent"},
		{Name: "Beban Persediaan", Category: model.CategoryExpense, Description: "Stock used or sold"},
		{Name: "Beban Upah", Category: model.CategoryExpense, Description: "Wages"},
	}
}
