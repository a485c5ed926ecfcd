package records

import (
	"github.com/tsawler/sheetzip/xlsx"
)

// InventoryHeaders is the header row of an inventory worksheet.
var InventoryHeaders = []string{
	"Kode Barang", "Nama Barang", "Qty", "Harga Jual", "Harga Beli", "Stock", "Stock Min", "Stock Max",
}

// InventorySheet is the sheet name used when exporting inventory.
const InventorySheet = "Inventory"

// InventoryItem is one stock-keeping item.
type InventoryItem struct {
	ItemCode  string `json:"itemCode" validate:"required"`
	ItemName  string `json:"itemName"`
	Quantity  int64  `json:"quantity" validate:"min=0"`
	SellPrice int64  `json:"sellPrice" validate:"min=0"`
	BuyPrice  int64  `json:"buyPrice" validate:"min=0"`
	Stock     int64  `json:"stock" validate:"min=0"`
	MinStock  int64  `json:"minStock" validate:"min=0"`
	MaxStock  int64  `json:"maxStock" validate:"min=0"`
}

// InventoryRows converts items to worksheet rows, headers first.
func InventoryRows(items []InventoryItem) [][]xlsx.Value {
	rows := make([][]xlsx.Value, 0, len(items)+1)
	rows = append(rows, headerRow(InventoryHeaders))
	for _, it := range items {
		rows = append(rows, []xlsx.Value{
			xlsx.String(it.ItemCode),
			xlsx.String(it.ItemName),
			xlsx.Int(it.Quantity),
			xlsx.Int(it.SellPrice),
			xlsx.Int(it.BuyPrice),
			xlsx.Int(it.Stock),
			xlsx.Int(it.MinStock),
			xlsx.Int(it.MaxStock),
		})
	}
	return rows
}

// ExportInventory builds an .xlsx workbook holding items.
func ExportInventory(items []InventoryItem) []byte {
	return xlsx.WriteWithOptions(InventoryRows(items), xlsx.WriteOptions{SheetName: InventorySheet})
}

// ParseInventory converts worksheet rows into items. Blank rows are
// ignored. The first remaining row must start with the item code and name
// headers, and fewer than two remaining rows gives an empty result. Rows without an item code are dropped. Items that fail
// validation are left out and reported as RowErrors joined into the
// returned error, alongside the items that passed.
func ParseInventory(rows [][]string) ([]InventoryItem, error) {
	header, body, numbers, ok := sheetRows(rows)
	if !ok {
		return nil, nil
	}
	if err := checkHeaders(header, InventoryHeaders[:2]); err != nil {
		return nil, err
	}

	var items []InventoryItem
	var kept []int
	for i, row := range body {
		it := InventoryItem{
			ItemCode:  column(row, 0),
			ItemName:  column(row, 1),
			Quantity:  parseInt(column(row, 2)),
			SellPrice: parseInt(column(row, 3)),
			BuyPrice:  parseInt(column(row, 4)),
			Stock:     parseInt(column(row, 5)),
			MinStock:  parseInt(column(row, 6)),
			MaxStock:  parseInt(column(row, 7)),
		}
		if it.ItemCode == "" {
			continue
		}
		items = append(items, it)
		kept = append(kept, numbers[i])
	}
	return validateAll(items, kept)
}

// ImportInventory reads items from an .xlsx workbook. It returns
// ErrNoRows when the workbook holds no importable item.
func ImportInventory(data []byte, opts xlsx.ReadOptions) ([]InventoryItem, error) {
	rows, err := decode(data, opts)
	if err != nil {
		return nil, err
	}
	items, err := ParseInventory(rows)
	if len(items) == 0 && err == nil {
		return nil, ErrNoRows
	}
	return items, err
}

func headerRow(headers []string) []xlsx.Value {
	row := make([]xlsx.Value, len(headers))
	for i, h := range headers {
		row[i] = xlsx.String(h)
	}
	return row
}
