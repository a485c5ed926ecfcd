package records

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/sheetzip/xlsx"
)

// CustomerHeaders is the header row of a customer worksheet.
var CustomerHeaders = []string{
	"Nama", "No HP", "Jumlah Transaksi", "Diskon (Rp)", "Diskon (%)", "Diskon Berlaku Untuk", "Riwayat Kendaraan",
}

// CustomerSheet is the sheet name used when exporting customers.
const CustomerSheet = "Pelanggan"

// DiscountType says what a customer discount applies to.
type DiscountType string

const (
	DiscountGoods    DiscountType = "goods"
	DiscountServices DiscountType = "services"
)

// Label returns the worksheet label: "Barang" for goods and "Jasa" otherwise.
func (d DiscountType) Label() string {
	if d == DiscountGoods {
		return "Barang"
	}
	return "Jasa"
}

// ParseDiscountType maps a worksheet label to a DiscountType. "Barang" in
// any case selects goods; every other value selects services.
func ParseDiscountType(label string) DiscountType {
	fold := cases.Fold()
	if fold.String(strings.TrimSpace(label)) == fold.String("barang") {
		return DiscountGoods
	}
	return DiscountServices
}

// Vehicle is one entry of a customer's vehicle history.
type Vehicle struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

func (v Vehicle) String() string {
	return fmt.Sprintf("%s %s (%s)", v.Brand, v.Model, v.Plate)
}

// Customer is one customer record.
type Customer struct {
	Name               string       `json:"name" validate:"required"`
	Phone              string       `json:"phone" validate:"required"`
	TransactionCount   int64        `json:"transactionCount" validate:"min=0"`
	DiscountAmount     int64        `json:"discountAmount" validate:"min=0"`
	DiscountPercentage int64        `json:"discountPercentage" validate:"min=0,max=100"`
	DiscountType       DiscountType `json:"discountType" validate:"oneof=goods services"`
	VehicleHistory     []Vehicle    `json:"vehicleHistory"`
}

// CustomerRows converts customers to worksheet rows, headers first.
// Vehicle history is written as "brand model (plate)" entries joined by "; ".
func CustomerRows(customers []Customer) [][]xlsx.Value {
	rows := make([][]xlsx.Value, 0, len(customers)+1)
	rows = append(rows, headerRow(CustomerHeaders))
	for _, c := range customers {
		rows = append(rows, []xlsx.Value{
			xlsx.String(c.Name),
			xlsx.String(c.Phone),
			xlsx.Int(c.TransactionCount),
			xlsx.Int(c.DiscountAmount),
			xlsx.Int(c.DiscountPercentage),
			xlsx.String(c.DiscountType.Label()),
			xlsx.String(vehicleHistory(c.VehicleHistory)),
		})
	}
	return rows
}

func vehicleHistory(vehicles []Vehicle) string {
	parts := make([]string, len(vehicles))
	for i, v := range vehicles {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}

// ExportCustomers builds an .xlsx workbook holding customers.
func ExportCustomers(customers []Customer) []byte {
	return xlsx.WriteWithOptions(CustomerRows(customers), xlsx.WriteOptions{SheetName: CustomerSheet})
}

// ParseCustomers converts worksheet rows into customers. Blank rows are
// ignored and the first remaining row must start with the name and phone headers. Rows without a name or a
// phone number are dropped, and vehicle history is not read back.
// Validation failures are handled as in ParseInventory.
func ParseCustomers(rows [][]string) ([]Customer, error) {
	header, body, numbers, ok := sheetRows(rows)
	if !ok {
		return nil, nil
	}
	if err := checkHeaders(header, CustomerHeaders[:2]); err != nil {
		return nil, err
	}

	var customers []Customer
	var kept []int
	for i, row := range body {
		c := Customer{
			Name:               column(row, 0),
			Phone:              column(row, 1),
			TransactionCount:   parseInt(column(row, 2)),
			DiscountAmount:     parseInt(column(row, 3)),
			DiscountPercentage: parseInt(column(row, 4)),
			DiscountType:       ParseDiscountType(column(row, 5)),
			VehicleHistory:     []Vehicle{},
		}
		if c.Name == "" || c.Phone == "" {
			continue
		}
		customers = append(customers, c)
		kept = append(kept, numbers[i])
	}
	return validateAll(customers, kept)
}

// ImportCustomers reads customers from an .xlsx workbook. It returns
// ErrNoRows when the workbook holds no importable customer.
func ImportCustomers(data []byte, opts xlsx.ReadOptions) ([]Customer, error) {
	rows, err := decode(data, opts)
	if err != nil {
		return nil, err
	}
	customers, err := ParseCustomers(rows)
	if len(customers) == 0 && err == nil {
		return nil, ErrNoRows
	}
	return customers, err
}
