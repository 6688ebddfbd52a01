package services

import (
	"fmt"
	"strings"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"OrderID", "CreatedAt", "Status", "Customer", "PaymentMethod", "Paid",
	"Items", "Subtotal", "DeliveryFee", "Total", "Notes",
}

// ExportRestaurantOrders builds a workbook with one row per order of the restaurant.
// Amounts are written in major units.
func (s *OrderService) ExportRestaurantOrders(actor entity.Actor, restID uint, status entity.OrderStatus) (*xlsx.File, error) {
	if status != "" && !status.Valid() {
		return nil, badStatus(status)
	}
	if err := s.ensureRestaurantAccess(actor, restID); err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListForExport(restID, status)
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt64(int64(o.ID))
		row.AddCell().SetString(o.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetString(o.User.Name)
		row.AddCell().SetString(string(o.PaymentMethod))
		row.AddCell().SetBool(o.IsPaid)
		row.AddCell().SetString(describeItems(o.Items))
		row.AddCell().SetFloat(majorUnits(o.Subtotal))
		row.AddCell().SetFloat(majorUnits(o.DeliveryFee))
		row.AddCell().SetFloat(majorUnits(o.Total))
		row.AddCell().SetString(o.Notes)
	}
	return file, nil
}

func describeItems(items []entity.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		name := fmt.Sprintf("#%d", it.ProductID)
		if it.Product != nil {
			name = it.Product.Name
		}
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, name))
	}
	return strings.Join(parts, ", ")
}

func majorUnits(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
