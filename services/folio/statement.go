package folio

import (
	"fmt"
	"time"

	"hotelops/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	statementSheet = "Folio"
	summarySheet   = "Summary"
	dateLayout     = "2006-01-02"
)

// StatementLine is one printable row of a folio statement.
type StatementLine struct {
	Date        time.Time
	Description string
	Reference   string
	Charge      decimal.Decimal
	Credit      decimal.Decimal
}

// StatementLines itemises a computed folio. Ledger charges are taken from the
// deduplicated list so the lines add up to the summary's gross total.
func StatementLines(f *models.Folio) []StatementLine {
	b := f.Booking
	nights := decimal.NewFromInt(int64(f.Summary.Nights))
	var lines []StatementLine

	for _, room := range b.Rooms {
		label := roomLabel(room)
		lines = append(lines, StatementLine{
			Date:        b.CheckIn,
			Description: fmt.Sprintf("%s, %d night(s) @ %s", label, f.Summary.Nights, room.Price.Decimal().StringFixed(2)),
			Charge:      room.Price.Decimal().Mul(nights),
		})
		if room.MealPlanPrice != 0 {
			lines = append(lines, StatementLine{
				Date:        b.CheckIn,
				Description: fmt.Sprintf("Meal plan %s (%s)", room.MealPlan, label),
				Charge:      room.MealPlanPrice.Decimal().Mul(nights),
			})
		}
	}
	for _, addOn := range b.AddOns {
		lines = append(lines, StatementLine{
			Date:        b.CheckIn,
			Description: fmt.Sprintf("%s x %s", addOn.Name, addOn.Quantity.Decimal().String()),
			Charge:      addOn.Price.Decimal().Mul(addOn.Quantity.Decimal()),
		})
	}
	for _, order := range f.FoodOrders {
		lines = append(lines, StatementLine{
			Date:        order.CreatedAt,
			Description: "Food Order #" + order.OrderNumber,
			Reference:   OrderReferencePrefix + order.OrderNumber,
			Charge:      order.TotalAmount.Decimal(),
		})
	}
	for _, svc := range f.GuestServices {
		desc := svc.Description
		if desc == "" {
			desc = serviceLabel(svc.ServiceType)
		}
		lines = append(lines, StatementLine{
			Date:        svc.CreatedAt,
			Description: desc,
			Reference:   ServiceReferencePrefix + ServiceReferenceSuffix(svc.ID),
			Charge:      NormalizeServiceAmount(svc),
		})
	}
	for _, tx := range f.UniqueTransactions {
		line := StatementLine{Date: tx.Date, Description: tx.Description, Reference: tx.Reference}
		if tx.IsCharge() {
			line.Charge = tx.Amount.Decimal()
		} else {
			line.Credit = tx.Amount.Decimal()
		}
		lines = append(lines, line)
	}
	if b.Discount != nil && b.Discount.Amount != 0 {
		desc := "Discount"
		if b.Discount.Reason != "" {
			desc += ": " + b.Discount.Reason
		}
		lines = append(lines, StatementLine{Date: b.CheckOut, Description: desc, Credit: b.Discount.Amount.Decimal()})
	}
	return lines
}

func roomLabel(room models.BookedRoom) string {
	roomType := room.AllocatedRoomType
	if roomType == "" {
		roomType = room.Type
	}
	label := "Room"
	if room.RoomNumber != "" {
		label += " " + room.RoomNumber
	}
	if roomType != "" {
		label += " (" + roomType + ")"
	}
	return label
}

// ExportStatement renders the folio as an xlsx workbook with an itemised sheet
// and a summary sheet.
func ExportStatement(f *models.Folio) ([]byte, error) {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", statementSheet); err != nil {
		return nil, fmt.Errorf("statement: rename sheet: %w", err)
	}
	if _, err := x.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("statement: create summary sheet: %w", err)
	}
	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("statement: style: %w", err)
	}

	b := f.Booking
	header := [][]interface{}{
		{"Guest", b.GuestName},
		{"Booking", b.ID},
		{"Check-in", formatDate(b.CheckIn)},
		{"Check-out", formatDate(b.CheckOut)},
		{"Nights", f.Summary.Nights},
		{"Generated", f.GeneratedAt.Format(time.RFC3339)},
	}
	row := 1
	for _, h := range header {
		if err := setRow(x, statementSheet, row, h); err != nil {
			return nil, err
		}
		row++
	}

	row++
	if err := setRow(x, statementSheet, row, []interface{}{"Date", "Description", "Reference", "Charge", "Credit"}); err != nil {
		return nil, err
	}
	if err := x.SetCellStyle(statementSheet, cellName(1, row), cellName(5, row), bold); err != nil {
		return nil, fmt.Errorf("statement: header style: %w", err)
	}
	row++
	for _, line := range StatementLines(f) {
		values := []interface{}{formatDate(line.Date), line.Description, line.Reference, money(line.Charge), money(line.Credit)}
		if err := setRow(x, statementSheet, row, values); err != nil {
			return nil, err
		}
		row++
	}
	if err := x.SetColWidth(statementSheet, "B", "B", 48); err != nil {
		return nil, fmt.Errorf("statement: column width: %w", err)
	}

	s := f.Summary
	summary := [][]interface{}{
		{"Room total", s.RoomTotal.StringFixed(2)},
		{"Meal plans", s.MealPlanTotal.StringFixed(2)},
		{"Food & beverage", s.FoodTotal.StringFixed(2)},
		{"Guest services", s.ServiceTotal.StringFixed(2)},
		{"Add-ons", s.AddOnsTotal.StringFixed(2)},
		{"Other charges", s.OtherCharges.StringFixed(2)},
		{"Gross total", s.GrossTotal.StringFixed(2)},
		{"Discount", s.DiscountAmount.StringFixed(2)},
		{"Grand total", s.GrandTotal.StringFixed(2)},
		{"Paid", s.PaidAmount.StringFixed(2)},
		{"Balance", s.Balance.StringFixed(2)},
	}
	for i, r := range summary {
		if err := setRow(x, summarySheet, i+1, r); err != nil {
			return nil, err
		}
	}
	if err := x.SetCellStyle(summarySheet, "A9", "B9", bold); err != nil {
		return nil, fmt.Errorf("statement: total style: %w", err)
	}
	if err := x.SetCellStyle(summarySheet, "A11", "B11", bold); err != nil {
		return nil, fmt.Errorf("statement: balance style: %w", err)
	}

	buf, err := x.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("statement: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// StatementFileName is the download name for a booking's statement.
func StatementFileName(bookingID string) string {
	return "folio-" + bookingID + ".xlsx"
}

func setRow(x *excelize.File, sheet string, row int, values []interface{}) error {
	if err := x.SetSheetRow(sheet, cellName(1, row), &values); err != nil {
		return fmt.Errorf("statement: write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func money(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
