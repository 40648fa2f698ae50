package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pointsolution/docbooking/internal/upstream"
)

var exportHeaders = []string{
	"Booking ID", "Service", "Customer", "Email", "Phone",
	"Amount", "Status", "Date", "Payment Method",
}

// ExportBookings renders the currently filtered booking list as a
// spreadsheet, one row per booking, and returns the file contents plus a
// dated filename.
func (s *AdminService) ExportBookings(ctx context.Context, sessionID string, filters upstream.BookingFilters) ([]byte, string, error) {
	list, err := s.ListBookings(ctx, sessionID, filters)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	for row, b := range list.Bookings {
		values := []any{
			b.BookingID,
			b.ServiceName,
			b.UserDetails.FullName,
			b.UserDetails.Email,
			b.UserDetails.Phone,
			b.ServiceFee,
			string(b.Status),
			b.CreatedAt.Format("02 Jan 2006"),
			b.PaymentMethod,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write export: %w", err)
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
