package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
)

// DocumentService renders booking confirmations as PDFs.
type DocumentService struct {
	Pipeline *PipelineService
}

func NewDocumentService(pipeline *PipelineService) *DocumentService {
	return &DocumentService{Pipeline: pipeline}
}

// GenerateBookingConfirmationPDF builds a confirmation document for a
// booking: holiday summary, passenger list, one table per sector type
// that has rows, and the money summary.
func (s *DocumentService) GenerateBookingConfirmationPDF(ctx context.Context, bookingID int) ([]byte, error) {
	detail, err := s.Pipeline.GetBookingDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Booking Confirmation", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated on %s", time.Now().Format("02 Jan 2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	b := detail.Booking
	ref := "-"
	if b.BookingReference != nil {
		ref = *b.BookingReference
	}

	// Booking summary box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(190, 8, "Holiday Details", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	summaryRow(pdf, "Booking Reference", ref)
	summaryRow(pdf, "Holiday Type", b.HolidayType)
	summaryRow(pdf, "Party", fmt.Sprintf("%d adults, %d children, %d infants", b.Adults, b.Children, b.Infants))
	summaryRow(pdf, "Nights", fmt.Sprintf("%d", b.NoOfNights))
	if b.CheckInDateTime != nil {
		summaryRow(pdf, "Check-in", b.CheckInDateTime.Format("02 Jan 2006"))
	}
	summaryRow(pdf, "Sales Price", detail.Booking.SalesPrice.StringFixed(2))
	pdf.Ln(4)

	if len(detail.Passengers) > 0 {
		sectionHeader(pdf, "Passengers")
		tableHeader(pdf, []colSpec{{60, "Name"}, {40, "Type"}, {20, "Age"}})
		pdf.SetFont("Arial", "", 9)
		for _, p := range detail.Passengers {
			age := "-"
			if p.Age != nil {
				age = fmt.Sprintf("%d", *p.Age)
			}
			pdf.CellFormat(60, 6, p.FirstName+" "+p.LastName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, p.Type, "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, age, "1", 1, "C", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(detail.Flights) > 0 {
		sectionHeader(pdf, "Flights")
		tableHeader(pdf, []colSpec{{30, "Flight"}, {55, "Departure"}, {55, "Arrival"}, {25, "Cost"}})
		pdf.SetFont("Arial", "", 9)
		for _, f := range detail.Flights {
			num := "-"
			if f.FlightNumber != nil {
				num = *f.FlightNumber
			}
			pdf.CellFormat(30, 6, num, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, f.DepartureDateTime.Format("02 Jan 15:04"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, f.ArrivalDateTime.Format("02 Jan 15:04"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, f.Cost.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(detail.Hotels) > 0 {
		sectionHeader(pdf, "Accommodation")
		tableHeader(pdf, []colSpec{{70, "Hotel"}, {35, "Check-in"}, {20, "Nights"}, {25, "Cost"}})
		pdf.SetFont("Arial", "", 9)
		for _, h := range detail.Hotels {
			checkIn := "-"
			if h.CheckInDateTime != nil {
				checkIn = h.CheckInDateTime.Format("02 Jan 2006")
			}
			pdf.CellFormat(70, 6, h.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, checkIn, "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", h.Nights), "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 6, h.Cost.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(detail.Transfers) > 0 {
		sectionHeader(pdf, "Transfers")
		tableHeader(pdf, []colSpec{{30, "Type"}, {55, "Pickup"}, {55, "Dropoff"}, {25, "Cost"}})
		pdf.SetFont("Arial", "", 9)
		for _, t := range detail.Transfers {
			pdf.CellFormat(30, 6, t.TransferType, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, t.PickupLocation, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, t.DropoffLocation, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, t.Cost.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(detail.CarHires) > 0 {
		sectionHeader(pdf, "Car Hire")
		tableHeader(pdf, []colSpec{{55, "Pickup"}, {55, "Dropoff"}, {30, "Reference"}, {25, "Cost"}})
		pdf.SetFont("Arial", "", 9)
		for _, c := range detail.CarHires {
			r := "-"
			if c.ReferenceNumber != nil {
				r = *c.ReferenceNumber
			}
			pdf.CellFormat(55, 6, c.PickupLocation, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, c.DropoffLocation, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, r, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, c.Cost.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(detail.Tickets) > 0 {
		sectionHeader(pdf, "Attraction Tickets")
		tableHeader(pdf, []colSpec{{80, "Attraction"}, {35, "Date"}, {20, "Qty"}, {25, "Cost"}})
		pdf.SetFont("Arial", "", 9)
		for _, t := range detail.Tickets {
			d := "-"
			if t.TicketDate != nil {
				d = t.TicketDate.Format("02 Jan 2006")
			}
			pdf.CellFormat(80, 6, t.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, d, "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", t.Quantity), "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 6, t.Cost.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(detail.LoungePasses) > 0 {
		sectionHeader(pdf, "Lounge Passes")
		tableHeader(pdf, []colSpec{{90, "Lounge"}, {40, "Date"}, {25, "Cost"}})
		pdf.SetFont("Arial", "", 9)
		for _, l := range detail.LoungePasses {
			d := "-"
			if l.LoungeDate != nil {
				d = l.LoungeDate.Format("02 Jan 2006")
			}
			pdf.CellFormat(90, 6, l.LoungeName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, d, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, l.Cost.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(detail.Parking) > 0 {
		sectionHeader(pdf, "Airport Parking")
		tableHeader(pdf, []colSpec{{40, "Registration"}, {45, "From"}, {45, "To"}, {25, "Cost"}})
		pdf.SetFont("Arial", "", 9)
		for _, p := range detail.Parking {
			reg := "-"
			if p.CarRegistration != nil {
				reg = *p.CarRegistration
			}
			from, to := "-", "-"
			if p.StartDateTime != nil {
				from = p.StartDateTime.Format("02 Jan 15:04")
			}
			if p.EndDateTime != nil {
				to = p.EndDateTime.Format("02 Jan 15:04")
			}
			pdf.CellFormat(40, 6, reg, "1", 0, "L", false, 0, "")
			pdf.CellFormat(45, 6, from, "1", 0, "L", false, 0, "")
			pdf.CellFormat(45, 6, to, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, p.Cost.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if detail.Cruise != nil {
		sectionHeader(pdf, "Cruise")
		c := detail.Cruise.Cruise
		if c.CruiseDate != nil {
			summaryRow(pdf, "Sail Date", c.CruiseDate.Format("02 Jan 2006"))
		}
		if c.CabinType != nil {
			summaryRow(pdf, "Cabin Type", *c.CabinType)
		}
		if c.CabinNumber != nil {
			summaryRow(pdf, "Cabin Number", *c.CabinNumber)
		}
		summaryRow(pdf, "Cruise Cost", c.Cost.StringFixed(2))
		if len(detail.Cruise.Itinerary) > 0 {
			pdf.Ln(2)
			tableHeader(pdf, []colSpec{{20, "Day"}, {135, "Itinerary"}})
			pdf.SetFont("Arial", "", 9)
			for _, day := range detail.Cruise.Itinerary {
				pdf.CellFormat(20, 6, fmt.Sprintf("%d", day.Day), "1", 0, "C", false, 0, "")
				pdf.CellFormat(135, 6, day.Description, "1", 1, "L", false, 0, "")
			}
		}
		if len(detail.Cruise.Extras) > 0 {
			pdf.Ln(2)
			tableHeader(pdf, []colSpec{{130, "Extra"}, {25, "Cost"}})
			pdf.SetFont("Arial", "", 9)
			for _, e := range detail.Cruise.Extras {
				pdf.CellFormat(130, 6, e.Name, "1", 0, "L", false, 0, "")
				pdf.CellFormat(25, 6, e.Cost.StringFixed(2), "1", 1, "R", false, 0, "")
			}
		}
		pdf.Ln(4)
	}

	// Money summary
	sectionHeader(pdf, "Totals")
	summaryRow(pdf, "Overall Cost", detail.Money.OverallCost.StringFixed(2))
	summaryRow(pdf, "Overall Commission", detail.Money.OverallCommission.StringFixed(2))
	if detail.Money.ReferrerCommission != nil {
		summaryRow(pdf, "Referrer Commission", detail.Money.ReferrerCommission.StringFixed(2))
	}
	if detail.Money.FinalCommission != nil {
		summaryRow(pdf, "Final Commission", detail.Money.FinalCommission.StringFixed(2))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type colSpec struct {
	width float64
	title string
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(190, 8, title, "1", 1, "L", true, 0, "")
}

func tableHeader(pdf *gofpdf.Fpdf, cols []colSpec) {
	pdf.SetFillColor(200, 200, 200)
	pdf.SetFont("Arial", "B", 9)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 7, c.title, "1", ln, "L", true, 0, "")
	}
}

func summaryRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 7, label, "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(130, 7, value, "1", 1, "L", false, 0, "")
}
