package tickets

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// buildTicketPDF renders the printable e-ticket shown at the station.
func buildTicketPDF(t *Ticket) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("TaxiBe E-Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TAXIBE E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ref  : %s", t.BookingRef),
		fmt.Sprintf("Route        : %s -> %s", t.FromCity, t.ToCity),
		fmt.Sprintf("Departure    : %s", t.DepartureAt.Format("02 Jan 2006 15:04")),
		fmt.Sprintf("Seats        : %s", t.Seats),
		fmt.Sprintf("Total        : %s", formatAriary(t.TotalPrice)),
		fmt.Sprintf("Status       : %s", t.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this ticket and the QR code below to the station agent before boarding.", "", "", false)

	pdf.Ln(4)
	pdf.SetFont("Courier", "", 9)
	pdf.MultiCell(0, 5, t.QRPayload, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TAXIBE_%s.pdf", safeFilenamePart(t.BookingRef))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_")
	return replacer.Replace(s)
}

func formatAriary(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	var out []byte
	n := len(s)
	for i := 0; i < n; i++ {
		out = append(out, s[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, ' ')
		}
	}
	return string(out) + " Ar"
}
