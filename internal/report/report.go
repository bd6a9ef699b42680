// Package report renders a finished session as a plain-text summary, a PDF and a QR code.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"
	"github.com/misterclayt0n/gymtrack/internal/models"
	"github.com/misterclayt0n/gymtrack/internal/stats"
	"github.com/misterclayt0n/gymtrack/internal/utils"
	"github.com/skip2/go-qrcode"
)

const dateLayout = "02/01/2006"

// QRSize is the side of the QR code PNG in pixels.
const QRSize = 256

func formatWeight(w float64) string {
	return humanize.FormatFloat("#,###.##", w)
}

// Summary is the compact text that goes into the QR code: completed sets and cardio times.
func Summary(s models.WorkoutSession, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Workout: %s **\n", s.Name)
	fmt.Fprintf(&b, "Date: %s\n", s.StartTime.In(loc).Format(dateLayout))
	fmt.Fprintf(&b, "Duration: %s\n\n", utils.FormatDuration(s.Duration()))

	for _, ex := range s.Exercises {
		fmt.Fprintf(&b, "* %s\n", ex.Name)
		for i, l := range ex.Logs {
			if !l.Completed {
				continue
			}
			if ex.IsCardio {
				fmt.Fprintf(&b, "  - Time: %s\n", utils.FormatClock(l.Reps))
				break
			}
			fmt.Fprintf(&b, "  - Set %d: %gkg x %d reps\n", i+1, l.Weight, l.Reps)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FileName is the PDF name for s, e.g. Workout-Report-Push_Day-14-03-2026.pdf.
func FileName(s models.WorkoutSession, loc *time.Location) string {
	name := strings.Join(strings.Fields(s.Name), "_")
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("Workout-Report-%s-%s.pdf", name, s.StartTime.In(loc).Format("02-01-2006"))
}

// QRCode encodes the summary of s as a PNG.
func QRCode(s models.WorkoutSession, loc *time.Location) ([]byte, error) {
	png, err := qrcode.Encode(Summary(s, loc), qrcode.Medium, QRSize)
	if err != nil {
		return nil, fmt.Errorf("Failed to encode QR code: %w", err)
	}
	return png, nil
}

// PDF writes the session report: header, one block per exercise with its set table or
// cardio time, the total weight lifted, and the QR code of the summary.
func PDF(w io.Writer, s models.WorkoutSession, loc *time.Location) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Workout Report - "+s.Name), false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetTextColor(59, 130, 246)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, "Workout Report", "", 1, "C", false, 0, "")
	pdf.SetTextColor(102, 102, 102)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "gymtrack", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(70, 8, tr("Workout: "+s.Name), "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Date: "+s.StartTime.In(loc).Format(dateLayout), "", 0, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Duration: "+utils.FormatDuration(s.Duration()), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(59, 130, 246)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Exercises", "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, ex := range s.Exercises {
		pdf.SetTextColor(51, 51, 51)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(ex.Name), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)

		if ex.IsCardio {
			for _, l := range ex.Logs {
				if l.Completed {
					pdf.CellFormat(0, 7, "    Time: "+utils.FormatClock(l.Reps), "", 1, "L", false, 0, "")
				}
			}
			pdf.Ln(3)
			continue
		}

		pdf.SetFillColor(243, 244, 246)
		for _, h := range []string{"Set", "Weight (kg)", "Reps", "Done"} {
			pdf.CellFormat(40, 7, h, "B", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		for i, l := range ex.Logs {
			done := ""
			if l.Completed {
				done = "yes"
			}
			pdf.CellFormat(40, 7, fmt.Sprint(i+1), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, fmt.Sprintf("%g", l.Weight), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, fmt.Sprint(l.Reps), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, done, "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.Ln(4)
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Total", "T", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Total weight lifted: "+formatWeight(stats.SessionWeight(s))+" kg", "", 1, "C", false, 0, "")

	png, err := QRCode(s, loc)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("summary-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("summary-qr", 80, pdf.GetY()+4, 50, 50, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("Failed to render PDF: %w", err)
	}
	return nil
}

// WritePDF writes the report of s into dir under FileName and returns the path.
func WritePDF(dir string, s models.WorkoutSession, loc *time.Location) (string, error) {
	var buf bytes.Buffer
	if err := PDF(&buf, s, loc); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(s, loc))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("Failed to write %s: %w", path, err)
	}
	return path, nil
}

// WriteQRCode writes the QR code PNG of s next to where its PDF would go.
func WriteQRCode(dir string, s models.WorkoutSession, loc *time.Location) (string, error) {
	png, err := QRCode(s, loc)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, strings.TrimSuffix(FileName(s, loc), ".pdf")+".png")
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("Failed to write %s: %w", path, err)
	}
	return path, nil
}
