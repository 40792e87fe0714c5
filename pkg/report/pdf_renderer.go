package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer writes the report as a portrait A4 document with 20 mm margins.
type PDFRenderer struct{}

func (PDFRenderer) ContentType() string   { return "application/pdf" }
func (PDFRenderer) FileExtension() string { return "pdf" }

func (PDFRenderer) Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "Project Estimation Report")
	pdf.Ln(15)

	pdf.SetFont("Helvetica", "", 12)
	writeLine(pdf, fmt.Sprintf("Generated: %s", doc.GeneratedAt.Format("2006-01-02 15:04:05")), 10)
	writeLine(pdf, fmt.Sprintf("Report Type: %s", doc.Type), 10)
	writeLine(pdf, fmt.Sprintf("Date Range: %s", doc.DateRange), 15)

	data := doc.Data
	switch doc.Type {
	case TypeOverview:
		heading(pdf, "OVERVIEW REPORT")
		pdf.SetFont("Helvetica", "", 12)
		writeLine(pdf, fmt.Sprintf("Total Revenue: %s", money(data.TotalRevenue)), 10)
		writeLine(pdf, fmt.Sprintf("Active Projects: %d", data.ActiveProjects), 10)
		writeLine(pdf, fmt.Sprintf("Team Members: %d", data.TeamMembers), 10)
		writeLine(pdf, fmt.Sprintf("Avg Project Value: %s", money(data.AvgProjectValue)), 15)
		if len(data.ProjectCostsOverTime) > 0 {
			subheading(pdf, "PROJECT COSTS OVER TIME")
			for _, bucket := range data.ProjectCostsOverTime {
				writeLine(pdf, fmt.Sprintf("%s: %s (%d projects)", bucket.Name, money(bucket.Costs), bucket.Projects), 8)
			}
		}

	case TypeFinancial:
		heading(pdf, "FINANCIAL REPORT")
		if len(data.RevenueBreakdown) > 0 {
			subheading(pdf, "REVENUE BREAKDOWN")
			for _, bucket := range data.RevenueBreakdown {
				writeLine(pdf, fmt.Sprintf("%s: %s (%d projects)", bucket.Period, money(bucket.Amount), bucket.ProjectCount), 8)
			}
		}
		if len(data.ProjectProfitability) > 0 {
			pdf.Ln(5)
			subheading(pdf, "PROJECT PROFITABILITY")
			for _, item := range data.ProjectProfitability {
				writeLine(pdf, item.ProjectName+":", 6)
				writeLine(pdf, fmt.Sprintf("  Revenue: %s", money(item.Revenue)), 6)
				writeLine(pdf, fmt.Sprintf("  Cost: %s", money(item.Cost)), 6)
				writeLine(pdf, fmt.Sprintf("  Profit: %s", money(item.Profit)), 6)
				writeLine(pdf, fmt.Sprintf("  Margin: %d%%", item.Margin), 10)
			}
		}

	case TypeResources:
		heading(pdf, "RESOURCES REPORT")
		if len(data.TeamPerformance) > 0 {
			subheading(pdf, "TEAM PERFORMANCE")
			for _, member := range data.TeamPerformance {
				writeLine(pdf, fmt.Sprintf("%s (%s):", member.Name, member.Role), 6)
				writeLine(pdf, fmt.Sprintf("  Projects: %d", member.Projects), 6)
				writeLine(pdf, fmt.Sprintf("  Hourly Rate: %s", money(member.HourlyRate)), 6)
				writeLine(pdf, fmt.Sprintf("  Availability: %s", member.Availability), 10)
			}
		}
		if len(data.ResourceAllocation) > 0 {
			subheading(pdf, "ROLE DISTRIBUTION")
			for _, slice := range data.ResourceAllocation {
				writeLine(pdf, fmt.Sprintf("%s: %d%%", slice.Name, slice.Value), 8)
			}
		}

	case TypeProjects:
		heading(pdf, "PROJECTS REPORT")
		if len(data.ProjectStatus) > 0 {
			subheading(pdf, "PROJECT STATUS OVERVIEW")
			for _, status := range data.ProjectStatus {
				writeLine(pdf, fmt.Sprintf("%s: %d (%d%%)", status.Status, status.Count, status.Percentage), 8)
			}
		}
		if len(data.RecentProjects) > 0 {
			pdf.Ln(5)
			subheading(pdf, "RECENT PROJECTS")
			for _, p := range data.RecentProjects {
				writeLine(pdf, p.Name+":", 6)
				writeLine(pdf, fmt.Sprintf("  Status: %s", p.Status), 6)
				writeLine(pdf, fmt.Sprintf("  Budget: %s", money(p.Budget)), 6)
				writeLine(pdf, fmt.Sprintf("  Actual: %s", money(p.Actual)), 10)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("could not serialize PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 8, title)
	pdf.Ln(15)
	pdf.SetFont("Helvetica", "", 10)
}

func subheading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 7, title)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
}

func writeLine(pdf *fpdf.Fpdf, text string, advance float64) {
	pdf.Cell(0, 5, text)
	pdf.Ln(advance)
}
