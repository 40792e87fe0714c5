package report

import (
	"fmt"
	"strings"
)

// TextRenderer writes the plain text export.
type TextRenderer struct{}

func (TextRenderer) ContentType() string   { return "text/plain" }
func (TextRenderer) FileExtension() string { return "txt" }

func (TextRenderer) Render(doc Document) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Project Estimation Report\n")
	fmt.Fprintf(&b, "Generated: %s\n", doc.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Report Type: %s\n", doc.Type)
	fmt.Fprintf(&b, "Date Range: %s\n", doc.DateRange)
	fmt.Fprintf(&b, "=====================================\n\n")

	data := doc.Data
	switch doc.Type {
	case TypeOverview:
		section(&b, "OVERVIEW REPORT")
		fmt.Fprintf(&b, "Total Revenue: %s\n", money(data.TotalRevenue))
		fmt.Fprintf(&b, "Active Projects: %d\n", data.ActiveProjects)
		fmt.Fprintf(&b, "Team Members: %d\n", data.TeamMembers)
		fmt.Fprintf(&b, "Avg Project Value: %s\n\n", money(data.AvgProjectValue))
		if len(data.ProjectCostsOverTime) > 0 {
			section(&b, "PROJECT COSTS OVER TIME")
			for _, bucket := range data.ProjectCostsOverTime {
				fmt.Fprintf(&b, "%s: %s (%d projects)\n", bucket.Name, money(bucket.Costs), bucket.Projects)
			}
		}

	case TypeFinancial:
		section(&b, "FINANCIAL REPORT")
		if len(data.RevenueBreakdown) > 0 {
			section(&b, "REVENUE BREAKDOWN")
			for _, bucket := range data.RevenueBreakdown {
				fmt.Fprintf(&b, "%s: %s (%d projects)\n", bucket.Period, money(bucket.Amount), bucket.ProjectCount)
			}
		}
		if len(data.ProjectProfitability) > 0 {
			b.WriteByte('\n')
			section(&b, "PROJECT PROFITABILITY")
			for _, item := range data.ProjectProfitability {
				fmt.Fprintf(&b, "%s:\n", item.ProjectName)
				fmt.Fprintf(&b, "  Revenue: %s\n", money(item.Revenue))
				fmt.Fprintf(&b, "  Cost: %s\n", money(item.Cost))
				fmt.Fprintf(&b, "  Profit: %s\n", money(item.Profit))
				fmt.Fprintf(&b, "  Margin: %d%%\n\n", item.Margin)
			}
		}

	case TypeResources:
		section(&b, "RESOURCES REPORT")
		if len(data.TeamPerformance) > 0 {
			section(&b, "TEAM PERFORMANCE")
			for _, member := range data.TeamPerformance {
				fmt.Fprintf(&b, "%s (%s):\n", member.Name, member.Role)
				fmt.Fprintf(&b, "  Projects: %d\n", member.Projects)
				fmt.Fprintf(&b, "  Hourly Rate: %s\n", money(member.HourlyRate))
				fmt.Fprintf(&b, "  Availability: %s\n\n", member.Availability)
			}
		}
		if len(data.ResourceAllocation) > 0 {
			section(&b, "ROLE DISTRIBUTION")
			for _, slice := range data.ResourceAllocation {
				fmt.Fprintf(&b, "%s: %d%%\n", slice.Name, slice.Value)
			}
		}

	case TypeProjects:
		section(&b, "PROJECTS REPORT")
		if len(data.ProjectStatus) > 0 {
			section(&b, "PROJECT STATUS OVERVIEW")
			for _, status := range data.ProjectStatus {
				fmt.Fprintf(&b, "%s: %d (%d%%)\n", status.Status, status.Count, status.Percentage)
			}
		}
		if len(data.RecentProjects) > 0 {
			b.WriteByte('\n')
			section(&b, "RECENT PROJECTS")
			for _, p := range data.RecentProjects {
				fmt.Fprintf(&b, "%s:\n", p.Name)
				fmt.Fprintf(&b, "  Status: %s\n", p.Status)
				fmt.Fprintf(&b, "  Budget: %s\n", money(p.Budget))
				fmt.Fprintf(&b, "  Actual: %s\n\n", money(p.Actual))
			}
		}
	}

	return []byte(b.String()), nil
}

func section(b *strings.Builder, title string) {
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(title)))
	b.WriteByte('\n')
}
