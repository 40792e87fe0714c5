package report

import (
	"fmt"
	"strconv"
)

// Renderer turns a computed report into a downloadable file.
type Renderer interface {
	ContentType() string
	FileExtension() string
	Render(doc Document) ([]byte, error)
}

// tableRows flattens the report into the row layout shared by the CSV and
// spreadsheet renderers.
func tableRows(doc Document) [][]string {
	rows := [][]string{
		{"Report Type", string(doc.Type)},
		{"Date Range", string(doc.DateRange)},
		{"Generated", doc.GeneratedAt.Format("2006-01-02 15:04:05")},
		{},
	}

	data := doc.Data
	switch doc.Type {
	case TypeOverview:
		rows = append(rows,
			[]string{"OVERVIEW REPORT"},
			[]string{"Metric", "Value"},
			[]string{"Total Revenue", money(data.TotalRevenue)},
			[]string{"Active Projects", strconv.Itoa(data.ActiveProjects)},
			[]string{"Team Members", strconv.Itoa(data.TeamMembers)},
			[]string{"Avg Project Value", money(data.AvgProjectValue)},
		)
		if len(data.ProjectCostsOverTime) > 0 {
			rows = append(rows,
				[]string{},
				[]string{"PROJECT COSTS OVER TIME"},
				[]string{"Period", "Costs", "Projects"},
			)
			for _, bucket := range data.ProjectCostsOverTime {
				rows = append(rows, []string{bucket.Name, money(bucket.Costs), strconv.Itoa(bucket.Projects)})
			}
		}

	case TypeFinancial:
		rows = append(rows, []string{"FINANCIAL REPORT"})
		if len(data.RevenueBreakdown) > 0 {
			rows = append(rows,
				[]string{},
				[]string{"REVENUE BREAKDOWN"},
				[]string{"Period", "Amount", "Project Count"},
			)
			for _, bucket := range data.RevenueBreakdown {
				rows = append(rows, []string{bucket.Period, money(bucket.Amount), strconv.Itoa(bucket.ProjectCount)})
			}
		}
		if len(data.ProjectProfitability) > 0 {
			rows = append(rows,
				[]string{},
				[]string{"PROJECT PROFITABILITY"},
				[]string{"Project", "Revenue", "Cost", "Profit", "Margin"},
			)
			for _, item := range data.ProjectProfitability {
				rows = append(rows, []string{
					item.ProjectName,
					money(item.Revenue),
					money(item.Cost),
					money(item.Profit),
					strconv.Itoa(item.Margin) + "%",
				})
			}
		}

	case TypeResources:
		rows = append(rows, []string{"RESOURCES REPORT"})
		if len(data.TeamPerformance) > 0 {
			rows = append(rows,
				[]string{},
				[]string{"TEAM PERFORMANCE"},
				[]string{"Name", "Role", "Projects", "Hourly Rate", "Availability"},
			)
			for _, member := range data.TeamPerformance {
				rows = append(rows, []string{
					member.Name,
					member.Role,
					strconv.Itoa(member.Projects),
					money(member.HourlyRate),
					member.Availability,
				})
			}
		}
		if len(data.ResourceAllocation) > 0 {
			rows = append(rows,
				[]string{},
				[]string{"ROLE DISTRIBUTION"},
				[]string{"Role", "Share"},
			)
			for _, slice := range data.ResourceAllocation {
				rows = append(rows, []string{slice.Name, strconv.Itoa(slice.Value) + "%"})
			}
		}

	case TypeProjects:
		rows = append(rows, []string{"PROJECTS REPORT"})
		if len(data.ProjectStatus) > 0 {
			rows = append(rows,
				[]string{},
				[]string{"PROJECT STATUS"},
				[]string{"Status", "Count", "Percentage"},
			)
			for _, status := range data.ProjectStatus {
				rows = append(rows, []string{status.Status, strconv.Itoa(status.Count), strconv.Itoa(status.Percentage) + "%"})
			}
		}
		if len(data.RecentProjects) > 0 {
			rows = append(rows,
				[]string{},
				[]string{"RECENT PROJECTS"},
				[]string{"Name", "Status", "Budget", "Actual"},
			)
			for _, p := range data.RecentProjects {
				rows = append(rows, []string{p.Name, p.Status, money(p.Budget), money(p.Actual)})
			}
		}
	}

	return rows
}

func money(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// fileName builds the attachment name for an export.
func fileName(doc Document, extension string) string {
	return fmt.Sprintf("report-%s-%s.%s", doc.Type, doc.GeneratedAt.Format("2006-01-02"), extension)
}
