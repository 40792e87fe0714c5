package dashboard

// Stats is the dashboard summary. It is derived on every request and never
// persisted.
type Stats struct {
	TotalProjects        int     `json:"totalProjects"`
	TotalEstimations     int     `json:"totalEstimations"`
	TotalValue           float64 `json:"totalValue"`
	ActiveProjects       int     `json:"activeProjects"`
	CompletedProjects    int     `json:"completedProjects"`
	ActiveEstimations    int     `json:"activeEstimations"`
	CompletedEstimations int     `json:"completedEstimations"`
}
