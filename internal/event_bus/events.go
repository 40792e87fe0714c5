package event_bus

const (
	ProjectCreated    EventType = "project.created"
	ProjectUpdated    EventType = "project.updated"
	ProjectDeleted    EventType = "project.deleted"
	EstimationCreated EventType = "estimation.created"
	EstimationUpdated EventType = "estimation.updated"
	EstimationDeleted EventType = "estimation.deleted"
)

// ProjectEvent is the payload published on project lifecycle events.
type ProjectEvent struct {
	ProjectID   int
	ProjectName string
	Status      string
}

// EstimationEvent is the payload published on estimation lifecycle events.
type EstimationEvent struct {
	EstimationID int
	ProjectID    int
	ProjectName  string
	FinalCost    float64
	Status       string
}
