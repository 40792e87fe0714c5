package app

import (
	"github.com/estimatepro/estimatepro/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Projects
	r.HandleFunc("/api/projects", deps.ProjectHandler.List).Methods("GET")
	r.HandleFunc("/api/projects", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.Get).Methods("GET")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.Update).Methods("PUT")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/projects/{projectId}/status", deps.ProjectHandler.UpdateStatus).Methods("PATCH")

	// Estimations
	r.HandleFunc("/api/estimations", deps.EstimationHandler.List).Methods("GET")
	r.HandleFunc("/api/estimations", deps.EstimationHandler.Create).Methods("POST")
	r.HandleFunc("/api/estimations/{estimationId}", deps.EstimationHandler.Get).Methods("GET")
	r.HandleFunc("/api/estimations/{estimationId}", deps.EstimationHandler.Update).Methods("PUT")
	r.HandleFunc("/api/estimations/{estimationId}", deps.EstimationHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/estimations/{estimationId}/status", deps.EstimationHandler.UpdateStatus).Methods("PATCH")

	// Resources
	r.HandleFunc("/api/resources", deps.ResourceHandler.List).Methods("GET")
	r.HandleFunc("/api/resources", deps.ResourceHandler.Create).Methods("POST")
	r.HandleFunc("/api/resources/{resourceId}", deps.ResourceHandler.Get).Methods("GET")
	r.HandleFunc("/api/resources/{resourceId}", deps.ResourceHandler.Update).Methods("PUT")
	r.HandleFunc("/api/resources/{resourceId}", deps.ResourceHandler.Delete).Methods("DELETE")

	// Team members
	r.HandleFunc("/api/team-members", deps.TeamMemberHandler.List).Methods("GET")
	r.HandleFunc("/api/team-members", deps.TeamMemberHandler.Create).Methods("POST")
	r.HandleFunc("/api/team-members/{memberId}", deps.TeamMemberHandler.Get).Methods("GET")
	r.HandleFunc("/api/team-members/{memberId}", deps.TeamMemberHandler.Update).Methods("PUT")
	r.HandleFunc("/api/team-members/{memberId}", deps.TeamMemberHandler.Delete).Methods("DELETE")

	// Tasks
	r.HandleFunc("/api/tasks", deps.TaskHandler.List).Methods("GET")
	r.HandleFunc("/api/tasks", deps.TaskHandler.Create).Methods("POST")
	r.HandleFunc("/api/tasks/{taskId}", deps.TaskHandler.Update).Methods("PUT")
	r.HandleFunc("/api/tasks/{taskId}", deps.TaskHandler.Delete).Methods("DELETE")

	// Task activities and project budget rollup
	r.HandleFunc("/api/activities", deps.ActivityHandler.Create).Methods("POST")
	r.HandleFunc("/api/activities/task/{taskId}", deps.ActivityHandler.GetByTask).Methods("GET")
	r.HandleFunc("/api/activities/{activityId}", deps.ActivityHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/budget/{projectId}", deps.ActivityHandler.ProjectBudget).Methods("GET")

	// Activity feed
	r.HandleFunc("/api/activity-log", deps.ActivityLogHandler.GetRecent).Methods("GET")

	// Dashboard
	r.HandleFunc("/api/dashboard/stats", deps.DashboardHandler.GetStats).Methods("GET")

	// Reports
	r.HandleFunc("/api/reports", deps.ReportHandler.List).Methods("GET")
	r.HandleFunc("/api/reports", deps.ReportHandler.Save).Methods("POST")
	r.HandleFunc("/api/reports/data", deps.ReportHandler.Generate).Methods("POST")
	r.HandleFunc("/api/reports/{reportId}", deps.ReportHandler.Delete).Methods("DELETE")
}
