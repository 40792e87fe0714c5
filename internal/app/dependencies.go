package app

import (
	"database/sql"

	"github.com/estimatepro/estimatepro/internal/config"
	"github.com/estimatepro/estimatepro/internal/event_bus"
	"github.com/estimatepro/estimatepro/internal/utils"
	"github.com/estimatepro/estimatepro/pkg/activity"
	"github.com/estimatepro/estimatepro/pkg/activity_log"
	"github.com/estimatepro/estimatepro/pkg/dashboard"
	"github.com/estimatepro/estimatepro/pkg/estimation"
	"github.com/estimatepro/estimatepro/pkg/project"
	"github.com/estimatepro/estimatepro/pkg/report"
	"github.com/estimatepro/estimatepro/pkg/resource"
	"github.com/estimatepro/estimatepro/pkg/task"
	"github.com/estimatepro/estimatepro/pkg/team_member"
	"github.com/estimatepro/estimatepro/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	ProjectRepo    project.Repo
	ProjectService project.Service
	ProjectHandler *project.Handler

	EstimationRepo    estimation.Repo
	EstimationService estimation.Service
	EstimationHandler *estimation.Handler

	ResourceRepo    resource.Repo
	ResourceService resource.Service
	ResourceHandler *resource.Handler

	TeamMemberRepo    team_member.Repo
	TeamMemberService team_member.Service
	TeamMemberHandler *team_member.Handler

	TaskRepo    task.Repo
	TaskService task.Service
	TaskHandler *task.Handler

	ActivityRepo    activity.Repo
	ActivityService activity.Service
	ActivityHandler *activity.Handler

	ActivityLogRepo    activity_log.Repo
	ActivityLogService activity_log.Service
	ActivityLogHandler *activity_log.Handler

	DashboardService dashboard.Service
	DashboardHandler *dashboard.Handler

	ReportRepo     report.Repo
	ReportService  report.Service
	ReportExporter *report.Exporter
	ReportHandler  *report.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.ProjectRepo = project.NewProjectRepo(db)
	deps.ProjectService = project.NewProjectService(deps.ProjectRepo, deps.EventBus)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.EstimationRepo = estimation.NewEstimationRepo(db)
	deps.EstimationService = estimation.NewEstimationService(deps.EstimationRepo, deps.EventBus)
	deps.EstimationHandler = estimation.NewHandler(deps.EstimationService)

	deps.ResourceRepo = resource.NewResourceRepo(db)
	deps.ResourceService = resource.NewResourceService(deps.ResourceRepo)
	deps.ResourceHandler = resource.NewHandler(deps.ResourceService)

	deps.TeamMemberRepo = team_member.NewTeamMemberRepo(db)
	deps.TeamMemberService = team_member.NewTeamMemberService(deps.TeamMemberRepo)
	deps.TeamMemberHandler = team_member.NewHandler(deps.TeamMemberService)

	deps.TaskRepo = task.NewTaskRepo(db)
	deps.TaskService = task.NewTaskService(deps.TaskRepo)
	deps.TaskHandler = task.NewHandler(deps.TaskService)

	deps.ActivityRepo = activity.NewActivityRepo(db)
	deps.ActivityService = activity.NewActivityService(deps.ActivityRepo, deps.TaskService)
	deps.ActivityHandler = activity.NewHandler(deps.ActivityService)

	deps.ActivityLogRepo = activity_log.NewActivityLogRepo(db)
	deps.ActivityLogService = activity_log.NewActivityLogService(deps.ActivityLogRepo, deps.EventBus)
	deps.ActivityLogHandler = activity_log.NewHandler(deps.ActivityLogService)

	deps.DashboardService = dashboard.NewDashboardService(deps.ProjectService, deps.EstimationService)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService)

	deps.ReportRepo = report.NewReportRepo(db)
	deps.ReportService = report.NewReportService(
		deps.ReportRepo,
		deps.ProjectService,
		deps.EstimationService,
		deps.TeamMemberService,
		deps.Clock,
	)
	deps.ReportExporter = report.NewExporter()
	deps.ReportHandler = report.NewHandler(deps.ReportService, deps.ReportExporter)

	return deps
}
