package cmd

import (
	"context"
	"log/slog"

	httpin "mes/internal/adapters/in/http"
	"mes/internal/adapters/out/metrics"
	"mes/internal/adapters/out/postgres"
	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/application/usecases/queries"
	"mes/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	recorder   *metrics.Recorder
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	recorder := metrics.NewRecorder()

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if err = recorder.RegisterDB(sqlDB, "mes"); err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		recorder:   recorder,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateProcessCommandHandler() commands.CreateProcessCommandHandler {
	var f commands.ProcessUoWFactory = FuncProcessUoWFactory(func() commands.ProcessUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProcessCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() commands.CreateRouteCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRouteCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateWorkOrderCommandHandler() commands.CreateWorkOrderCommandHandler {
	return commands.NewCreateWorkOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateUpdateWorkOrderCommandHandler() commands.UpdateWorkOrderCommandHandler {
	return commands.NewUpdateWorkOrderCommandHandler(c.uow(), c.recorder, c.logger)
}

func (c *CompositionRoot) CreateSplitWorkOrderCommandHandler() commands.SplitWorkOrderCommandHandler {
	return commands.NewSplitWorkOrderCommandHandler(c.uow(), c.recorder, c.logger)
}

func (c *CompositionRoot) CreateDeleteWorkOrderCommandHandler() commands.DeleteWorkOrderCommandHandler {
	return commands.NewDeleteWorkOrderCommandHandler(c.uow(), c.recorder, c.logger)
}

func (c *CompositionRoot) CreateUpdateTaskCommandHandler() commands.UpdateTaskCommandHandler {
	return commands.NewUpdateTaskCommandHandler(c.uow(), c.recorder, c.logger)
}

func (c *CompositionRoot) CreateReconcileScheduledWorkOrdersCommandHandler() commands.ReconcileScheduledWorkOrdersCommandHandler {
	return commands.NewReconcileScheduledWorkOrdersCommandHandler(c.uow(), c.recorder, c.logger)
}

func (c *CompositionRoot) CreateGetAllProcessesQueryHandler() queries.GetAllProcessesQueryHandler {
	return queries.NewGetAllProcessesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteQueryHandler() queries.GetRouteQueryHandler {
	return queries.NewGetRouteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkOrderQueryHandler() queries.GetWorkOrderQueryHandler {
	return queries.NewGetWorkOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkOrderTasksQueryHandler() queries.GetWorkOrderTasksQueryHandler {
	return queries.NewGetWorkOrderTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTaskQueryHandler() queries.GetTaskQueryHandler {
	return queries.NewGetTaskQueryHandler(c.gormDB)
}

// CreateJobManager wires the scheduled jobs. An empty RECONCILE_SCHEDULE disables them.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileScheduledWorkOrdersCommandHandler(), c.cfg.ReconcileSchedule, c.logger)
}

// CreateRouter builds the HTTP entry point with every use case attached.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateProcess:     c.CreateCreateProcessCommandHandler(),
		CreateRoute:       c.CreateCreateRouteCommandHandler(),
		CreateWorkOrder:   c.CreateCreateWorkOrderCommandHandler(),
		UpdateWorkOrder:   c.CreateUpdateWorkOrderCommandHandler(),
		SplitWorkOrder:    c.CreateSplitWorkOrderCommandHandler(),
		DeleteWorkOrder:   c.CreateDeleteWorkOrderCommandHandler(),
		UpdateTask:        c.CreateUpdateTaskCommandHandler(),
		GetAllProcesses:   c.CreateGetAllProcessesQueryHandler(),
		GetRoute:          c.CreateGetRouteQueryHandler(),
		GetWorkOrder:      c.CreateGetWorkOrderQueryHandler(),
		GetWorkOrderTasks: c.CreateGetWorkOrderTasksQueryHandler(),
		GetTask:           c.CreateGetTaskQueryHandler(),
	}, c.logger)

	_, echoLevel := httpin.ParseLogLevel(c.cfg.LogLevel)
	return httpin.NewRouter(ctx, httpin.RouterConfig{
		Server:   server,
		Metrics:  c.recorder,
		Logger:   c.logger,
		LogLevel: echoLevel,
		Ping: func(ctx context.Context) error {
			sqlDB, err := c.gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})
}

type FuncProcessUoWFactory func() commands.ProcessUoW

func (f FuncProcessUoWFactory) Create() commands.ProcessUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
