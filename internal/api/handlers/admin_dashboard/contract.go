package admin_dashboard

import (
	"context"

	adminDashboard "github.com/m04kA/juice-reservations/internal/usecase/admin_dashboard"
)

type DashboardUseCase interface {
	Execute(ctx context.Context) (*adminDashboard.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
