package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	adminDashboardHandler "github.com/m04kA/juice-reservations/internal/api/handlers/admin_dashboard"
	adminLoginHandler "github.com/m04kA/juice-reservations/internal/api/handlers/admin_login"
	adminLogoutHandler "github.com/m04kA/juice-reservations/internal/api/handlers/admin_logout"
	cancelReservationHandler "github.com/m04kA/juice-reservations/internal/api/handlers/cancel_reservation"
	createPresenceHandler "github.com/m04kA/juice-reservations/internal/api/handlers/create_presence"
	createReservationHandler "github.com/m04kA/juice-reservations/internal/api/handlers/create_reservation"
	deletePresenceHandler "github.com/m04kA/juice-reservations/internal/api/handlers/delete_presence"
	deleteReservationHandler "github.com/m04kA/juice-reservations/internal/api/handlers/delete_reservation"
	getReservationHandler "github.com/m04kA/juice-reservations/internal/api/handlers/get_reservation"
	getSlotHandler "github.com/m04kA/juice-reservations/internal/api/handlers/get_slot"
	healthHandler "github.com/m04kA/juice-reservations/internal/api/handlers/health"
	listPresencesHandler "github.com/m04kA/juice-reservations/internal/api/handlers/list_presences"
	listReservationsHandler "github.com/m04kA/juice-reservations/internal/api/handlers/list_reservations"
	listSlotsHandler "github.com/m04kA/juice-reservations/internal/api/handlers/list_slots"
	updateReservationHandler "github.com/m04kA/juice-reservations/internal/api/handlers/update_reservation"
	"github.com/m04kA/juice-reservations/internal/api/middleware"
	"github.com/m04kA/juice-reservations/internal/config"
	"github.com/m04kA/juice-reservations/internal/service/auth"
	"github.com/m04kA/juice-reservations/internal/service/availability"
	"github.com/m04kA/juice-reservations/internal/service/reservations"
	adminDashboardUC "github.com/m04kA/juice-reservations/internal/usecase/admin_dashboard"
	cancelReservationUC "github.com/m04kA/juice-reservations/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/juice-reservations/internal/usecase/create_reservation"
	getReservationUC "github.com/m04kA/juice-reservations/internal/usecase/get_reservation"
	modifyReservationUC "github.com/m04kA/juice-reservations/internal/usecase/modify_reservation"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

// StorageChecker проверка хранилища для /health
type StorageChecker interface {
	Ping(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dependencies всё, что нужно для сборки HTTP слоя
type Dependencies struct {
	Config   *config.Config
	Location *time.Location

	Storage     StorageChecker
	StorageKind string

	Availability *availability.Service
	Reservations *reservations.Service
	Auth         *auth.Service

	CreateReservation *createReservationUC.UseCase
	GetReservation    *getReservationUC.UseCase
	ModifyReservation *modifyReservationUC.UseCase
	CancelReservation *cancelReservationUC.UseCase
	AdminDashboard    *adminDashboardUC.UseCase

	Metrics *metrics.Metrics
	Redis   *redis.Client // nil - без ограничения частоты
	Logger  Logger
}

// NewRouter собирает маршруты и middleware
func NewRouter(d Dependencies) http.Handler {
	log := d.Logger
	loc := d.Location

	cookie := middleware.SessionCookie{
		Name:   d.Config.Admin.CookieName,
		Secure: d.Config.App.IsProduction(),
	}

	var limiter *middleware.RateLimiter
	if d.Config.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(d.Redis, d.Config.RateLimit.TrustedProxies, log)
	}
	generalLimit := limiter.Limit(middleware.Policy{Name: "general", Limit: d.Config.RateLimit.General})
	reservationLimit := limiter.Limit(middleware.Policy{Name: "reservation", Limit: d.Config.RateLimit.Reservation})
	loginLimit := limiter.Limit(middleware.Policy{Name: "login", Limit: d.Config.RateLimit.Login})

	// Инициализируем handlers
	health := healthHandler.NewHandler(d.Storage, d.StorageKind, d.Config.App.Environment, log)
	listSlots := listSlotsHandler.NewHandler(d.Availability, loc, log)
	getSlot := getSlotHandler.NewHandler(d.Availability, loc, log)
	createReservation := createReservationHandler.NewHandler(d.CreateReservation, loc, log)
	getReservation := getReservationHandler.NewHandler(d.GetReservation, loc, log)
	updateReservation := updateReservationHandler.NewHandler(d.ModifyReservation, loc, log)
	cancelReservation := cancelReservationHandler.NewHandler(d.CancelReservation, loc, log)

	adminLogin := adminLoginHandler.NewHandler(d.Auth, cookie, log)
	adminLogout := adminLogoutHandler.NewHandler(d.Auth, cookie, log)
	adminDashboard := adminDashboardHandler.NewHandler(d.AdminDashboard, loc, log)
	listPresences := listPresencesHandler.NewHandler(d.Availability, log)
	createPresence := createPresenceHandler.NewHandler(d.Availability, loc, log)
	deletePresence := deletePresenceHandler.NewHandler(d.Availability, log)
	listReservations := listReservationsHandler.NewHandler(d.Reservations, loc, log)
	deleteReservation := deleteReservationHandler.NewHandler(d.Reservations, log)

	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(d.Metrics))
	r.Use(middleware.SecurityHeaders)

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	if d.Metrics != nil && d.Config.Metrics.Enabled {
		r.Handle(d.Config.Metrics.Path, d.Metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(generalLimit)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId:[0-9]+}", getSlot.Handle).Methods(http.MethodGet)
	api.Handle("/slots/{slotId:[0-9]+}/reservations",
		reservationLimit(http.HandlerFunc(createReservation.Handle))).Methods(http.MethodPost)

	// Управление бронированием по токену из ссылки
	api.HandleFunc("/reservations/{token}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{token}", updateReservation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{token}", cancelReservation.Handle).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (cookie сессии)
	// ============================================================

	api.Handle("/admin/login", loginLimit(http.HandlerFunc(adminLogin.Handle))).Methods(http.MethodPost)
	api.HandleFunc("/admin/logout", adminLogout.Handle).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(d.Auth, cookie, log))

	admin.HandleFunc("/stats", adminDashboard.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/presences", listPresences.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/presences", createPresence.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/presences/{presenceId:[0-9]+}", deletePresence.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{token}", deleteReservation.Handle).Methods(http.MethodDelete)

	return middleware.CORS(d.Config.CORS.AllowedOrigins)(r)
}
