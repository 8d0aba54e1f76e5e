package http

import (
	"net/http"

	"clinic-admin/internal/delivery/http/handler"
	"clinic-admin/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth           *handler.AuthHandler
	AuditLog       *handler.AuditLogHandler
	Specialization *handler.SpecializationHandler
	Doctor         *handler.DoctorHandler
	Department     *handler.DepartmentHandler
	Catalog        *handler.ServiceCatalogHandler
	Assignment     *handler.DoctorAssignmentHandler
	Schedule       *handler.DoctorScheduleHandler
	Insurer        *handler.InsurerHandler
	Reception      *handler.ReceptionHandler
	Insurance      *handler.InsuranceHandler
}

// Middlewares groups the router's middleware.
type Middlewares struct {
	Auth        *middleware.AuthMiddleware
	CORS        *middleware.CORSMiddleware
	AntiForgery *middleware.AntiForgeryMiddleware
	Metrics     *middleware.MetricsMiddleware
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	middlewares    Middlewares
	metricsHandler http.Handler
}

func NewRouter(handlers Handlers, middlewares Middlewares, metricsHandler http.Handler) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		middlewares:    middlewares,
		metricsHandler: metricsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.middlewares.Auth.Authenticate)
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.middlewares.Auth.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/users", h.Auth.CreateUser).Methods(http.MethodPost)

	// Specializations
	admin.HandleFunc("/specializations", h.Specialization.CreateSpecialization).Methods(http.MethodPost)
	admin.HandleFunc("/specializations", h.Specialization.GetAllSpecializations).Methods(http.MethodGet)
	admin.HandleFunc("/specializations/{id:[0-9]+}", h.Specialization.GetSpecialization).Methods(http.MethodGet)
	admin.HandleFunc("/specializations/{id:[0-9]+}", h.Specialization.UpdateSpecialization).Methods(http.MethodPut)
	admin.HandleFunc("/specializations/{id:[0-9]+}", h.Specialization.DeleteSpecialization).Methods(http.MethodDelete)
	admin.HandleFunc("/specializations/{id:[0-9]+}/restore", h.Specialization.RestoreSpecialization).Methods(http.MethodPost)

	// Doctors
	admin.HandleFunc("/doctors", h.Doctor.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", h.Doctor.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/dropdown", h.Doctor.GetDoctorDropdown).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}", h.Doctor.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id:[0-9]+}", h.Doctor.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{id:[0-9]+}/restore", h.Doctor.RestoreDoctor).Methods(http.MethodPost)

	// Doctor departments and service category grants
	admin.HandleFunc("/doctors/{id:[0-9]+}/departments", h.Assignment.AssignDepartment).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id:[0-9]+}/departments", h.Assignment.GetDepartments).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}/departments/transfer", h.Assignment.TransferDepartment).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id:[0-9]+}/departments/{departmentId:[0-9]+}", h.Assignment.RemoveDepartment).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{id:[0-9]+}/service-categories", h.Assignment.GrantServiceCategory).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id:[0-9]+}/service-categories", h.Assignment.GetServiceCategories).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}/service-categories/{categoryId:[0-9]+}", h.Assignment.RevokeServiceCategory).Methods(http.MethodDelete)

	// Assignment history
	admin.HandleFunc("/assignment-history", h.Assignment.GetAllHistory).Methods(http.MethodGet)
	admin.HandleFunc("/assignment-history/{id:[0-9]+}", h.Assignment.GetHistory).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}/assignment-history/stats", h.Assignment.GetHistoryStats).Methods(http.MethodGet)

	// Departments
	admin.HandleFunc("/departments", h.Department.CreateDepartment).Methods(http.MethodPost)
	admin.HandleFunc("/departments", h.Department.GetAllDepartments).Methods(http.MethodGet)
	admin.HandleFunc("/departments/{id:[0-9]+}", h.Department.GetDepartment).Methods(http.MethodGet)
	admin.HandleFunc("/departments/{id:[0-9]+}", h.Department.UpdateDepartment).Methods(http.MethodPut)
	admin.HandleFunc("/departments/{id:[0-9]+}", h.Department.DeleteDepartment).Methods(http.MethodDelete)
	admin.HandleFunc("/departments/{id:[0-9]+}/restore", h.Department.RestoreDepartment).Methods(http.MethodPost)

	// Service catalog
	admin.HandleFunc("/service-categories", h.Catalog.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/service-categories", h.Catalog.GetAllCategories).Methods(http.MethodGet)
	admin.HandleFunc("/service-categories/{id:[0-9]+}", h.Catalog.GetCategory).Methods(http.MethodGet)
	admin.HandleFunc("/service-categories/{id:[0-9]+}", h.Catalog.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/service-categories/{id:[0-9]+}", h.Catalog.DeleteCategory).Methods(http.MethodDelete)
	admin.HandleFunc("/service-categories/{id:[0-9]+}/restore", h.Catalog.RestoreCategory).Methods(http.MethodPost)
	admin.HandleFunc("/services", h.Catalog.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services", h.Catalog.GetAllServices).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id:[0-9]+}", h.Catalog.GetService).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id:[0-9]+}", h.Catalog.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id:[0-9]+}", h.Catalog.DeleteService).Methods(http.MethodDelete)
	admin.HandleFunc("/services/{id:[0-9]+}/restore", h.Catalog.RestoreService).Methods(http.MethodPost)

	// Schedules and slots
	admin.HandleFunc("/schedules", h.Schedule.CreateSchedule).Methods(http.MethodPost)
	admin.HandleFunc("/schedules", h.Schedule.GetAllSchedules).Methods(http.MethodGet)
	admin.HandleFunc("/schedules/{id:[0-9]+}", h.Schedule.GetSchedule).Methods(http.MethodGet)
	admin.HandleFunc("/schedules/{id:[0-9]+}", h.Schedule.UpdateSchedule).Methods(http.MethodPut)
	admin.HandleFunc("/schedules/{id:[0-9]+}", h.Schedule.DeleteSchedule).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{id:[0-9]+}/schedule", h.Schedule.GetDoctorSchedule).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id:[0-9]+}/slots", h.Schedule.GetSlots).Methods(http.MethodGet)

	// Insurers
	admin.HandleFunc("/insurers", h.Insurer.GetInsurers).Methods(http.MethodGet)
	admin.HandleFunc("/insurers", h.Insurer.CreateInsurer).Methods(http.MethodPost)

	// Audit logs
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	// Reception routes (admin or receptionist)
	reception := api.PathPrefix("/reception").Subrouter()
	reception.Use(r.middlewares.Auth.Authenticate)
	reception.Use(middleware.RequireAdminOrReceptionist)

	reception.HandleFunc("/patients/search", h.Reception.SearchPatients).Methods(http.MethodGet)
	reception.HandleFunc("/patients", h.Reception.CreatePatient).Methods(http.MethodPost)
	reception.HandleFunc("/department/load", h.Reception.LoadDepartment).Methods(http.MethodGet)
	reception.HandleFunc("/service/calculate", h.Reception.CalculateServices).Methods(http.MethodPost)
	reception.HandleFunc("/receptions", h.Reception.CreateReception).Methods(http.MethodPost)
	reception.HandleFunc("/receptions", h.Reception.GetAllReceptions).Methods(http.MethodGet)
	reception.HandleFunc("/receptions/{id:[0-9]+}", h.Reception.GetReception).Methods(http.MethodGet)
	reception.HandleFunc("/receptions/{id:[0-9]+}/cancel", h.Reception.CancelReception).Methods(http.MethodPost)
	reception.HandleFunc("/antiforgery", h.Insurance.GetAntiForgeryToken).Methods(http.MethodGet)
	reception.HandleFunc("/insurance/load", h.Insurance.LoadInsurance).Methods(http.MethodGet)
	reception.Handle("/insurance/save", r.middlewares.AntiForgery.Protect(http.HandlerFunc(h.Insurance.SaveInsurance))).Methods(http.MethodPost)

	r.router.Use(r.middlewares.CORS.Handle)
	if r.middlewares.Metrics != nil {
		r.router.Use(r.middlewares.Metrics.Handle)
	}

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}
