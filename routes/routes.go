package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/deanmccauley/electrician-job-book/handlers"
	"github.com/deanmccauley/electrician-job-book/middleware"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(api *handlers.API) http.Handler {
	r := mux.NewRouter()

	// Public routes (no authentication)
	r.HandleFunc("/register", api.Register).Methods("POST")
	r.HandleFunc("/login", api.Login).Methods("POST")
	if !api.Cfg.UseGCS {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(api.Cfg.UploadDir))),
		)
	}

	// Protected API routes (require JWT authentication)
	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.Use(middleware.JWTMiddleware)
	v1.Use(middleware.RequestLogger)

	v1.HandleFunc("/profile", api.Profile).Methods("GET")

	// Jobs
	v1.HandleFunc("/jobs", api.ListJobs).Methods("GET")
	v1.HandleFunc("/jobs", api.CreateJob).Methods("POST")
	v1.HandleFunc("/jobs/{id:[0-9]+}", api.GetJob).Methods("GET")
	v1.HandleFunc("/jobs/{id:[0-9]+}", api.UpdateJob).Methods("PUT")
	v1.HandleFunc("/jobs/{id:[0-9]+}", api.DeleteJob).Methods("DELETE")

	// Photos
	v1.HandleFunc("/jobs/{id:[0-9]+}/photos", api.ListJobPhotos).Methods("GET")
	v1.HandleFunc("/jobs/{id:[0-9]+}/photos", api.UploadJobPhotos).Methods("POST")
	v1.HandleFunc("/jobs/{id:[0-9]+}/photos/{photoId:[0-9]+}", api.DeleteJobPhoto).Methods("DELETE")

	// Reports and exports; all honor the same filter query parameters.
	v1.HandleFunc("/report", api.GetReport).Methods("GET")
	v1.HandleFunc("/report/pdf", api.ExportReportPDF).Methods("GET")
	v1.HandleFunc("/report/excel", api.ExportJobsExcel).Methods("GET")
	v1.HandleFunc("/report/csv", api.ExportReportCSV).Methods("GET")

	return r
}
