package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/deanmccauley/electrician-job-book/config"
	"github.com/deanmccauley/electrician-job-book/handlers"
	"github.com/deanmccauley/electrician-job-book/pkg/blob"
	"github.com/deanmccauley/electrician-job-book/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	cfg := config.Load()

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	if err := config.Migrations(db); err != nil {
		log.Fatalf("could not run migrations: %v", err)
	}

	store, err := blob.FromConfig(cfg)
	if err != nil {
		log.Fatalf("could not set up blob storage: %v", err)
	}

	api := handlers.NewAPI(db, store, cfg)
	handler := enableCORS(routes.RegisterRoutes(api))

	log.Println("Server starting at port", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
