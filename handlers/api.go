package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/deanmccauley/electrician-job-book/config"
	"github.com/deanmccauley/electrician-job-book/middleware"
	"github.com/deanmccauley/electrician-job-book/models"
	"github.com/deanmccauley/electrician-job-book/pkg/blob"
)

// API bundles the collaborators every handler needs. The DB handle and
// blob store are injected here instead of living in package globals.
type API struct {
	DB   *gorm.DB
	Blob blob.Store
	Cfg  config.Config
}

func NewAPI(db *gorm.DB, store blob.Store, cfg config.Config) *API {
	return &API{DB: db, Blob: store, Cfg: cfg}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeValidationErrors surfaces field-level problems inline; nothing was
// written to the store.
func writeValidationErrors(w http.ResponseWriter, errs models.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
}

func pathID(r *http.Request, key string) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[key], 10, 64)
}

// ownedJob fetches a job scoped to the caller. A job that does not exist
// and a job owned by someone else are indistinguishable to the caller.
func (a *API) ownedJob(r *http.Request, id uint64) (*models.Job, error) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		return nil, errUnauthenticated
	}
	var job models.Job
	err := a.DB.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

var errUnauthenticated = errors.New("unauthenticated")

// jobError maps lookup failures to the right status code.
func jobError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errUnauthenticated):
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "record not found", http.StatusNotFound)
	default:
		http.Error(w, "store error, please retry", http.StatusInternalServerError)
	}
}
