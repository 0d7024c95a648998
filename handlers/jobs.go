package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/deanmccauley/electrician-job-book/middleware"
	"github.com/deanmccauley/electrician-job-book/models"
	"github.com/deanmccauley/electrician-job-book/pkg/blob"
)

type jobListResponse struct {
	Jobs    []models.Job `json:"jobs"`
	Count   int          `json:"count"`
	Filters string       `json:"filters,omitempty"`
}

// ListJobs returns the caller's jobs, newest first, narrowed by the filter
// query parameters.
func (a *API) ListJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	spec := models.ParseFilterSpec(r.URL.Query())
	query := models.BuildJobQuery(spec, userID, models.SortDescending)

	var jobs []models.Job
	if err := query.Apply(a.DB.WithContext(r.Context()).Model(&models.Job{})).Find(&jobs).Error; err != nil {
		http.Error(w, "store error, please retry", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, jobListResponse{
		Jobs:    jobs,
		Count:   len(jobs),
		Filters: spec.Description(),
	})
}

func (a *API) CreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	job.ID = 0
	job.UserID = userID
	job.Photos = nil
	job.ApplyDefaults()

	var verrs models.ValidationErrors
	if err := job.Validate(); errors.As(err, &verrs) {
		writeValidationErrors(w, verrs)
		return
	}

	if err := a.DB.WithContext(r.Context()).Create(&job).Error; err != nil {
		http.Error(w, "could not save job, please retry", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (a *API) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}
	userID, ok := middleware.GetUserID(r)
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var job models.Job
	err = a.DB.WithContext(r.Context()).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&job).Error
	if err != nil {
		jobError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (a *API) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}
	job, err := a.ownedJob(r, id)
	if err != nil {
		jobError(w, err)
		return
	}

	// Decode over the stored row, then restore the immutable fields so a
	// payload cannot move a job to another owner or rewrite history.
	owner, created := job.UserID, job.CreatedAt
	if err := json.NewDecoder(r.Body).Decode(job); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	job.ID = id
	job.UserID = owner
	job.CreatedAt = created
	job.Photos = nil
	job.ApplyDefaults()

	var verrs models.ValidationErrors
	if err := job.Validate(); errors.As(err, &verrs) {
		writeValidationErrors(w, verrs)
		return
	}

	if err := a.DB.WithContext(r.Context()).Save(job).Error; err != nil {
		http.Error(w, "could not save job, please retry", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// DeleteJob hard-deletes a job and its photo reference rows in one
// transaction, then removes the stored photo objects best-effort. An
// object that outlives its rows is logged, never fatal.
func (a *API) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}
	userID, ok := middleware.GetUserID(r)
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var photos []models.JobPhoto
	if err := a.DB.WithContext(r.Context()).
		Where("job_id = ? AND user_id = ?", id, userID).
		Find(&photos).Error; err != nil {
		http.Error(w, "store error, please retry", http.StatusInternalServerError)
		return
	}

	var deleted int64
	err = a.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ? AND user_id = ?", id, userID).
			Delete(&models.JobPhoto{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Job{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		http.Error(w, "could not delete job, please retry", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	for _, p := range photos {
		path := blob.ObjectPathFromURL(p.URL)
		if path == "" {
			continue
		}
		if err := a.Blob.Delete(r.Context(), path); err != nil {
			log.Printf("[UPLOAD] orphaned object %s after job %d delete: %v", path, id, err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
