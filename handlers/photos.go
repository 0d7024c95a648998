package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/deanmccauley/electrician-job-book/middleware"
	"github.com/deanmccauley/electrician-job-book/models"
	"github.com/deanmccauley/electrician-job-book/pkg/blob"
)

const maxUploadBytes = 50 << 20

// uploadResult reports one file of a batch; a failed file never aborts the
// rest of the batch.
type uploadResult struct {
	FileName string           `json:"fileName"`
	Photo    *models.JobPhoto `json:"photo,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func (a *API) ListJobPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}
	if _, err := a.ownedJob(r, id); err != nil {
		jobError(w, err)
		return
	}

	var photos []models.JobPhoto
	if err := a.DB.WithContext(r.Context()).
		Where("job_id = ?", id).
		Order("created_at DESC").
		Find(&photos).Error; err != nil {
		http.Error(w, "store error, please retry", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

// UploadJobPhotos accepts a multipart batch. Each file is stored first,
// then its reference row is inserted; if the insert fails the object is
// already durable, so we log the orphan and report the file as failed
// rather than guessing at a rollback.
func (a *API) UploadJobPhotos(w http.ResponseWriter, r *http.Request) {
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
	userID, _ := middleware.GetUserID(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		files = r.MultipartForm.File["file"]
	}
	if len(files) == 0 {
		http.Error(w, "no files in request", http.StatusBadRequest)
		return
	}

	results := make([]uploadResult, 0, len(files))
	for _, header := range files {
		result := uploadResult{FileName: header.Filename}

		src, err := header.Open()
		if err != nil {
			result.Error = "could not read file"
			results = append(results, result)
			continue
		}

		path := fmt.Sprintf("%d/%s%s", job.ID, uuid.NewString(), filepath.Ext(header.Filename))
		contentType := header.Header.Get("Content-Type")
		url, err := a.Blob.Put(r.Context(), path, src, contentType)
		src.Close()
		if err != nil {
			result.Error = "upload failed: " + err.Error()
			results = append(results, result)
			continue
		}

		photo := models.JobPhoto{JobID: job.ID, UserID: userID, URL: url}
		if err := a.DB.WithContext(r.Context()).Create(&photo).Error; err != nil {
			log.Printf("[UPLOAD] orphaned object %s: reference insert failed: %v", path, err)
			result.Error = "could not save photo reference"
			results = append(results, result)
			continue
		}

		result.Photo = &photo
		results = append(results, result)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// DeleteJobPhoto removes the stored object and the reference row. Both are
// attempted even if the first fails; any failure is reported so the client
// never believes a half-done deletion succeeded.
func (a *API) DeleteJobPhoto(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}
	photoID, err := pathID(r, "photoId")
	if err != nil {
		http.Error(w, "invalid photo id", http.StatusBadRequest)
		return
	}
	userID, ok := middleware.GetUserID(r)
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var photo models.JobPhoto
	err = a.DB.WithContext(r.Context()).
		Where("id = ? AND job_id = ? AND user_id = ?", photoID, jobID, userID).
		First(&photo).Error
	if err != nil {
		jobError(w, err)
		return
	}

	var blobErr error
	if path := blob.ObjectPathFromURL(photo.URL); path != "" {
		blobErr = a.Blob.Delete(r.Context(), path)
		if blobErr != nil {
			log.Printf("[UPLOAD] delete object for photo %d: %v", photo.ID, blobErr)
		}
	}

	rowErr := a.DB.WithContext(r.Context()).Delete(&photo).Error
	if rowErr != nil {
		log.Printf("[UPLOAD] delete reference row for photo %d: %v", photo.ID, rowErr)
	}

	if blobErr != nil || rowErr != nil {
		http.Error(w, "photo deletion incomplete, please retry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
