package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/deanmccauley/electrician-job-book/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20240319_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Job{}, &models.JobPhoto{})
			},
		},
		{
			ID: "20240319_job_photos_cascade",
			Migrate: func(tx *gorm.DB) error {
				// AutoMigrate does not retrofit the FK on existing installs.
				return tx.Exec(`ALTER TABLE job_photos
					DROP CONSTRAINT IF EXISTS fk_jobs_photos,
					ADD CONSTRAINT fk_jobs_photos
					FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE`).Error
			},
		},
		{
			ID: "20240402_jobs_listing_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_jobs_user_date
					ON jobs (user_id, job_date DESC)`).Error
			},
		},
	})
	return m.Migrate()
}
