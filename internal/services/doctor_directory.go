package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthsync/healthsync/internal/cache"
	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/providers/llm"
)

const (
	directoryCacheKey = "doctor_directory"
	directoryCacheTTL = time.Hour
)

// DoctorDirectory serves the doctor list: cached, else model-generated, else
// the static fallback. The fallback is the availability floor; GetDoctorList
// never returns an empty list.
type DoctorDirectory interface {
	GetDoctorList(ctx context.Context) ([]models.Doctor, error)
}

type doctorDirectory struct {
	gen   llm.Generator
	cache cache.Cache // may be nil
	log   *logrus.Logger
}

func NewDoctorDirectory(gen llm.Generator, c cache.Cache, log *logrus.Logger) DoctorDirectory {
	return &doctorDirectory{gen: gen, cache: c, log: log}
}

func (d *doctorDirectory) GetDoctorList(ctx context.Context) ([]models.Doctor, error) {
	if d.cache != nil {
		var cached []models.Doctor
		hit, err := d.cache.GetJSON(ctx, directoryCacheKey, &cached)
		if err != nil {
			d.log.WithError(err).Warn("directory cache read failed")
		}
		if hit && len(cached) > 0 {
			return cached, nil
		}
	}

	doctors, err := d.generate(ctx)
	if err != nil {
		d.log.WithError(err).Warn("doctor list generation failed; using fallback directory")
		return FallbackDoctors(), nil
	}

	if d.cache != nil {
		if err := d.cache.SetJSON(ctx, directoryCacheKey, doctors, directoryCacheTTL); err != nil {
			d.log.WithError(err).Warn("directory cache write failed")
		}
	}
	return doctors, nil
}

func (d *doctorDirectory) generate(ctx context.Context) ([]models.Doctor, error) {
	raw, err := d.gen.Generate(ctx, DirectoryPrompt())
	if err != nil {
		return nil, err
	}

	var dir models.DoctorDirectory
	if err := json.Unmarshal(raw, &dir); err != nil {
		return nil, err
	}
	if len(dir.Doctors) == 0 {
		return nil, errEmptyDirectory
	}
	return dir.Doctors, nil
}

var errEmptyDirectory = errors.New("directory reply has no doctors")

// FallbackDoctors is the deterministic built-in directory used when dynamic
// generation is unavailable.
func FallbackDoctors() []models.Doctor {
	return []models.Doctor{
		{
			Name:      "Dr. Jane Smith",
			Specialty: "General Practitioner",
			Contact:   "555-1234",
			Location:  "Central Medical Center",
		},
		{
			Name:      "Dr. John Johnson",
			Specialty: "Cardiologist",
			Contact:   "555-5678",
			Location:  "Heart Health Clinic",
		},
		{
			Name:      "Dr. Sarah Williams",
			Specialty: "Dermatologist",
			Contact:   "555-9012",
			Location:  "Skin Care Center",
		},
	}
}
