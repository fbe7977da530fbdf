package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mufattish/backend/internal/logger"
	"github.com/mufattish/backend/internal/repos"
	"github.com/mufattish/backend/internal/types"
)

type SchoolService interface {
	GetProfile(ctx context.Context) (*types.SchoolProfile, error)
	UpdateProfile(ctx context.Context, name, district string, tamazightTaught bool) (*types.SchoolProfile, error)
}

type schoolService struct {
	db         *gorm.DB
	log        *logger.Logger
	schoolRepo repos.SchoolProfileRepo
}

func NewSchoolService(db *gorm.DB, log *logger.Logger, schoolRepo repos.SchoolProfileRepo) SchoolService {
	serviceLog := log.With("service", "SchoolService")
	return &schoolService{db: db, log: serviceLog, schoolRepo: schoolRepo}
}

// GetProfile returns the configured profile, or a default one (Tamazight
// taught) when the deployment never saved any.
func (s *schoolService) GetProfile(ctx context.Context) (*types.SchoolProfile, error) {
	profile, err := s.schoolRepo.Get(ctx, nil)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &types.SchoolProfile{TamazightTaught: true}, nil
	}
	return profile, nil
}

func (s *schoolService) UpdateProfile(ctx context.Context, name, district string, tamazightTaught bool) (*types.SchoolProfile, error) {
	profile := &types.SchoolProfile{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(name),
		District:        strings.TrimSpace(district),
		TamazightTaught: tamazightTaught,
	}
	return s.schoolRepo.Upsert(ctx, nil, profile)
}
