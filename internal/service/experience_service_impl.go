package service

import (
	"context"
	"time"

	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/alexanderramin/evaluador/internal/repository"
)

type experienceService struct {
	experiences repository.ExperienceRepo
	observer    UseCaseObserver
}

func NewExperienceService(experiences repository.ExperienceRepo, observers ...UseCaseObserver) ExperienceService {
	return &experienceService{experiences: experiences, observer: joinObservers(observers)}
}

func (s *experienceService) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	start := time.Now()
	list, err := s.experiences.List(ctx)
	observe(ctx, s.observer, "experience.list", start, err, map[string]any{"count": len(list)})
	return list, err
}

func (s *experienceService) GetExperience(ctx context.Context, id int) (*domain.Experience, error) {
	return s.experiences.GetByID(ctx, id)
}
