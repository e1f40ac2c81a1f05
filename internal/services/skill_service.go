package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

type SkillService interface {
	Create(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error)
	FindAll(ctx context.Context) ([]models.Skill, error)
	FindOne(ctx context.Context, id primitive.ObjectID) (*models.Skill, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SkillServiceImpl struct {
	skills      repositories.SkillRepository
	jobs        repositories.JobRepository
	freelancers repositories.FreelancerRepository
	tx          repositories.TxRunner
}

func NewSkillService(
	skills repositories.SkillRepository,
	jobs repositories.JobRepository,
	freelancers repositories.FreelancerRepository,
	tx repositories.TxRunner,
) SkillService {
	return &SkillServiceImpl{
		skills:      skills,
		jobs:        jobs,
		freelancers: freelancers,
		tx:          tx,
	}
}

func (s *SkillServiceImpl) Create(ctx context.Context, req *dto.CreateSkillRequest) (*models.Skill, error) {
	skill := &models.Skill{Name: req.Name}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, mapSkillRepoError(err)
	}
	return skill, nil
}

func (s *SkillServiceImpl) FindAll(ctx context.Context) ([]models.Skill, error) {
	skills, err := s.skills.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return skills, nil
}

func (s *SkillServiceImpl) FindOne(ctx context.Context, id primitive.ObjectID) (*models.Skill, error) {
	skill, err := s.skills.FindByID(ctx, id)
	if err != nil {
		return nil, mapSkillRepoError(err)
	}
	return skill, nil
}

// Delete removes the skill and unlinks it from every job and freelancer that
// references it, all inside one transaction.
func (s *SkillServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	skill, err := s.skills.FindByID(ctx, id)
	if err != nil {
		return mapSkillRepoError(err)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, jobID := range skill.Jobs {
			if err := s.jobs.RemoveSkill(ctx, jobID, id); err != nil {
				return err
			}
		}
		for _, freelancerID := range skill.Freelancers {
			if err := s.freelancers.RemoveSkill(ctx, freelancerID, id); err != nil {
				return err
			}
		}
		return s.skills.Delete(ctx, id)
	})
	if err != nil {
		return mapSkillRepoError(err)
	}

	logger.CtxInfo(ctx, "skill deleted", "skill_id", id.Hex(), "name", skill.Name)
	return nil
}
