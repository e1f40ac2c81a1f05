package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

type FreelancerService interface {
	FindAll(ctx context.Context) ([]models.Freelancer, error)
	FindOne(ctx context.Context, id primitive.ObjectID) (*models.Freelancer, error)
	FilterBySkill(ctx context.Context, skillID primitive.ObjectID) ([]models.Freelancer, error)
	FilterByMinSalary(ctx context.Context, min float64) ([]models.Freelancer, error)
	FilterByMaxSalary(ctx context.Context, max float64) ([]models.Freelancer, error)
	UpdateSalary(ctx context.Context, id primitive.ObjectID, req *dto.UpdateSalaryRequest) error
	AddSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error
	RemoveSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error
}

type FreelancerServiceImpl struct {
	freelancers repositories.FreelancerRepository
	skills      repositories.SkillRepository
	jobs        repositories.JobRepository
	tx          repositories.TxRunner
}

func NewFreelancerService(
	freelancers repositories.FreelancerRepository,
	skills repositories.SkillRepository,
	jobs repositories.JobRepository,
	tx repositories.TxRunner,
) FreelancerService {
	return &FreelancerServiceImpl{
		freelancers: freelancers,
		skills:      skills,
		jobs:        jobs,
		tx:          tx,
	}
}

func (s *FreelancerServiceImpl) FindAll(ctx context.Context) ([]models.Freelancer, error) {
	freelancers, err := s.freelancers.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return freelancers, nil
}

// FindOne returns the freelancer with the rating recomputed from the
// feedback of their finished jobs. A stale stored value is corrected and
// persisted on read.
func (s *FreelancerServiceImpl) FindOne(ctx context.Context, id primitive.ObjectID) (*models.Freelancer, error) {
	freelancer, err := s.freelancers.FindByID(ctx, id)
	if err != nil {
		return nil, mapFreelancerRepoError(err)
	}

	rating, err := s.computeRating(ctx, freelancer)
	if err != nil {
		return nil, err
	}
	if rating != freelancer.Rating {
		if err := s.freelancers.UpdateRating(ctx, id, rating); err != nil {
			logger.CtxWarn(ctx, "failed to persist recomputed rating",
				"freelancer_id", id.Hex(), "error", err)
		}
		freelancer.Rating = rating
	}
	return freelancer, nil
}

func (s *FreelancerServiceImpl) FilterBySkill(ctx context.Context, skillID primitive.ObjectID) ([]models.Freelancer, error) {
	if _, err := s.skills.FindByID(ctx, skillID); err != nil {
		return nil, mapSkillRepoError(err)
	}
	freelancers, err := s.freelancers.FindBySkill(ctx, skillID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return freelancers, nil
}

func (s *FreelancerServiceImpl) FilterByMinSalary(ctx context.Context, min float64) ([]models.Freelancer, error) {
	if min < 0 {
		return nil, apperrors.InvalidArgument("freelancer", "salary bound must not be negative")
	}
	freelancers, err := s.freelancers.FindByMinSalary(ctx, min)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return freelancers, nil
}

func (s *FreelancerServiceImpl) FilterByMaxSalary(ctx context.Context, max float64) ([]models.Freelancer, error) {
	if max < 0 {
		return nil, apperrors.InvalidArgument("freelancer", "salary bound must not be negative")
	}
	freelancers, err := s.freelancers.FindByMaxSalary(ctx, max)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return freelancers, nil
}

func (s *FreelancerServiceImpl) UpdateSalary(ctx context.Context, id primitive.ObjectID, req *dto.UpdateSalaryRequest) error {
	if err := s.freelancers.UpdateSalary(ctx, id, *req.Salary); err != nil {
		return mapFreelancerRepoError(err)
	}
	return nil
}

// AddSkill links the skill on both sides so skill-based discovery works from
// either direction.
func (s *FreelancerServiceImpl) AddSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error {
	if _, err := s.freelancers.FindByID(ctx, freelancerID); err != nil {
		return mapFreelancerRepoError(err)
	}
	if _, err := s.skills.FindByID(ctx, skillID); err != nil {
		return mapSkillRepoError(err)
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.freelancers.AddSkill(ctx, freelancerID, skillID); err != nil {
			return err
		}
		return s.skills.AddFreelancer(ctx, skillID, freelancerID)
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *FreelancerServiceImpl) RemoveSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error {
	if _, err := s.freelancers.FindByID(ctx, freelancerID); err != nil {
		return mapFreelancerRepoError(err)
	}
	if _, err := s.skills.FindByID(ctx, skillID); err != nil {
		return mapSkillRepoError(err)
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.freelancers.RemoveSkill(ctx, freelancerID, skillID); err != nil {
			return err
		}
		return s.skills.RemoveFreelancer(ctx, skillID, freelancerID)
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// computeRating averages the feedback rates across finished jobs. Jobs
// without feedback do not count. No rated jobs means rating zero.
func (s *FreelancerServiceImpl) computeRating(ctx context.Context, freelancer *models.Freelancer) (float64, error) {
	if len(freelancer.FinishJobs) == 0 {
		return 0, nil
	}
	jobs, err := s.jobs.FindByIDs(ctx, freelancer.FinishJobs)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}

	var sum, count float64
	for i := range jobs {
		if jobs[i].Feedback != nil {
			sum += float64(jobs[i].Feedback.Rate)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

func mapFreelancerRepoError(err error) error {
	if errors.Is(err, repositories.ErrFreelancerNotFound) {
		return apperrors.NotFound("freelancer", "freelancer not found")
	}
	return apperrors.DatabaseError(err)
}

func mapSkillRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrSkillNotFound):
		return apperrors.NotFound("skill", "skill not found")
	case errors.Is(err, repositories.ErrSkillNameTaken):
		return apperrors.AlreadyExists("skill", "skill name already exists")
	default:
		return apperrors.DatabaseError(err)
	}
}
