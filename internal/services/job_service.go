package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/email"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

// Actor is the authenticated caller as resolved by the handlers. Profile ids
// are set according to the role.
type Actor struct {
	UserID       primitive.ObjectID
	Role         models.UserRole
	CustomerID   *primitive.ObjectID
	FreelancerID *primitive.ObjectID
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

type JobService interface {
	Create(ctx context.Context, actor Actor, req *dto.CreateJobRequest) (*models.Job, error)
	Update(ctx context.Context, actor Actor, jobID primitive.ObjectID, req *dto.UpdateJobRequest) (*models.Job, error)
	FindAll(ctx context.Context) ([]models.Job, error)
	FindOne(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	FindByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Job, error)
	AddSkills(ctx context.Context, actor Actor, jobID primitive.ObjectID, req *dto.AddSkillsRequest) error
	RemoveSkill(ctx context.Context, actor Actor, jobID, skillID primitive.ObjectID) error
	RequestFreelancer(ctx context.Context, actor Actor, jobID primitive.ObjectID) error
	DeleteFreelancerRequest(ctx context.Context, actor Actor, jobID, freelancerID primitive.ObjectID) error
	AssignFreelancer(ctx context.Context, actor Actor, jobID, freelancerID primitive.ObjectID) error
	UpdateStatus(ctx context.Context, actor Actor, jobID primitive.ObjectID, status models.JobStatus) error
	AddFeedback(ctx context.Context, actor Actor, jobID primitive.ObjectID, req *dto.JobFeedbackRequest) error
	ToggleBlock(ctx context.Context, jobID primitive.ObjectID) error
	Remove(ctx context.Context, actor Actor, jobID primitive.ObjectID) error
}

type JobServiceImpl struct {
	jobs        repositories.JobRepository
	customers   repositories.CustomerRepository
	freelancers repositories.FreelancerRepository
	skills      repositories.SkillRepository
	users       repositories.UserRepository
	tx          repositories.TxRunner
	notifier    *Notifier
}

func NewJobService(
	jobs repositories.JobRepository,
	customers repositories.CustomerRepository,
	freelancers repositories.FreelancerRepository,
	skills repositories.SkillRepository,
	users repositories.UserRepository,
	tx repositories.TxRunner,
	notifier *Notifier,
) JobService {
	return &JobServiceImpl{
		jobs:        jobs,
		customers:   customers,
		freelancers: freelancers,
		skills:      skills,
		users:       users,
		tx:          tx,
		notifier:    notifier,
	}
}

// Create posts a new job for the actor's customer profile. Every referenced
// skill must resolve; the job is linked into the customer's jobs and each
// skill's jobs inside one transaction.
func (s *JobServiceImpl) Create(ctx context.Context, actor Actor, req *dto.CreateJobRequest) (*models.Job, error) {
	if actor.CustomerID == nil {
		return nil, apperrors.Forbidden("job", "only customers can post jobs")
	}
	customerID := *actor.CustomerID
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, mapCustomerRepoError(err)
	}

	skillIDs, err := parseObjectIDs(req.Skills)
	if err != nil {
		return nil, apperrors.InvalidArgument("job", "invalid skill id")
	}
	if err := s.resolveSkills(ctx, skillIDs); err != nil {
		return nil, err
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      models.JobStatusStart,
		CustomerID:  customerID,
		Skills:      skillIDs,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.jobs.Create(ctx, job); err != nil {
			return err
		}
		if err := s.customers.AddJob(ctx, customerID, job.ID); err != nil {
			return err
		}
		for _, skillID := range skillIDs {
			if err := s.skills.AddJob(ctx, skillID, job.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "job created", "job_id", job.ID.Hex(), "customer_id", customerID.Hex())
	return job, nil
}

func (s *JobServiceImpl) Update(ctx context.Context, actor Actor, jobID primitive.ObjectID, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownedJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Title != nil {
		job.Title = *req.Title
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
		fields["description"] = *req.Description
	}
	if req.Deadline != nil {
		job.Deadline = *req.Deadline
		fields["deadline"] = *req.Deadline
	}
	if len(fields) == 0 {
		return job, nil
	}

	if err := s.jobs.UpdateDetails(ctx, jobID, fields); err != nil {
		return nil, mapJobRepoError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) FindAll(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobs.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return jobs, nil
}

func (s *JobServiceImpl) FindOne(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, mapJobRepoError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) FindByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	if !status.Valid() {
		return nil, apperrors.InvalidArgument("job", "status must be 0, 1 or 2")
	}
	jobs, err := s.jobs.FindByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return jobs, nil
}

// FindByUser resolves the jobs visible from a user's perspective: a
// customer's posted jobs, a freelancer's assigned jobs.
func (s *JobServiceImpl) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Job, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserRepoError(err)
	}

	switch {
	case user.CustomerID != nil:
		jobs, err := s.jobs.FindByCustomer(ctx, *user.CustomerID)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		return jobs, nil
	case user.FreelancerID != nil:
		jobs, err := s.jobs.FindByFreelancer(ctx, *user.FreelancerID)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		return jobs, nil
	default:
		return []models.Job{}, nil
	}
}

func (s *JobServiceImpl) AddSkills(ctx context.Context, actor Actor, jobID primitive.ObjectID, req *dto.AddSkillsRequest) error {
	if _, err := s.ownedJob(ctx, actor, jobID); err != nil {
		return err
	}

	skillIDs, err := parseObjectIDs(req.Skills)
	if err != nil {
		return apperrors.InvalidArgument("job", "invalid skill id")
	}
	if err := s.resolveSkills(ctx, skillIDs); err != nil {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, skillID := range skillIDs {
			if err := s.jobs.AddSkill(ctx, jobID, skillID); err != nil {
				return err
			}
			if err := s.skills.AddJob(ctx, skillID, jobID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *JobServiceImpl) RemoveSkill(ctx context.Context, actor Actor, jobID, skillID primitive.ObjectID) error {
	if _, err := s.ownedJob(ctx, actor, jobID); err != nil {
		return err
	}
	if _, err := s.skills.FindByID(ctx, skillID); err != nil {
		return mapSkillRepoError(err)
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.jobs.RemoveSkill(ctx, jobID, skillID); err != nil {
			return err
		}
		return s.skills.RemoveJob(ctx, skillID, jobID)
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// RequestFreelancer files the actor's application for the job. Blocked jobs
// do not take applications; neither do jobs with an assigned freelancer.
func (s *JobServiceImpl) RequestFreelancer(ctx context.Context, actor Actor, jobID primitive.ObjectID) error {
	if actor.FreelancerID == nil {
		return apperrors.Forbidden("job", "only freelancers can apply to jobs")
	}
	freelancerID := *actor.FreelancerID

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return mapJobRepoError(err)
	}
	if job.IsBlock {
		return apperrors.InvalidState("job", "job is blocked")
	}
	if job.Assigned() {
		return apperrors.Conflict("job", "job already has an assigned freelancer")
	}
	if job.HasRequest(freelancerID) {
		return apperrors.Conflict("job", "application already filed")
	}
	if _, err := s.freelancers.FindByID(ctx, freelancerID); err != nil {
		return mapFreelancerRepoError(err)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.jobs.AddRequest(ctx, jobID, freelancerID); err != nil {
			return err
		}
		return s.freelancers.AddRequestJob(ctx, freelancerID, jobID)
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// DeleteFreelancerRequest withdraws one pending application. A freelancer
// may withdraw only their own; the owning customer and admins may reject any.
func (s *JobServiceImpl) DeleteFreelancerRequest(ctx context.Context, actor Actor, jobID, freelancerID primitive.ObjectID) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return mapJobRepoError(err)
	}
	if !job.HasRequest(freelancerID) {
		return apperrors.NotFound("job", "no application from this freelancer")
	}

	ownWithdrawal := actor.FreelancerID != nil && *actor.FreelancerID == freelancerID
	owner := actor.CustomerID != nil && *actor.CustomerID == job.CustomerID
	if !ownWithdrawal && !owner && !actor.IsAdmin() {
		return apperrors.ErrInsufficientPermissions
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.jobs.RemoveRequest(ctx, jobID, freelancerID); err != nil {
			return err
		}
		return s.freelancers.RemoveRequestJob(ctx, freelancerID, jobID)
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}

	if !ownWithdrawal {
		s.notifyFreelancers(ctx, []primitive.ObjectID{freelancerID}, "Application update", email.TemplateRequestRejected, job.Title)
	}
	return nil
}

// AssignFreelancer picks one applicant. Assignment clears the request list on
// the job and removes the job from every applicant's pending list; the job is
// appended to the chosen freelancer's jobs. Reassigning an already-assigned
// job is rejected.
func (s *JobServiceImpl) AssignFreelancer(ctx context.Context, actor Actor, jobID, freelancerID primitive.ObjectID) error {
	job, err := s.ownedJob(ctx, actor, jobID)
	if err != nil {
		return err
	}
	if job.Assigned() {
		return apperrors.Conflict("job", "job already has an assigned freelancer")
	}
	if _, err := s.freelancers.FindByID(ctx, freelancerID); err != nil {
		return mapFreelancerRepoError(err)
	}

	rejected := make([]primitive.ObjectID, 0, len(job.RequestFreelancers))
	for _, id := range job.RequestFreelancers {
		if id != freelancerID {
			rejected = append(rejected, id)
		}
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.jobs.SetFreelancer(ctx, jobID, freelancerID); err != nil {
			return err
		}
		if err := s.jobs.ClearRequests(ctx, jobID); err != nil {
			return err
		}
		for _, id := range job.RequestFreelancers {
			if err := s.freelancers.RemoveRequestJob(ctx, id, jobID); err != nil {
				return err
			}
		}
		return s.freelancers.AddJob(ctx, freelancerID, jobID)
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}

	s.notifyFreelancers(ctx, []primitive.ObjectID{freelancerID}, "You have been assigned", email.TemplateJobAssigned, job.Title)
	s.notifyFreelancers(ctx, rejected, "Application update", email.TemplateRequestRejected, job.Title)

	logger.CtxInfo(ctx, "freelancer assigned",
		"job_id", jobID.Hex(), "freelancer_id", freelancerID.Hex())
	return nil
}

// UpdateStatus advances the job through START, IN_PROGRESS, END. Transitions
// never go backward; skipping forward is allowed. Reaching END records the
// job in the assigned freelancer's finished list.
func (s *JobServiceImpl) UpdateStatus(ctx context.Context, actor Actor, jobID primitive.ObjectID, status models.JobStatus) error {
	if !status.Valid() {
		return apperrors.InvalidArgument("job", "status must be 0, 1 or 2")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return mapJobRepoError(err)
	}
	// The owning customer, the assigned freelancer and admins may move a job
	// through its lifecycle.
	assigned := actor.FreelancerID != nil && job.FreelancerID != nil && *actor.FreelancerID == *job.FreelancerID
	owner := actor.CustomerID != nil && *actor.CustomerID == job.CustomerID
	if !actor.IsAdmin() && !owner && !assigned {
		return apperrors.ErrInsufficientPermissions
	}
	if status < job.Status {
		return apperrors.InvalidState("job", "status cannot move backward")
	}
	if status == job.Status {
		return nil
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.jobs.SetStatus(ctx, jobID, status); err != nil {
			return err
		}
		if status == models.JobStatusEnd && job.Assigned() {
			return s.freelancers.AddFinishJob(ctx, *job.FreelancerID, jobID)
		}
		return nil
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// AddFeedback stores the customer's rating. Only the owning customer may
// leave feedback, and only once the job has ended.
func (s *JobServiceImpl) AddFeedback(ctx context.Context, actor Actor, jobID primitive.ObjectID, req *dto.JobFeedbackRequest) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return mapJobRepoError(err)
	}
	if actor.CustomerID == nil || *actor.CustomerID != job.CustomerID {
		return apperrors.Forbidden("job", "only the job's customer can leave feedback")
	}
	if job.Status != models.JobStatusEnd {
		return apperrors.InvalidState("job", "feedback requires a finished job")
	}

	feedback := &models.Feedback{Rate: *req.Rate, Text: req.Text}
	if err := s.jobs.SetFeedback(ctx, jobID, feedback); err != nil {
		return mapJobRepoError(err)
	}
	return nil
}

// ToggleBlock flips moderation visibility and moves the job between the
// customer's active and blocked lists. Jobs with an assigned freelancer
// cannot be blocked.
func (s *JobServiceImpl) ToggleBlock(ctx context.Context, jobID primitive.ObjectID) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return mapJobRepoError(err)
	}
	if job.Assigned() {
		return apperrors.Conflict("job", "cannot block a job with an assigned freelancer")
	}

	blocked := !job.IsBlock
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.jobs.SetBlock(ctx, jobID, blocked); err != nil {
			return err
		}
		if blocked {
			if err := s.customers.RemoveJob(ctx, job.CustomerID, jobID); err != nil {
				return err
			}
			return s.customers.AddBlockedJob(ctx, job.CustomerID, jobID)
		}
		if err := s.customers.RemoveBlockedJob(ctx, job.CustomerID, jobID); err != nil {
			return err
		}
		return s.customers.AddJob(ctx, job.CustomerID, jobID)
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}

	s.notifyCustomer(ctx, job.CustomerID, job.Title, blocked)
	logger.CtxInfo(ctx, "job block toggled", "job_id", jobID.Hex(), "blocked", blocked)
	return nil
}

// Remove deletes the job while it is still open: status START and no
// freelancer assigned. The cascade unlinks the job from its customer, every
// referenced skill and every requesting freelancer.
func (s *JobServiceImpl) Remove(ctx context.Context, actor Actor, jobID primitive.ObjectID) error {
	job, err := s.ownedJob(ctx, actor, jobID)
	if err != nil {
		return err
	}
	if job.Status != models.JobStatusStart {
		return apperrors.InvalidState("job", "only open jobs can be deleted")
	}
	if job.Assigned() {
		return apperrors.InvalidState("job", "cannot delete a job with an assigned freelancer")
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if job.IsBlock {
			if err := s.customers.RemoveBlockedJob(ctx, job.CustomerID, jobID); err != nil {
				return err
			}
		} else {
			if err := s.customers.RemoveJob(ctx, job.CustomerID, jobID); err != nil {
				return err
			}
		}
		for _, skillID := range job.Skills {
			if err := s.skills.RemoveJob(ctx, skillID, jobID); err != nil {
				return err
			}
		}
		for _, freelancerID := range job.RequestFreelancers {
			if err := s.freelancers.RemoveRequestJob(ctx, freelancerID, jobID); err != nil {
				return err
			}
		}
		return s.jobs.Delete(ctx, jobID)
	})
	if err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "job removed", "job_id", jobID.Hex())
	return nil
}

// ownedJob loads the job and checks the actor may manage it: the owning
// customer or an admin.
func (s *JobServiceImpl) ownedJob(ctx context.Context, actor Actor, jobID primitive.ObjectID) (*models.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, mapJobRepoError(err)
	}
	if actor.IsAdmin() {
		return job, nil
	}
	if actor.CustomerID == nil || *actor.CustomerID != job.CustomerID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return job, nil
}

func (s *JobServiceImpl) resolveSkills(ctx context.Context, skillIDs []primitive.ObjectID) error {
	if len(skillIDs) == 0 {
		return nil
	}
	skills, err := s.skills.FindByIDs(ctx, skillIDs)
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if len(skills) != len(skillIDs) {
		return apperrors.NotFound("skill", "one or more skills not found")
	}
	return nil
}

// notifyFreelancers queues a job-related email for each freelancer's account
// address. Lookups run outside any transaction; a missing profile is skipped.
func (s *JobServiceImpl) notifyFreelancers(ctx context.Context, freelancerIDs []primitive.ObjectID, subject, template, jobTitle string) {
	notes := make([]Notification, 0, len(freelancerIDs))
	for _, id := range freelancerIDs {
		freelancer, err := s.freelancers.FindByID(ctx, id)
		if err != nil {
			continue
		}
		user, err := s.users.FindByID(ctx, freelancer.UserID)
		if err != nil {
			continue
		}
		notes = append(notes, Notification{
			To:       []string{user.Email},
			Subject:  subject,
			Template: template,
			Data:     email.TemplateData{"Name": user.FirstName, "JobTitle": jobTitle},
		})
	}
	s.notifier.Dispatch(notes)
}

func (s *JobServiceImpl) notifyCustomer(ctx context.Context, customerID primitive.ObjectID, jobTitle string, blocked bool) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return
	}
	user, err := s.users.FindByID(ctx, customer.UserID)
	if err != nil {
		return
	}
	action := "unblocked"
	if blocked {
		action = "blocked"
	}
	s.notifier.Dispatch([]Notification{{
		To:       []string{user.Email},
		Subject:  "Job visibility changed",
		Template: email.TemplateJobBlocked,
		Data:     email.TemplateData{"Name": user.FirstName, "JobTitle": jobTitle, "Action": action},
	}})
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func mapJobRepoError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.NotFound("job", "job not found")
	}
	return apperrors.DatabaseError(err)
}
