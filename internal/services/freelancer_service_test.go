package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

func finishJobWithRate(t *testing.T, env *testEnv, customer, freelancer Actor, rate int) {
	t.Helper()
	ctx := context.Background()
	job := seedJob(t, env, customer)
	require.NoError(t, env.svc.Job.AssignFreelancer(ctx, customer, job.ID, *freelancer.FreelancerID))
	require.NoError(t, env.svc.Job.UpdateStatus(ctx, customer, job.ID, models.JobStatusEnd))
	require.NoError(t, env.svc.Job.AddFeedback(ctx, customer, job.ID, &dto.JobFeedbackRequest{Rate: &rate}))
}

func TestFreelancerRating_RecomputedOnRead(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	customer := seedCustomer(t, env)
	freelancer := seedFreelancer(t, env)

	// no finished jobs yet
	fr, err := env.svc.Freelancer.FindOne(ctx, *freelancer.FreelancerID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fr.Rating)

	finishJobWithRate(t, env, customer, freelancer, 4)
	finishJobWithRate(t, env, customer, freelancer, 5)

	fr, err = env.svc.Freelancer.FindOne(ctx, *freelancer.FreelancerID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, fr.Rating)

	// the recomputed value is persisted
	stored, err := env.freelancers.FindByID(ctx, *freelancer.FreelancerID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stored.Rating)
}

func TestFreelancerRating_IgnoresUnratedJobs(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	customer := seedCustomer(t, env)
	freelancer := seedFreelancer(t, env)

	finishJobWithRate(t, env, customer, freelancer, 3)

	// finished but never rated
	job := seedJob(t, env, customer)
	require.NoError(t, env.svc.Job.AssignFreelancer(ctx, customer, job.ID, *freelancer.FreelancerID))
	require.NoError(t, env.svc.Job.UpdateStatus(ctx, customer, job.ID, models.JobStatusEnd))

	fr, err := env.svc.Freelancer.FindOne(ctx, *freelancer.FreelancerID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, fr.Rating)
}

func TestSalaryFilters(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()

	low := seedFreelancer(t, env)
	high := seedFreelancer(t, env)
	salary := 100.0
	require.NoError(t, env.svc.Freelancer.UpdateSalary(ctx, *low.FreelancerID, &dto.UpdateSalaryRequest{Salary: &salary}))
	salary = 900.0
	require.NoError(t, env.svc.Freelancer.UpdateSalary(ctx, *high.FreelancerID, &dto.UpdateSalaryRequest{Salary: &salary}))

	above, err := env.svc.Freelancer.FilterByMinSalary(ctx, 500)
	require.NoError(t, err)
	require.Len(t, above, 1)
	assert.Equal(t, *high.FreelancerID, above[0].ID)

	below, err := env.svc.Freelancer.FilterByMaxSalary(ctx, 500)
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, *low.FreelancerID, below[0].ID)

	_, err = env.svc.Freelancer.FilterByMinSalary(ctx, -1)
	requireCode(t, err, apperrors.CodeInvalidArgument)
	_, err = env.svc.Freelancer.FilterByMaxSalary(ctx, -1)
	requireCode(t, err, apperrors.CodeInvalidArgument)
}

func TestFreelancerSkills_Bidirectional(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	freelancer := seedFreelancer(t, env)
	skill := seedSkill(t, env, "Go")

	require.NoError(t, env.svc.Freelancer.AddSkill(ctx, *freelancer.FreelancerID, skill.ID))

	fr, err := env.freelancers.FindByID(ctx, *freelancer.FreelancerID)
	require.NoError(t, err)
	assert.Contains(t, fr.Skills, skill.ID)

	stored, err := env.skills.FindByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.Freelancers, fr.ID)

	found, err := env.svc.Freelancer.FilterBySkill(ctx, skill.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)

	require.NoError(t, env.svc.Freelancer.RemoveSkill(ctx, *freelancer.FreelancerID, skill.ID))

	fr, err = env.freelancers.FindByID(ctx, *freelancer.FreelancerID)
	require.NoError(t, err)
	assert.NotContains(t, fr.Skills, skill.ID)

	stored, err = env.skills.FindByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.Freelancers, fr.ID)
}

func TestFreelancerSkills_MissingSides(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := context.Background()
	freelancer := seedFreelancer(t, env)
	skill := seedSkill(t, env, "Go")

	err := env.svc.Freelancer.AddSkill(ctx, primitive.NewObjectID(), skill.ID)
	requireCode(t, err, apperrors.CodeNotFound)

	err = env.svc.Freelancer.AddSkill(ctx, *freelancer.FreelancerID, primitive.NewObjectID())
	requireCode(t, err, apperrors.CodeNotFound)
}
