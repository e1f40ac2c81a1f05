package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/config"
	"jobhub_backend/internal/email"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services/dto"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

type nopEmailProvider struct{}

func (nopEmailProvider) Send(*email.Email) error { return nil }
func (nopEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	return nil
}
func (nopEmailProvider) Validate() error { return nil }
func (nopEmailProvider) Close() error    { return nil }

type fakeStorage struct {
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string][]byte{}}
}

func (s *fakeStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

func (s *fakeStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "/files/" + path, nil
}

func (s *fakeStorage) GetSize(ctx context.Context, path string) (int64, error) {
	return int64(len(s.files[path])), nil
}

type testEnv struct {
	users       *fakeUserRepo
	customers   *fakeCustomerRepo
	freelancers *fakeFreelancerRepo
	skills      *fakeSkillRepo
	jobs        *fakeJobRepo
	files       *fakeStorage
	svc         *ServiceContainer
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:       newFakeUserRepo(),
		customers:   newFakeCustomerRepo(),
		freelancers: newFakeFreelancerRepo(),
		skills:      newFakeSkillRepo(),
		jobs:        newFakeJobRepo(),
		files:       newFakeStorage(),
	}
	env.svc = NewServiceContainer(Repositories{
		Users:       env.users,
		Customers:   env.customers,
		Freelancers: env.freelancers,
		Skills:      env.skills,
		Jobs:        env.jobs,
		Tx:          fakeTx{},
	}, env.files, nopEmailProvider{})
	return env
}

// seedSeq keeps seeded credentials unique across parallel tests.
var seedSeq atomic.Int64

// seedCustomer registers a customer and returns their actor identity.
func seedCustomer(t *testing.T, env *testEnv) Actor {
	t.Helper()
	n := seedSeq.Add(1)
	resp, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Anna",
		LastName:  "Doe",
		Email:     fmt.Sprintf("customer%d@test.com", n),
		Username:  fmt.Sprintf("customer%d", n),
		Password:  "super_password123",
		Role:      "customer",
	})
	require.NoError(t, err)

	userID, err := primitive.ObjectIDFromHex(resp.User.ID)
	require.NoError(t, err)
	customerID, err := primitive.ObjectIDFromHex(resp.User.CustomerID)
	require.NoError(t, err)

	return Actor{UserID: userID, Role: models.UserRoleCustomer, CustomerID: &customerID}
}

func seedFreelancer(t *testing.T, env *testEnv) Actor {
	t.Helper()
	n := seedSeq.Add(1)
	resp, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Bekzat",
		LastName:  "Lee",
		Email:     fmt.Sprintf("freelancer%d@test.com", n),
		Username:  fmt.Sprintf("freelancer%d", n),
		Password:  "super_password123",
		Role:      "freelancer",
	})
	require.NoError(t, err)

	userID, err := primitive.ObjectIDFromHex(resp.User.ID)
	require.NoError(t, err)
	freelancerID, err := primitive.ObjectIDFromHex(resp.User.FreelancerID)
	require.NoError(t, err)

	return Actor{UserID: userID, Role: models.UserRoleFreelancer, FreelancerID: &freelancerID}
}

func seedSkill(t *testing.T, env *testEnv, name string) *models.Skill {
	t.Helper()
	skill, err := env.svc.Skill.Create(context.Background(), &dto.CreateSkillRequest{Name: name})
	require.NoError(t, err)
	return skill
}

func seedJob(t *testing.T, env *testEnv, customer Actor, skillIDs ...primitive.ObjectID) *models.Job {
	t.Helper()
	skills := make([]string, 0, len(skillIDs))
	for _, id := range skillIDs {
		skills = append(skills, id.Hex())
	}
	job, err := env.svc.Job.Create(context.Background(), customer, &dto.CreateJobRequest{
		Title:       "Build landing page",
		Description: "Responsive landing page with contact form",
		Deadline:    time.Now().Add(72 * time.Hour),
		Skills:      skills,
	})
	require.NoError(t, err)
	return job
}
