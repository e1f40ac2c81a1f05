package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
)

// In-memory repository fakes backing the service tests. They mirror the
// behavior of the Mongo implementations, including the sentinel errors.

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func hasRef(refs []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, r := range refs {
		if r == id {
			return true
		}
	}
	return false
}

func addRef(refs []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if hasRef(refs, id) {
		return refs
	}
	return append(refs, id)
}

func removeRef(refs []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := refs[:0]
	for _, r := range refs {
		if r != id {
			out = append(out, r)
		}
	}
	return out
}

// --- users ---

type fakeUserRepo struct {
	byID map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repositories.ErrUsernameTaken
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == identifier || u.Username == identifier {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdateImage(ctx context.Context, id primitive.ObjectID, image string) error {
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Image = image
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) SetCustomerRef(ctx context.Context, id, customerID primitive.ObjectID) error {
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.CustomerID = &customerID
	return nil
}

func (f *fakeUserRepo) SetFreelancerRef(ctx context.Context, id, freelancerID primitive.ObjectID) error {
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.FreelancerID = &freelancerID
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.byID, id)
	return nil
}

// --- customers ---

type fakeCustomerRepo struct {
	byID map[primitive.ObjectID]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: map[primitive.ObjectID]*models.Customer{}}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	f.byID[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrCustomerNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepo) FindAll(ctx context.Context) ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrCustomerNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCustomerRepo) AddJob(ctx context.Context, customerID, jobID primitive.ObjectID) error {
	c, ok := f.byID[customerID]
	if !ok {
		return repositories.ErrCustomerNotFound
	}
	c.Jobs = addRef(c.Jobs, jobID)
	return nil
}

func (f *fakeCustomerRepo) RemoveJob(ctx context.Context, customerID, jobID primitive.ObjectID) error {
	c, ok := f.byID[customerID]
	if !ok {
		return repositories.ErrCustomerNotFound
	}
	c.Jobs = removeRef(c.Jobs, jobID)
	return nil
}

func (f *fakeCustomerRepo) AddBlockedJob(ctx context.Context, customerID, jobID primitive.ObjectID) error {
	c, ok := f.byID[customerID]
	if !ok {
		return repositories.ErrCustomerNotFound
	}
	c.BlockedJobs = addRef(c.BlockedJobs, jobID)
	return nil
}

func (f *fakeCustomerRepo) RemoveBlockedJob(ctx context.Context, customerID, jobID primitive.ObjectID) error {
	c, ok := f.byID[customerID]
	if !ok {
		return repositories.ErrCustomerNotFound
	}
	c.BlockedJobs = removeRef(c.BlockedJobs, jobID)
	return nil
}

// --- freelancers ---

type fakeFreelancerRepo struct {
	byID map[primitive.ObjectID]*models.Freelancer
}

func newFakeFreelancerRepo() *fakeFreelancerRepo {
	return &fakeFreelancerRepo{byID: map[primitive.ObjectID]*models.Freelancer{}}
}

func (f *fakeFreelancerRepo) Create(ctx context.Context, freelancer *models.Freelancer) error {
	if freelancer.ID.IsZero() {
		freelancer.ID = primitive.NewObjectID()
	}
	f.byID[freelancer.ID] = freelancer
	return nil
}

func (f *fakeFreelancerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Freelancer, error) {
	fr, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrFreelancerNotFound
	}
	copied := *fr
	return &copied, nil
}

func (f *fakeFreelancerRepo) FindAll(ctx context.Context) ([]models.Freelancer, error) {
	out := make([]models.Freelancer, 0, len(f.byID))
	for _, fr := range f.byID {
		out = append(out, *fr)
	}
	return out, nil
}

func (f *fakeFreelancerRepo) FindBySkill(ctx context.Context, skillID primitive.ObjectID) ([]models.Freelancer, error) {
	var out []models.Freelancer
	for _, fr := range f.byID {
		if hasRef(fr.Skills, skillID) {
			out = append(out, *fr)
		}
	}
	return out, nil
}

func (f *fakeFreelancerRepo) FindByMinSalary(ctx context.Context, min float64) ([]models.Freelancer, error) {
	var out []models.Freelancer
	for _, fr := range f.byID {
		if fr.Salary >= min {
			out = append(out, *fr)
		}
	}
	return out, nil
}

func (f *fakeFreelancerRepo) FindByMaxSalary(ctx context.Context, max float64) ([]models.Freelancer, error) {
	var out []models.Freelancer
	for _, fr := range f.byID {
		if fr.Salary <= max {
			out = append(out, *fr)
		}
	}
	return out, nil
}

func (f *fakeFreelancerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrFreelancerNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeFreelancerRepo) UpdateSalary(ctx context.Context, id primitive.ObjectID, salary float64) error {
	fr, ok := f.byID[id]
	if !ok {
		return repositories.ErrFreelancerNotFound
	}
	fr.Salary = salary
	return nil
}

func (f *fakeFreelancerRepo) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	fr, ok := f.byID[id]
	if !ok {
		return repositories.ErrFreelancerNotFound
	}
	fr.Rating = rating
	return nil
}

func (f *fakeFreelancerRepo) link(id primitive.ObjectID, mutate func(*models.Freelancer)) error {
	fr, ok := f.byID[id]
	if !ok {
		return repositories.ErrFreelancerNotFound
	}
	mutate(fr)
	return nil
}

func (f *fakeFreelancerRepo) AddSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error {
	return f.link(freelancerID, func(fr *models.Freelancer) { fr.Skills = addRef(fr.Skills, skillID) })
}

func (f *fakeFreelancerRepo) RemoveSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error {
	return f.link(freelancerID, func(fr *models.Freelancer) { fr.Skills = removeRef(fr.Skills, skillID) })
}

func (f *fakeFreelancerRepo) AddRequestJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return f.link(freelancerID, func(fr *models.Freelancer) { fr.RequestJobs = addRef(fr.RequestJobs, jobID) })
}

func (f *fakeFreelancerRepo) RemoveRequestJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return f.link(freelancerID, func(fr *models.Freelancer) { fr.RequestJobs = removeRef(fr.RequestJobs, jobID) })
}

func (f *fakeFreelancerRepo) AddJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return f.link(freelancerID, func(fr *models.Freelancer) { fr.Jobs = addRef(fr.Jobs, jobID) })
}

func (f *fakeFreelancerRepo) RemoveJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return f.link(freelancerID, func(fr *models.Freelancer) { fr.Jobs = removeRef(fr.Jobs, jobID) })
}

func (f *fakeFreelancerRepo) AddFinishJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return f.link(freelancerID, func(fr *models.Freelancer) { fr.FinishJobs = addRef(fr.FinishJobs, jobID) })
}

// --- skills ---

type fakeSkillRepo struct {
	byID map[primitive.ObjectID]*models.Skill
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{byID: map[primitive.ObjectID]*models.Skill{}}
}

func (f *fakeSkillRepo) Create(ctx context.Context, skill *models.Skill) error {
	for _, s := range f.byID {
		if s.Name == skill.Name {
			return repositories.ErrSkillNameTaken
		}
	}
	if skill.ID.IsZero() {
		skill.ID = primitive.NewObjectID()
	}
	f.byID[skill.ID] = skill
	return nil
}

func (f *fakeSkillRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Skill, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrSkillNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSkillRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Skill, error) {
	var out []models.Skill
	for _, id := range ids {
		if s, ok := f.byID[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSkillRepo) FindByName(ctx context.Context, name string) (*models.Skill, error) {
	for _, s := range f.byID {
		if s.Name == name {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repositories.ErrSkillNotFound
}

func (f *fakeSkillRepo) FindAll(ctx context.Context) ([]models.Skill, error) {
	out := make([]models.Skill, 0, len(f.byID))
	for _, s := range f.byID {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSkillRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrSkillNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeSkillRepo) link(id primitive.ObjectID, mutate func(*models.Skill)) error {
	s, ok := f.byID[id]
	if !ok {
		return repositories.ErrSkillNotFound
	}
	mutate(s)
	return nil
}

func (f *fakeSkillRepo) AddJob(ctx context.Context, skillID, jobID primitive.ObjectID) error {
	return f.link(skillID, func(s *models.Skill) { s.Jobs = addRef(s.Jobs, jobID) })
}

func (f *fakeSkillRepo) RemoveJob(ctx context.Context, skillID, jobID primitive.ObjectID) error {
	return f.link(skillID, func(s *models.Skill) { s.Jobs = removeRef(s.Jobs, jobID) })
}

func (f *fakeSkillRepo) AddFreelancer(ctx context.Context, skillID, freelancerID primitive.ObjectID) error {
	return f.link(skillID, func(s *models.Skill) { s.Freelancers = addRef(s.Freelancers, freelancerID) })
}

func (f *fakeSkillRepo) RemoveFreelancer(ctx context.Context, skillID, freelancerID primitive.ObjectID) error {
	return f.link(skillID, func(s *models.Skill) { s.Freelancers = removeRef(s.Freelancers, freelancerID) })
}

// --- jobs ---

type fakeJobRepo struct {
	byID map[primitive.ObjectID]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: map[primitive.ObjectID]*models.Job{}}
}

func (f *fakeJobRepo) Create(ctx context.Context, job *models.Job) error {
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	f.byID[job.ID] = job
	return nil
}

func (f *fakeJobRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	j, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	copied := *j
	return &copied, nil
}

func (f *fakeJobRepo) FindAll(ctx context.Context) ([]models.Job, error) {
	out := make([]models.Job, 0, len(f.byID))
	for _, j := range f.byID {
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeJobRepo) FindByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.byID {
		if j.Status == status {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.byID {
		if j.CustomerID == customerID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) FindByFreelancer(ctx context.Context, freelancerID primitive.ObjectID) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.byID {
		if j.FreelancerID != nil && *j.FreelancerID == freelancerID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error) {
	var out []models.Job
	for _, id := range ids {
		if j, ok := f.byID[id]; ok {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeJobRepo) UpdateDetails(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	j, ok := f.byID[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	if v, ok := fields["title"]; ok {
		j.Title = v.(string)
	}
	if v, ok := fields["description"]; ok {
		j.Description = v.(string)
	}
	if v, ok := fields["deadline"]; ok {
		j.Deadline = v.(time.Time)
	}
	return nil
}

func (f *fakeJobRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.JobStatus) error {
	j, ok := f.byID[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.Status = status
	return nil
}

func (f *fakeJobRepo) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback *models.Feedback) error {
	j, ok := f.byID[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.Feedback = feedback
	return nil
}

func (f *fakeJobRepo) SetFreelancer(ctx context.Context, id, freelancerID primitive.ObjectID) error {
	j, ok := f.byID[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.FreelancerID = &freelancerID
	return nil
}

func (f *fakeJobRepo) SetBlock(ctx context.Context, id primitive.ObjectID, blocked bool) error {
	j, ok := f.byID[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.IsBlock = blocked
	return nil
}

func (f *fakeJobRepo) ClearRequests(ctx context.Context, id primitive.ObjectID) error {
	j, ok := f.byID[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.RequestFreelancers = nil
	return nil
}

func (f *fakeJobRepo) link(id primitive.ObjectID, mutate func(*models.Job)) error {
	j, ok := f.byID[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	mutate(j)
	return nil
}

func (f *fakeJobRepo) AddRequest(ctx context.Context, jobID, freelancerID primitive.ObjectID) error {
	return f.link(jobID, func(j *models.Job) { j.RequestFreelancers = addRef(j.RequestFreelancers, freelancerID) })
}

func (f *fakeJobRepo) RemoveRequest(ctx context.Context, jobID, freelancerID primitive.ObjectID) error {
	return f.link(jobID, func(j *models.Job) { j.RequestFreelancers = removeRef(j.RequestFreelancers, freelancerID) })
}

func (f *fakeJobRepo) AddSkill(ctx context.Context, jobID, skillID primitive.ObjectID) error {
	return f.link(jobID, func(j *models.Job) { j.Skills = addRef(j.Skills, skillID) })
}

func (f *fakeJobRepo) RemoveSkill(ctx context.Context, jobID, skillID primitive.ObjectID) error {
	return f.link(jobID, func(j *models.Job) { j.Skills = removeRef(j.Skills, skillID) })
}
