package repositories

import (
	"context"
	"errors"
	"time"

	"jobhub_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	FindAll(ctx context.Context) ([]models.Job, error)
	FindByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error)
	FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Job, error)
	FindByFreelancer(ctx context.Context, freelancerID primitive.ObjectID) ([]models.Job, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	UpdateDetails(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.JobStatus) error
	SetFeedback(ctx context.Context, id primitive.ObjectID, feedback *models.Feedback) error
	SetFreelancer(ctx context.Context, id, freelancerID primitive.ObjectID) error
	SetBlock(ctx context.Context, id primitive.ObjectID, blocked bool) error
	ClearRequests(ctx context.Context, id primitive.ObjectID) error

	AddRequest(ctx context.Context, jobID, freelancerID primitive.ObjectID) error
	RemoveRequest(ctx context.Context, jobID, freelancerID primitive.ObjectID) error
	AddSkill(ctx context.Context, jobID, skillID primitive.ObjectID) error
	RemoveSkill(ctx context.Context, jobID, skillID primitive.ObjectID) error
}

type JobRepositoryImpl struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) JobRepository {
	return &JobRepositoryImpl{col: db.Collection(jobsCollection)}
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *models.Job) error {
	job.Touch(time.Now())
	if job.RequestFreelancers == nil {
		job.RequestFreelancers = []primitive.ObjectID{}
	}
	if job.Skills == nil {
		job.Skills = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, job)
	if err != nil {
		return err
	}
	job.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var job models.Job
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindAll(ctx context.Context) ([]models.Job, error) {
	return r.find(ctx, bson.M{})
}

func (r *JobRepositoryImpl) FindByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *JobRepositoryImpl) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Job, error) {
	return r.find(ctx, bson.M{"customer_id": customerID})
}

func (r *JobRepositoryImpl) FindByFreelancer(ctx context.Context, freelancerID primitive.ObjectID) ([]models.Job, error) {
	return r.find(ctx, bson.M{"freelancer_id": freelancerID})
}

func (r *JobRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Job, error) {
	if len(ids) == 0 {
		return []models.Job{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *JobRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrJobNotFound
	}
	return nil
}

// UpdateDetails applies a partial $set of mutable job fields. CustomerID is
// never part of fields: it is immutable after creation.
func (r *JobRepositoryImpl) UpdateDetails(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	return r.updateOne(ctx, id, bson.M{"$set": fields})
}

func (r *JobRepositoryImpl) SetStatus(ctx context.Context, id primitive.ObjectID, status models.JobStatus) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
}

func (r *JobRepositoryImpl) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback *models.Feedback) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"feedback": feedback, "updated_at": time.Now()}})
}

func (r *JobRepositoryImpl) SetFreelancer(ctx context.Context, id, freelancerID primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"freelancer_id": freelancerID, "updated_at": time.Now()}})
}

func (r *JobRepositoryImpl) SetBlock(ctx context.Context, id primitive.ObjectID, blocked bool) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"is_block": blocked, "updated_at": time.Now()}})
}

func (r *JobRepositoryImpl) ClearRequests(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"request_freelancers": []primitive.ObjectID{}, "updated_at": time.Now()}})
}

func (r *JobRepositoryImpl) AddRequest(ctx context.Context, jobID, freelancerID primitive.ObjectID) error {
	return r.link(ctx, jobID, "$addToSet", "request_freelancers", freelancerID)
}

func (r *JobRepositoryImpl) RemoveRequest(ctx context.Context, jobID, freelancerID primitive.ObjectID) error {
	return r.link(ctx, jobID, "$pull", "request_freelancers", freelancerID)
}

func (r *JobRepositoryImpl) AddSkill(ctx context.Context, jobID, skillID primitive.ObjectID) error {
	return r.link(ctx, jobID, "$addToSet", "skills", skillID)
}

func (r *JobRepositoryImpl) RemoveSkill(ctx context.Context, jobID, skillID primitive.ObjectID) error {
	return r.link(ctx, jobID, "$pull", "skills", skillID)
}

func (r *JobRepositoryImpl) find(ctx context.Context, filter bson.M) ([]models.Job, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepositoryImpl) link(ctx context.Context, id primitive.ObjectID, op, field string, ref primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{
		op:     bson.M{field: ref},
		"$set": bson.M{"updated_at": time.Now()},
	})
}

func (r *JobRepositoryImpl) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrJobNotFound
	}
	return nil
}
