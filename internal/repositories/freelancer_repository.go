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

var ErrFreelancerNotFound = errors.New("freelancer not found")

type FreelancerRepository interface {
	Create(ctx context.Context, freelancer *models.Freelancer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Freelancer, error)
	FindAll(ctx context.Context) ([]models.Freelancer, error)
	FindBySkill(ctx context.Context, skillID primitive.ObjectID) ([]models.Freelancer, error)
	FindByMinSalary(ctx context.Context, min float64) ([]models.Freelancer, error)
	FindByMaxSalary(ctx context.Context, max float64) ([]models.Freelancer, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	UpdateSalary(ctx context.Context, id primitive.ObjectID, salary float64) error
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error

	// Paired link maintenance for the freelancer's reference sets.
	AddSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error
	RemoveSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error
	AddRequestJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error
	RemoveRequestJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error
	AddJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error
	RemoveJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error
	AddFinishJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error
}

type FreelancerRepositoryImpl struct {
	col *mongo.Collection
}

func NewFreelancerRepository(db *mongo.Database) FreelancerRepository {
	return &FreelancerRepositoryImpl{col: db.Collection(freelancersCollection)}
}

func (r *FreelancerRepositoryImpl) Create(ctx context.Context, freelancer *models.Freelancer) error {
	freelancer.Touch(time.Now())
	if freelancer.Skills == nil {
		freelancer.Skills = []primitive.ObjectID{}
	}
	if freelancer.RequestJobs == nil {
		freelancer.RequestJobs = []primitive.ObjectID{}
	}
	if freelancer.FinishJobs == nil {
		freelancer.FinishJobs = []primitive.ObjectID{}
	}
	if freelancer.Jobs == nil {
		freelancer.Jobs = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, freelancer)
	if err != nil {
		return err
	}
	freelancer.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *FreelancerRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Freelancer, error) {
	var freelancer models.Freelancer
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&freelancer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFreelancerNotFound
		}
		return nil, err
	}
	return &freelancer, nil
}

func (r *FreelancerRepositoryImpl) FindAll(ctx context.Context) ([]models.Freelancer, error) {
	return r.find(ctx, bson.M{})
}

func (r *FreelancerRepositoryImpl) FindBySkill(ctx context.Context, skillID primitive.ObjectID) ([]models.Freelancer, error) {
	return r.find(ctx, bson.M{"skills": skillID})
}

func (r *FreelancerRepositoryImpl) FindByMinSalary(ctx context.Context, min float64) ([]models.Freelancer, error) {
	return r.find(ctx, bson.M{"salary": bson.M{"$gte": min}})
}

func (r *FreelancerRepositoryImpl) FindByMaxSalary(ctx context.Context, max float64) ([]models.Freelancer, error) {
	return r.find(ctx, bson.M{"salary": bson.M{"$lte": max}})
}

func (r *FreelancerRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrFreelancerNotFound
	}
	return nil
}

func (r *FreelancerRepositoryImpl) UpdateSalary(ctx context.Context, id primitive.ObjectID, salary float64) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"salary": salary, "updated_at": time.Now()}})
}

func (r *FreelancerRepositoryImpl) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"rating": rating, "updated_at": time.Now()}})
}

func (r *FreelancerRepositoryImpl) AddSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error {
	return r.link(ctx, freelancerID, "$addToSet", "skills", skillID)
}

func (r *FreelancerRepositoryImpl) RemoveSkill(ctx context.Context, freelancerID, skillID primitive.ObjectID) error {
	return r.link(ctx, freelancerID, "$pull", "skills", skillID)
}

func (r *FreelancerRepositoryImpl) AddRequestJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return r.link(ctx, freelancerID, "$addToSet", "request_jobs", jobID)
}

func (r *FreelancerRepositoryImpl) RemoveRequestJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return r.link(ctx, freelancerID, "$pull", "request_jobs", jobID)
}

func (r *FreelancerRepositoryImpl) AddJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return r.link(ctx, freelancerID, "$addToSet", "jobs", jobID)
}

func (r *FreelancerRepositoryImpl) RemoveJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return r.link(ctx, freelancerID, "$pull", "jobs", jobID)
}

func (r *FreelancerRepositoryImpl) AddFinishJob(ctx context.Context, freelancerID, jobID primitive.ObjectID) error {
	return r.link(ctx, freelancerID, "$addToSet", "finish_jobs", jobID)
}

func (r *FreelancerRepositoryImpl) find(ctx context.Context, filter bson.M) ([]models.Freelancer, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var freelancers []models.Freelancer
	if err := cursor.All(ctx, &freelancers); err != nil {
		return nil, err
	}
	return freelancers, nil
}

func (r *FreelancerRepositoryImpl) link(ctx context.Context, id primitive.ObjectID, op, field string, ref primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{
		op:     bson.M{field: ref},
		"$set": bson.M{"updated_at": time.Now()},
	})
}

func (r *FreelancerRepositoryImpl) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrFreelancerNotFound
	}
	return nil
}
