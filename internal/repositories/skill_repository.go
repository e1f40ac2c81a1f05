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

var (
	ErrSkillNotFound  = errors.New("skill not found")
	ErrSkillNameTaken = errors.New("skill name already exists")
)

type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Skill, error)
	// FindByIDs returns the skills for the given ids; callers compare lengths
	// to detect unresolvable references.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Skill, error)
	FindByName(ctx context.Context, name string) (*models.Skill, error)
	FindAll(ctx context.Context) ([]models.Skill, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	AddJob(ctx context.Context, skillID, jobID primitive.ObjectID) error
	RemoveJob(ctx context.Context, skillID, jobID primitive.ObjectID) error
	AddFreelancer(ctx context.Context, skillID, freelancerID primitive.ObjectID) error
	RemoveFreelancer(ctx context.Context, skillID, freelancerID primitive.ObjectID) error
}

type SkillRepositoryImpl struct {
	col *mongo.Collection
}

func NewSkillRepository(db *mongo.Database) SkillRepository {
	return &SkillRepositoryImpl{col: db.Collection(skillsCollection)}
}

func (r *SkillRepositoryImpl) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.col.FindOne(ctx, bson.M{"name": skill.Name}).Err(); err == nil {
		return ErrSkillNameTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	skill.Touch(time.Now())
	if skill.Jobs == nil {
		skill.Jobs = []primitive.ObjectID{}
	}
	if skill.Freelancers == nil {
		skill.Freelancers = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, skill)
	if err != nil {
		return err
	}
	skill.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *SkillRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Skill, error) {
	var skill models.Skill
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&skill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Skill, error) {
	if len(ids) == 0 {
		return []models.Skill{}, nil
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var skills []models.Skill
	if err := cursor.All(ctx, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *SkillRepositoryImpl) FindByName(ctx context.Context, name string) (*models.Skill, error) {
	var skill models.Skill
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&skill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepositoryImpl) FindAll(ctx context.Context) ([]models.Skill, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var skills []models.Skill
	if err := cursor.All(ctx, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *SkillRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepositoryImpl) AddJob(ctx context.Context, skillID, jobID primitive.ObjectID) error {
	return r.link(ctx, skillID, "$addToSet", "jobs", jobID)
}

func (r *SkillRepositoryImpl) RemoveJob(ctx context.Context, skillID, jobID primitive.ObjectID) error {
	return r.link(ctx, skillID, "$pull", "jobs", jobID)
}

func (r *SkillRepositoryImpl) AddFreelancer(ctx context.Context, skillID, freelancerID primitive.ObjectID) error {
	return r.link(ctx, skillID, "$addToSet", "freelancers", freelancerID)
}

func (r *SkillRepositoryImpl) RemoveFreelancer(ctx context.Context, skillID, freelancerID primitive.ObjectID) error {
	return r.link(ctx, skillID, "$pull", "freelancers", freelancerID)
}

func (r *SkillRepositoryImpl) link(ctx context.Context, id primitive.ObjectID, op, field string, ref primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		op:     bson.M{field: ref},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSkillNotFound
	}
	return nil
}
