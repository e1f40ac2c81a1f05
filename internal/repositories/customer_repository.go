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

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	FindAll(ctx context.Context) ([]models.Customer, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Paired link maintenance for the customer<->job references.
	AddJob(ctx context.Context, customerID, jobID primitive.ObjectID) error
	RemoveJob(ctx context.Context, customerID, jobID primitive.ObjectID) error
	AddBlockedJob(ctx context.Context, customerID, jobID primitive.ObjectID) error
	RemoveBlockedJob(ctx context.Context, customerID, jobID primitive.ObjectID) error
}

type CustomerRepositoryImpl struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) CustomerRepository {
	return &CustomerRepositoryImpl{col: db.Collection(customersCollection)}
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, customer *models.Customer) error {
	customer.Touch(time.Now())
	if customer.Jobs == nil {
		customer.Jobs = []primitive.ObjectID{}
	}
	if customer.BlockedJobs == nil {
		customer.BlockedJobs = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, customer)
	if err != nil {
		return err
	}
	customer.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CustomerRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	var customer models.Customer
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepositoryImpl) FindAll(ctx context.Context) ([]models.Customer, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepositoryImpl) AddJob(ctx context.Context, customerID, jobID primitive.ObjectID) error {
	return r.updateOne(ctx, customerID, bson.M{"$addToSet": bson.M{"jobs": jobID}})
}

func (r *CustomerRepositoryImpl) RemoveJob(ctx context.Context, customerID, jobID primitive.ObjectID) error {
	return r.updateOne(ctx, customerID, bson.M{"$pull": bson.M{"jobs": jobID}})
}

func (r *CustomerRepositoryImpl) AddBlockedJob(ctx context.Context, customerID, jobID primitive.ObjectID) error {
	return r.updateOne(ctx, customerID, bson.M{"$addToSet": bson.M{"blocked_jobs": jobID}})
}

func (r *CustomerRepositoryImpl) RemoveBlockedJob(ctx context.Context, customerID, jobID primitive.ObjectID) error {
	return r.updateOne(ctx, customerID, bson.M{"$pull": bson.M{"blocked_jobs": jobID}})
}

func (r *CustomerRepositoryImpl) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["$set"] = bson.M{"updated_at": time.Now()}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
