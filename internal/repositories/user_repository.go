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
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already in use")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateImage(ctx context.Context, id primitive.ObjectID, image string) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	SetCustomerRef(ctx context.Context, id, customerID primitive.ObjectID) error
	SetFreelancerRef(ctx context.Context, id, freelancerID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserRepositoryImpl struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &UserRepositoryImpl{col: db.Collection(usersCollection)}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	// Uniqueness of email and username is checked by explicit lookups; the
	// collection carries no unique indexes.
	if err := r.col.FindOne(ctx, bson.M{"email": user.Email}).Err(); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if err := r.col.FindOne(ctx, bson.M{"username": user.Username}).Err(); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	user.Touch(time.Now())
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	filter := bson.M{"$or": bson.A{
		bson.M{"email": identifier},
		bson.M{"username": identifier},
	}}
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateImage(ctx context.Context, id primitive.ObjectID, image string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"image": image, "updated_at": time.Now()}})
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"password_hash": passwordHash, "updated_at": time.Now()}})
}

func (r *UserRepositoryImpl) SetCustomerRef(ctx context.Context, id, customerID primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"customer_id": customerID, "updated_at": time.Now()}})
}

func (r *UserRepositoryImpl) SetFreelancerRef(ctx context.Context, id, freelancerID primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"freelancer_id": freelancerID, "updated_at": time.Now()}})
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
