package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/email"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/internal/storage"
	"jobhub_backend/pkg/apperrors"
)

type UserService interface {
	FindAll(ctx context.Context) ([]dto.UserResponse, error)
	FindOne(ctx context.Context, id primitive.ObjectID) (*dto.UserResponse, error)
	Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	UpdateImage(ctx context.Context, id primitive.ObjectID, file io.Reader, originalName, contentType string) (string, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserServiceImpl struct {
	users       repositories.UserRepository
	customers   repositories.CustomerRepository
	freelancers repositories.FreelancerRepository
	files       storage.Storage
	tx          repositories.TxRunner
	notifier    *Notifier
}

func NewUserService(
	users repositories.UserRepository,
	customers repositories.CustomerRepository,
	freelancers repositories.FreelancerRepository,
	files storage.Storage,
	tx repositories.TxRunner,
	notifier *Notifier,
) UserService {
	return &UserServiceImpl{
		users:       users,
		customers:   customers,
		freelancers: freelancers,
		files:       files,
		tx:          tx,
		notifier:    notifier,
	}
}

func (s *UserServiceImpl) FindAll(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *dto.NewUserResponse(&users[i]))
	}
	return out, nil
}

func (s *UserServiceImpl) FindOne(ctx context.Context, id primitive.ObjectID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, mapUserRepoError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, mapUserRepoError(err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Description != nil {
		user.Description = *req.Description
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapUserRepoError(err)
	}
	return dto.NewUserResponse(user), nil
}

// UpdateImage stores the uploaded file under a generated name, points the
// user at it and removes the previous file. The default placeholder is
// shared between users and is never deleted.
func (s *UserServiceImpl) UpdateImage(ctx context.Context, id primitive.ObjectID, file io.Reader, originalName, contentType string) (string, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "", mapUserRepoError(err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if err := s.files.Save(ctx, name, file, contentType); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternalError, "storage", "failed to store image", 500)
	}

	if err := s.users.UpdateImage(ctx, id, name); err != nil {
		// roll back the orphaned file, best effort
		_ = s.files.Delete(ctx, name)
		return "", mapUserRepoError(err)
	}

	if user.Image != "" && user.Image != models.DefaultImage {
		if err := s.files.Delete(ctx, user.Image); err != nil {
			logger.CtxWarn(ctx, "failed to delete previous image",
				"user_id", id.Hex(), "image", user.Image, "error", err)
		}
	}
	return name, nil
}

// Delete removes the user together with its role profile. Jobs keep their
// references so finished work stays visible to the other party.
func (s *UserServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return mapUserRepoError(err)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if user.CustomerID != nil {
			if err := s.customers.Delete(ctx, *user.CustomerID); err != nil {
				return err
			}
		}
		if user.FreelancerID != nil {
			if err := s.freelancers.Delete(ctx, *user.FreelancerID); err != nil {
				return err
			}
		}
		return s.users.Delete(ctx, id)
	})
	if err != nil {
		return mapUserRepoError(err)
	}

	if user.Image != "" && user.Image != models.DefaultImage {
		_ = s.files.Delete(ctx, user.Image)
	}

	s.notifier.Dispatch([]Notification{{
		To:       []string{user.Email},
		Subject:  "Account deleted",
		Template: email.TemplateAccountDeleted,
		Data:     email.TemplateData{"Name": user.FirstName},
	}})

	logger.CtxInfo(ctx, "user deleted", "user_id", id.Hex())
	return nil
}
