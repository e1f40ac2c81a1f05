package services

import (
	"jobhub_backend/internal/email"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/storage"
)

// Repositories bundles the persistence interfaces handed to the container.
type Repositories struct {
	Users       repositories.UserRepository
	Customers   repositories.CustomerRepository
	Freelancers repositories.FreelancerRepository
	Skills      repositories.SkillRepository
	Jobs        repositories.JobRepository
	Tx          repositories.TxRunner
}

// ServiceContainer wires every service over a shared repository set.
type ServiceContainer struct {
	Auth       AuthService
	User       UserService
	Customer   CustomerService
	Freelancer FreelancerService
	Skill      SkillService
	Job        JobService
}

func NewServiceContainer(repos Repositories, files storage.Storage, mail email.Provider) *ServiceContainer {
	notifier := NewNotifier(mail)
	return &ServiceContainer{
		Auth:       NewAuthService(repos.Users, repos.Customers, repos.Freelancers, repos.Tx, notifier),
		User:       NewUserService(repos.Users, repos.Customers, repos.Freelancers, files, repos.Tx, notifier),
		Customer:   NewCustomerService(repos.Customers, repos.Jobs),
		Freelancer: NewFreelancerService(repos.Freelancers, repos.Skills, repos.Jobs, repos.Tx),
		Skill:      NewSkillService(repos.Skills, repos.Jobs, repos.Freelancers, repos.Tx),
		Job:        NewJobService(repos.Jobs, repos.Customers, repos.Freelancers, repos.Skills, repos.Users, repos.Tx, notifier),
	}
}
