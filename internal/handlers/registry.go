package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	CustomerHandler   *CustomerHandler
	FreelancerHandler *FreelancerHandler
	JobHandler        *JobHandler
	SkillHandler      *SkillHandler
	FileHandler       *FileHandler
}
