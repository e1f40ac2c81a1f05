package models

// UserRole is the global role enumeration.
type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleCustomer   UserRole = "customer"
	UserRoleFreelancer UserRole = "freelancer"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleCustomer, UserRoleFreelancer:
		return true
	}
	return false
}

// JobStatus is the job lifecycle stage. The numeric values are part of the
// wire format.
type JobStatus int

const (
	JobStatusStart      JobStatus = 0
	JobStatusInProgress JobStatus = 1
	JobStatusEnd        JobStatus = 2
)

// Valid reports whether the status is inside the defined range.
func (s JobStatus) Valid() bool {
	return s >= JobStatusStart && s <= JobStatusEnd
}

func (s JobStatus) String() string {
	switch s {
	case JobStatusStart:
		return "start"
	case JobStatusInProgress:
		return "in_progress"
	case JobStatusEnd:
		return "end"
	}
	return "unknown"
}
