package model

// Application statuses shown in the UI. The store does not reject other
// values; these are the conventional set.
const (
	StatusApplied      = "Applied"
	StatusInterviewing = "Interviewing"
	StatusRejected     = "Rejected"
	StatusOffer        = "Offer"
	StatusAccepted     = "Accepted"
	StatusDeclined     = "Declined"
)

// Statuses lists the conventional status values in display order.
var Statuses = []string{
	StatusApplied,
	StatusInterviewing,
	StatusRejected,
	StatusOffer,
	StatusAccepted,
	StatusDeclined,
}

// Application is a tracked job application.
type Application struct {
	ID              int64
	CompanyName     string // required
	Position        string // required
	DateApplied     string // required, ISO date (YYYY-MM-DD)
	Status          string // required
	JobDescription  string
	SalaryInfo      string
	ContactInfo     string
	ApplicationURL  string
	Notes           string
	ResumePath      string
	CoverLetterPath string
	CreatedAt       string // set by the store
	UpdatedAt       string // set by the store
}

// ApplicationUpdate is a partial update. Nil fields are left untouched;
// a pointer to an empty string clears the field.
type ApplicationUpdate struct {
	CompanyName     *string
	Position        *string
	DateApplied     *string
	Status          *string
	JobDescription  *string
	SalaryInfo      *string
	ContactInfo     *string
	ApplicationURL  *string
	Notes           *string
	ResumePath      *string
	CoverLetterPath *string
}

// ApplicationFilter narrows and pages a listing. Zero-value Limit means
// no limit. Search matches case-insensitively against company name,
// position and job description.
type ApplicationFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// Statistics is the read-side summary over all applications.
type Statistics struct {
	Total        int
	StatusCounts map[string]int
	Recent       []Application  // 5 most recent by date applied
	ByMonth      map[string]int // keyed by YYYY-MM of date applied
}

// Profile is the applicant's contact information, used in cover letters.
// At most one profile exists per database.
type Profile struct {
	FullName  string
	Address   string
	Phone     string
	Email     string
	CreatedAt string
	UpdatedAt string
}

// Applicant is the contact block rendered into generated documents.
type Applicant struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// ApplicantFromProfile converts a stored profile into a contact block.
func ApplicantFromProfile(p Profile) Applicant {
	return Applicant{
		Name:    p.FullName,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
	}
}
