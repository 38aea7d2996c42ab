package gormrepo

import (
	"time"

	"gorm.io/datatypes"
)

type AdminUser struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex:idx_admin_users_username"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"type:datetime(6)"`
}

func (AdminUser) TableName() string { return "admin_users" }

type Resume struct {
	ID             string    `gorm:"type:char(36);primaryKey"`
	BatchID        string    `gorm:"type:char(36);index:idx_resumes_batch"`
	Filename       string    `gorm:"type:varchar(512);index:idx_resumes_filename"`
	StorageKey     string    `gorm:"type:varchar(1024)"`
	MatchPercent   float64   `gorm:"type:double"`
	Rank           int       `gorm:"index:idx_resumes_batch"`
	Shortlisted    bool      `gorm:"not null;default:false"`
	JobDescription string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"type:datetime(6)"`
}

func (Resume) TableName() string { return "resumes" }

type Candidate struct {
	ID               string    `gorm:"type:char(36);primaryKey"`
	Name             string    `gorm:"type:varchar(255);index:idx_candidates_name"`
	Email            string    `gorm:"type:varchar(255)"`
	MatchPercent     float64   `gorm:"type:double"`
	TestScore        int       `gorm:"not null;default:0"`
	SecondRoundScore float64   `gorm:"type:double"`
	Status           string    `gorm:"type:varchar(50);default:'pending';index:idx_candidates_status"`
	JobDescription   string    `gorm:"type:text"`
	ResumeFilename   string    `gorm:"type:varchar(512)"`
	CreatedAt        time.Time `gorm:"type:datetime(6)"`
	UpdatedAt        time.Time `gorm:"type:datetime(6);autoUpdateTime"`
}

func (Candidate) TableName() string { return "candidates" }

type TestResult struct {
	ID             string    `gorm:"type:char(36);primaryKey"`
	CandidateID    *string   `gorm:"type:char(36);index:idx_test_results_candidate"`
	CandidateName  string    `gorm:"type:varchar(255);index:idx_test_results_name"`
	JobDescription string    `gorm:"type:text"`
	Score          int       `gorm:"not null;default:0"`
	TotalQuestions int       `gorm:"not null;default:0"`
	Status         string    `gorm:"type:varchar(50)"`
	CompletedAt    time.Time `gorm:"type:datetime(6)"`
}

func (TestResult) TableName() string { return "test_results" }

type HRNotification struct {
	ID             string    `gorm:"type:char(36);primaryKey"`
	CandidateID    *string   `gorm:"type:char(36);index:idx_hr_notifications_candidate"`
	CandidateName  string    `gorm:"type:varchar(255)"`
	CandidateEmail string    `gorm:"type:varchar(255)"`
	TestScore      float64   `gorm:"type:double"`
	MatchPercent   float64   `gorm:"type:double"`
	CombinedScore  *float64  `gorm:"type:double"`
	Status         string    `gorm:"type:varchar(50)"`
	Seen           bool      `gorm:"not null;default:false"`
	SentAt         time.Time `gorm:"type:datetime(6);index:idx_hr_notifications_sent"`
}

func (HRNotification) TableName() string { return "hr_notifications" }

type SecondRoundChallenge struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	CandidateID string         `gorm:"type:char(36);index:idx_src_candidate"`
	Challenges  datatypes.JSON `gorm:"type:json"`
	CreatedAt   time.Time      `gorm:"type:datetime(6)"`
}

func (SecondRoundChallenge) TableName() string { return "second_round_challenges" }

type SecondRoundResult struct {
	ID             string         `gorm:"type:char(36);primaryKey"`
	CandidateID    string         `gorm:"type:char(36);index:idx_srr_candidate"`
	ReasoningScore int            `gorm:"not null;default:0"`
	AptitudeScore  int            `gorm:"not null;default:0"`
	CodingScore    float64        `gorm:"type:double"`
	TotalScore     float64        `gorm:"type:double"`
	Percentage     float64        `gorm:"type:double"`
	Answers        datatypes.JSON `gorm:"type:json"`
	SubmittedAt    time.Time      `gorm:"type:datetime(6)"`
}

func (SecondRoundResult) TableName() string { return "second_round_results" }

func allModels() []any {
	return []any{
		&AdminUser{},
		&Resume{},
		&Candidate{},
		&TestResult{},
		&HRNotification{},
		&SecondRoundChallenge{},
		&SecondRoundResult{},
	}
}
