package repository

import "hireflow/internal/database"

// Store bundles every repository the usecases need so a storage backend can
// be swapped as one unit.
type Store struct {
	Admins        AdminRepository
	Resumes       ResumeRepository
	Candidates    CandidateRepository
	TestResults   TestResultRepository
	Notifications NotificationRepository
	SecondRounds  SecondRoundRepository
}

func NewPostgresStore(db database.DB) Store {
	return Store{
		Admins:        NewPostgresAdminRepository(db),
		Resumes:       NewPostgresResumeRepository(db),
		Candidates:    NewPostgresCandidateRepository(db),
		TestResults:   NewPostgresTestResultRepository(db),
		Notifications: NewPostgresNotificationRepository(db),
		SecondRounds:  NewPostgresSecondRoundRepository(db),
	}
}
