package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"hireflow/internal/domain/admin"
	domain "hireflow/internal/domain/assessment"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/notification"
	"hireflow/internal/domain/resume"
	"hireflow/internal/mail"
	"hireflow/internal/repository"
	"hireflow/internal/storage"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type memCandidates struct {
	mu        sync.Mutex
	items     map[uuid.UUID]candidate.Candidate
	order     []uuid.UUID
	createErr error
}

func newMemCandidates(cs ...candidate.Candidate) *memCandidates {
	m := &memCandidates{items: map[uuid.UUID]candidate.Candidate{}}
	for _, c := range cs {
		m.items[c.ID] = c
		m.order = append(m.order, c.ID)
	}
	return m
}

func (m *memCandidates) Create(_ context.Context, c candidate.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.items[c.ID] = c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memCandidates) GetByID(_ context.Context, id uuid.UUID) (candidate.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return candidate.Candidate{}, repository.ErrNotFound
	}
	return c, nil
}

func (m *memCandidates) GetLatestByName(_ context.Context, name string) (candidate.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.order) - 1; i >= 0; i-- {
		if c := m.items[m.order[i]]; c.Name == name {
			return c, nil
		}
	}
	return candidate.Candidate{}, repository.ErrNotFound
}

func (m *memCandidates) mutate(id uuid.UUID, fn func(*candidate.Candidate)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&c)
	m.items[id] = c
	return nil
}

func (m *memCandidates) UpdateStatus(_ context.Context, id uuid.UUID, st candidate.Status) error {
	return m.mutate(id, func(c *candidate.Candidate) { c.Status = st })
}

func (m *memCandidates) UpdateTestScore(_ context.Context, id uuid.UUID, score int, st candidate.Status) error {
	return m.mutate(id, func(c *candidate.Candidate) { c.TestScore, c.Status = score, st })
}

func (m *memCandidates) UpdateSecondRoundScore(_ context.Context, id uuid.UUID, pct float64, st candidate.Status) error {
	return m.mutate(id, func(c *candidate.Candidate) { c.SecondRoundScore, c.Status = pct, st })
}

func (m *memCandidates) ListAll(_ context.Context) ([]candidate.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]candidate.Candidate, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

type memResumes struct {
	items   []resume.Ranked
	saveErr error
}

func (m *memResumes) SaveBatch(_ context.Context, items []resume.Ranked) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = append(m.items, items...)
	return nil
}

func (m *memResumes) ListBatch(_ context.Context, batchID uuid.UUID) ([]resume.Ranked, error) {
	var out []resume.Ranked
	for _, r := range m.items {
		if r.BatchID == batchID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (m *memResumes) LatestByFilename(_ context.Context, filename string) (resume.Ranked, error) {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].Filename == filename {
			return m.items[i], nil
		}
	}
	return resume.Ranked{}, repository.ErrNotFound
}

type memTestResults struct {
	items []domain.TestResult
}

func (m *memTestResults) Create(_ context.Context, r domain.TestResult) error {
	m.items = append(m.items, r)
	return nil
}

func (m *memTestResults) LatestByCandidate(_ context.Context, id uuid.UUID) (domain.TestResult, error) {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].CandidateID != nil && *m.items[i].CandidateID == id {
			return m.items[i], nil
		}
	}
	return domain.TestResult{}, repository.ErrNotFound
}

func (m *memTestResults) LatestByName(_ context.Context, name string) (domain.TestResult, error) {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].CandidateName == name {
			return m.items[i], nil
		}
	}
	return domain.TestResult{}, repository.ErrNotFound
}

type memNotifications struct {
	items     []notification.Notification
	createErr error
}

func (m *memNotifications) Create(_ context.Context, n notification.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.items = append(m.items, n)
	return nil
}

func (m *memNotifications) ListRecent(_ context.Context, limit int) ([]notification.Notification, error) {
	var out []notification.Notification
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		if m.items[i].CandidateID != nil {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memNotifications) MarkSeen(_ context.Context, id uuid.UUID) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Seen = true
			return nil
		}
	}
	return repository.ErrNotFound
}

type memRounds struct {
	challenges []domain.StoredChallenges
	results    []domain.SecondRoundResult
}

func (m *memRounds) SaveChallenges(_ context.Context, c domain.StoredChallenges) error {
	m.challenges = append(m.challenges, c)
	return nil
}

func (m *memRounds) LatestChallenges(_ context.Context, id uuid.UUID) (domain.StoredChallenges, error) {
	for i := len(m.challenges) - 1; i >= 0; i-- {
		if m.challenges[i].CandidateID == id {
			return m.challenges[i], nil
		}
	}
	return domain.StoredChallenges{}, repository.ErrNotFound
}

func (m *memRounds) SaveResult(_ context.Context, r domain.SecondRoundResult) error {
	m.results = append(m.results, r)
	return nil
}

func (m *memRounds) LatestResult(_ context.Context, id uuid.UUID) (domain.SecondRoundResult, error) {
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].CandidateID == id {
			return m.results[i], nil
		}
	}
	return domain.SecondRoundResult{}, repository.ErrNotFound
}

type memAdmins struct {
	items []admin.User
}

func (m *memAdmins) Count(context.Context) (int, error) { return len(m.items), nil }

func (m *memAdmins) Create(_ context.Context, u admin.User) error {
	m.items = append(m.items, u)
	return nil
}

func (m *memAdmins) GetByUsername(_ context.Context, username string) (admin.User, error) {
	for _, u := range m.items {
		if u.Username == username {
			return u, nil
		}
	}
	return admin.User{}, repository.ErrNotFound
}

func (m *memAdmins) GetByID(_ context.Context, id uuid.UUID) (admin.User, error) {
	for _, u := range m.items {
		if u.ID == id {
			return u, nil
		}
	}
	return admin.User{}, repository.ErrNotFound
}

type memStore struct {
	candidates    *memCandidates
	resumes       *memResumes
	results       *memTestResults
	notifications *memNotifications
	rounds        *memRounds
	admins        *memAdmins
}

func newMemStore(cs ...candidate.Candidate) *memStore {
	return &memStore{
		candidates:    newMemCandidates(cs...),
		resumes:       &memResumes{},
		results:       &memTestResults{},
		notifications: &memNotifications{},
		rounds:        &memRounds{},
		admins:        &memAdmins{},
	}
}

func (m *memStore) store() repository.Store {
	return repository.Store{
		Admins:        m.admins,
		Resumes:       m.resumes,
		Candidates:    m.candidates,
		TestResults:   m.results,
		Notifications: m.notifications,
		SecondRounds:  m.rounds,
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	raw  map[string]string
	ttls map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, raw: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	b, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.ttls[key] = ttl
	c.mu.Unlock()
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.data, key)
	delete(c.raw, key)
	c.mu.Unlock()
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.raw[key]; ok {
		return false, nil
	}
	c.raw[key] = value
	return true, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	fail map[string]bool
}

func (r *recordingMailer) Send(_ context.Context, m mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[m.To] {
		return errBoom
	}
	r.sent = append(r.sent, m)
	return nil
}

type recordingPusher struct {
	pushed []notification.Notification
}

func (r *recordingPusher) Notify(n notification.Notification) { r.pushed = append(r.pushed, n) }

type stubGenerator struct {
	questions  []domain.Question
	challenges domain.Challenges
	fallback   domain.Challenges
	coding     float64
	points     int
}

func (g *stubGenerator) TotalQuestions() int    { return len(g.questions) }
func (g *stubGenerator) PointsPerQuestion() int { return g.points }
func (g *stubGenerator) Questions(context.Context, string) []domain.Question {
	return g.questions
}
func (g *stubGenerator) Challenges(context.Context, string) domain.Challenges { return g.challenges }
func (g *stubGenerator) FallbackChallenges() domain.Challenges               { return g.fallback }
func (g *stubGenerator) EvaluateCoding(_ context.Context, a []domain.CodingAnswer) float64 {
	return g.coding
}

type memFiles struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemFiles() *memFiles { return &memFiles{objects: map[string][]byte{}} }

func (f *memFiles) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.objects[key] = b
	f.mu.Unlock()
	return nil
}

func (f *memFiles) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}
