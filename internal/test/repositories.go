package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
	"github.com/polkiloo/gigmarket/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu      sync.Mutex
	ByEmail map[string]*model.User
	ByID    map[string]*model.User
	Next    int
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[string]*model.User),
		Next:    1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", s.Next)
		s.Next++
	}
	stored := user
	s.ByEmail[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return &user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		u := *user
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MemoryStore keeps projects, bids and payments in memory. Every operation
// holds one mutex, so locked callbacks observe the same isolation the
// PostgreSQL row locks give.
type MemoryStore struct {
	mu       sync.Mutex
	users    *UserRepositoryStub
	projects map[string]*model.Project
	bids     map[string]*model.Bid
	payments map[string]*model.Payment
	seq      int
	clock    time.Time

	// Err fails every project, bid, payment and dashboard operation when set.
	Err error
	// CompleteWrites counts payment rows written by Complete.
	CompleteWrites int
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    NewUserRepositoryStub(),
		projects: make(map[string]*model.Project),
		bids:     make(map[string]*model.Bid),
		payments: make(map[string]*model.Payment),
		clock:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

var _ repository.Factory = (*MemoryStore)(nil)

func (s *MemoryStore) Users() repository.UserRepository          { return s.users }
func (s *MemoryStore) Projects() repository.ProjectRepository    { return memProjects{s} }
func (s *MemoryStore) Bids() repository.BidRepository            { return memBids{s} }
func (s *MemoryStore) Payments() repository.PaymentRepository    { return memPayments{s} }
func (s *MemoryStore) Dashboard() repository.DashboardRepository { return memDashboard{s} }

// tick returns a strictly increasing timestamp and sequence number.
func (s *MemoryStore) tick() (time.Time, int) {
	s.seq++
	return s.clock.Add(time.Duration(s.seq) * time.Second), s.seq
}

// SeedProject stores p as is, assigning an id and timestamps when missing.
func (s *MemoryStore) SeedProject(p model.Project) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, seq := s.tick()
	if p.ID == "" {
		p.ID = fmt.Sprintf("project-%d", seq)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt, p.UpdatedAt = now, now
	}
	stored := p
	s.projects[p.ID] = &stored
	return p
}

// SeedBid stores b as is, assigning an id and timestamps when missing.
func (s *MemoryStore) SeedBid(b model.Bid) model.Bid {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, seq := s.tick()
	if b.ID == "" {
		b.ID = fmt.Sprintf("bid-%d", seq)
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt, b.UpdatedAt = now, now
	}
	stored := b
	s.bids[b.ID] = &stored
	return b
}

// SeedPayment stores p as is.
func (s *MemoryStore) SeedPayment(p model.Payment) model.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, seq := s.tick()
	if p.ID == "" {
		p.ID = fmt.Sprintf("payment-%d", seq)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt, p.UpdatedAt = now, now
	}
	stored := p
	s.payments[p.ID] = &stored
	return p
}

// Project returns a snapshot of a stored project.
func (s *MemoryStore) Project(id string) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, false
	}
	return *p, true
}

// Bid returns a snapshot of a stored bid.
func (s *MemoryStore) Bid(id string) (model.Bid, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bids[id]
	if !ok {
		return model.Bid{}, false
	}
	return *b, true
}

// Payment returns a snapshot of a stored payment.
func (s *MemoryStore) Payment(id string) (model.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return model.Payment{}, false
	}
	return *p, true
}

// PaymentCount returns the number of stored payments.
func (s *MemoryStore) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

func (s *MemoryStore) acceptedBid(projectID string) string {
	for _, b := range s.bids {
		if b.ProjectID == projectID && b.Status == model.BidStatusAccepted {
			return b.ID
		}
	}
	return ""
}

type memProjects struct{ s *MemoryStore }

func (r memProjects) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	now, seq := s.tick()
	if project.ID == "" {
		project.ID = fmt.Sprintf("project-%d", seq)
	}
	project.CreatedAt, project.UpdatedAt = now, now
	stored := project
	s.projects[project.ID] = &stored
	return &project, nil
}

func (r memProjects) GetByID(ctx context.Context, id string) (*model.Project, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: project %s", domainErrors.ErrNotFound, id)
	}
	out := *p
	return &out, nil
}

func (r memProjects) GetDetails(ctx context.Context, id string) (*model.ProjectDetails, error) {
	project, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	details := &model.ProjectDetails{Project: *project}
	for _, b := range s.bids {
		if b.ProjectID == id {
			details.Bids = append(details.Bids, *b)
		}
	}
	sort.Slice(details.Bids, func(i, j int) bool {
		return details.Bids[i].CreatedAt.After(details.Bids[j].CreatedAt)
	})
	return details, nil
}

func (r memProjects) List(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Project
	for _, p := range s.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Featured && !p.Featured {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r memProjects) Update(ctx context.Context, id string, fn repository.ProjectMutation) (*model.Project, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: project %s", domainErrors.ErrNotFound, id)
	}
	project := *stored
	changed, err := fn(&project)
	if err != nil {
		return nil, err
	}
	if changed {
		project.UpdatedAt, _ = s.tick()
		*stored = project
	}
	return &project, nil
}

type memBids struct{ s *MemoryStore }

func (r memBids) Create(ctx context.Context, bid model.Bid, admit repository.BidAdmission) (*model.Bid, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	project, ok := s.projects[bid.ProjectID]
	if !ok {
		return nil, fmt.Errorf("%w: project %s", domainErrors.ErrNotFound, bid.ProjectID)
	}
	if err := admit(*project); err != nil {
		return nil, err
	}
	now, seq := s.tick()
	if bid.ID == "" {
		bid.ID = fmt.Sprintf("bid-%d", seq)
	}
	bid.CreatedAt, bid.UpdatedAt = now, now
	stored := bid
	s.bids[bid.ID] = &stored
	return &bid, nil
}

func (r memBids) GetByID(ctx context.Context, id string) (*model.Bid, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.bids[id]
	if !ok {
		return nil, fmt.Errorf("%w: bid %s", domainErrors.ErrNotFound, id)
	}
	out := *b
	return &out, nil
}

func (r memBids) Resolve(ctx context.Context, id string, fn repository.BidResolution) (*model.Bid, *model.Project, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, nil, s.Err
	}
	storedBid, ok := s.bids[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: bid %s", domainErrors.ErrNotFound, id)
	}
	storedProject, ok := s.projects[storedBid.ProjectID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: project %s", domainErrors.ErrNotFound, storedBid.ProjectID)
	}

	bid, project := *storedBid, *storedProject
	accepted := s.acceptedBid(project.ID)
	if err := fn(&bid, &project, accepted); err != nil {
		return nil, nil, err
	}
	if bid.Status == model.BidStatusAccepted && accepted != "" && accepted != bid.ID {
		return nil, nil, fmt.Errorf("%w: project already has an accepted bid", domainErrors.ErrInvalidState)
	}

	now, _ := s.tick()
	if bid.Status != storedBid.Status {
		bid.UpdatedAt = now
	}
	if project.Status != storedProject.Status {
		project.UpdatedAt = now
	}
	*storedBid, *storedProject = bid, project
	return &bid, &project, nil
}

type memPayments struct{ s *MemoryStore }

func (r memPayments) Prepare(ctx context.Context, projectID, bidID string, fn repository.PaymentPreparation) (*model.Payment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	project, ok := s.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("%w: project %s", domainErrors.ErrNotFound, projectID)
	}
	bid, ok := s.bids[bidID]
	if !ok {
		return nil, fmt.Errorf("%w: bid %s", domainErrors.ErrNotFound, bidID)
	}

	var existing *model.Payment
	for _, p := range s.payments {
		if p.BidID == bidID {
			cp := *p
			existing = &cp
			break
		}
	}

	payment, err := fn(*project, *bid, existing)
	if err != nil {
		return nil, err
	}
	if payment == existing {
		return existing, nil
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: payment", domainErrors.ErrAlreadyExists)
	}

	now, seq := s.tick()
	created := *payment
	if created.ID == "" {
		created.ID = fmt.Sprintf("payment-%d", seq)
	}
	created.CreatedAt, created.UpdatedAt = now, now
	stored := created
	s.payments[created.ID] = &stored
	return &created, nil
}

func (r memPayments) AttachCheckout(ctx context.Context, id, sessionID, url string) (*model.Payment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored, ok := s.payments[id]
	if !ok {
		return nil, fmt.Errorf("%w: payment %s", domainErrors.ErrNotFound, id)
	}
	if stored.ExternalID == "" {
		stored.ExternalID = sessionID
		stored.CheckoutURL = url
		stored.UpdatedAt, _ = s.tick()
	}
	out := *stored
	return &out, nil
}

func (r memPayments) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.payments[id]
	if !ok {
		return nil, fmt.Errorf("%w: payment %s", domainErrors.ErrNotFound, id)
	}
	out := *p
	return &out, nil
}

func (r memPayments) Complete(ctx context.Context, id string, fn repository.PaymentMutation) (*model.Payment, bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, false, s.Err
	}
	stored, ok := s.payments[id]
	if !ok {
		return nil, false, fmt.Errorf("%w: payment %s", domainErrors.ErrNotFound, id)
	}
	payment := *stored
	changed, err := fn(&payment)
	if err != nil {
		return nil, false, err
	}
	if changed {
		payment.UpdatedAt, _ = s.tick()
		*stored = payment
		s.CompleteWrites++
	}
	return &payment, changed, nil
}

type memDashboard struct{ s *MemoryStore }

func (r memDashboard) CustomerSummary(ctx context.Context, customerID string) (*model.DashboardSummary, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	summary := &model.DashboardSummary{}
	for _, p := range s.projects {
		if p.CustomerID == customerID {
			summary.Projects++
		}
	}
	for _, b := range s.bids {
		if p, ok := s.projects[b.ProjectID]; ok && p.CustomerID == customerID {
			summary.Bids++
		}
	}
	return summary, nil
}

func (r memDashboard) FreelancerSummary(ctx context.Context, freelancerID string) (*model.DashboardSummary, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	summary := &model.DashboardSummary{}
	for _, b := range s.bids {
		if b.FreelancerID == freelancerID {
			summary.Bids++
		}
	}
	for _, p := range s.payments {
		if p.FreelancerID == freelancerID && p.Status == model.PaymentStatusCompleted {
			summary.Earnings += p.Amount
		}
	}
	return summary, nil
}
