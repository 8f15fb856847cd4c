package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/events"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
)

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) typesSeen() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

type fakeUserRepo struct {
	users  map[string]*domain.User
	saved  []*domain.User
	insert func(*domain.User) error
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByRegistrationToken(_ context.Context, token string) (*domain.User, error) {
	for _, user := range f.users {
		if user.RegistrationToken != nil && *user.RegistrationToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(context.Context, crud.ListQuery) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) ListAll(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, user *domain.User) error {
	if f.insert != nil {
		if err := f.insert(user); err != nil {
			return err
		}
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	if f.users == nil {
		f.users = make(map[string]*domain.User)
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.users[user.ID] = &clone
	f.saved = append(f.saved, &clone)
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = domain.UserStatusDeleted
	return nil
}

type fakePoolRepo struct {
	pools map[string]*domain.LeadPool
}

func (f *fakePoolRepo) GetByID(_ context.Context, id string) (*domain.LeadPool, error) {
	pool, ok := f.pools[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return pool, nil
}

func (f *fakePoolRepo) List(context.Context, crud.ListQuery) ([]domain.LeadPool, int64, error) {
	return nil, 0, nil
}
func (f *fakePoolRepo) Insert(context.Context, *domain.LeadPool) error { return nil }
func (f *fakePoolRepo) Save(context.Context, *domain.LeadPool) error   { return nil }
func (f *fakePoolRepo) Delete(context.Context, string) error           { return nil }

type fakeLeadRepo struct {
	leads        map[string]*domain.Lead
	assignErr    error
	assigned     int64
	lastAssign   []string
	inserted     []*domain.Lead
	dispoUpdates int
}

func (f *fakeLeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return lead, nil
}

func (f *fakeLeadRepo) List(context.Context, crud.ListQuery) ([]domain.Lead, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeadRepo) Insert(_ context.Context, lead *domain.Lead) error {
	lead.ID = "lead-new"
	f.inserted = append(f.inserted, lead)
	return nil
}

func (f *fakeLeadRepo) Save(context.Context, *domain.Lead) error { return nil }
func (f *fakeLeadRepo) Delete(context.Context, string) error     { return nil }

func (f *fakeLeadRepo) AssignBatch(_ context.Context, _, _ string, leadIDs []string) (int64, error) {
	if f.assignErr != nil {
		return 0, f.assignErr
	}
	f.lastAssign = leadIDs
	f.assigned = int64(len(leadIDs))
	return f.assigned, nil
}

func (f *fakeLeadRepo) UpdateDisposition(_ context.Context, leadID string, firstID, secondID, thirdID *string, _ string) (*domain.Lead, error) {
	lead, ok := f.leads[leadID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	f.dispoUpdates++
	lead.FirstDispositionID = firstID
	lead.SecondDispositionID = secondID
	lead.ThirdDispositionID = thirdID
	return lead, nil
}

type fakeCampaignRepo struct {
	byLink    map[string]*domain.Campaign
	clicks    map[string]int
	setActive func(id string, active bool) (*domain.Campaign, error)
}

func (f *fakeCampaignRepo) GetByLink(_ context.Context, link string) (*domain.Campaign, error) {
	campaign, ok := f.byLink[link]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return campaign, nil
}

func (f *fakeCampaignRepo) IncrementClicks(_ context.Context, id string) error {
	if f.clicks == nil {
		f.clicks = make(map[string]int)
	}
	f.clicks[id]++
	return nil
}

func (f *fakeCampaignRepo) SetActive(_ context.Context, id string, active bool) (*domain.Campaign, error) {
	if f.setActive != nil {
		return f.setActive(id, active)
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCampaignRepo) List(context.Context, crud.ListQuery) ([]domain.Campaign, int64, error) {
	return nil, 0, nil
}
func (f *fakeCampaignRepo) GetByID(context.Context, string) (*domain.Campaign, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakeCampaignRepo) Insert(context.Context, *domain.Campaign) error { return nil }
func (f *fakeCampaignRepo) Save(context.Context, *domain.Campaign) error   { return nil }
func (f *fakeCampaignRepo) Delete(context.Context, string) error           { return nil }

type fakeSecondDispoRepo struct {
	rows map[string]*domain.SecondDisposition
}

func (f *fakeSecondDispoRepo) GetByID(_ context.Context, id string) (*domain.SecondDisposition, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeSecondDispoRepo) List(context.Context, crud.ListQuery) ([]domain.SecondDisposition, int64, error) {
	return nil, 0, nil
}
func (f *fakeSecondDispoRepo) Insert(context.Context, *domain.SecondDisposition) error { return nil }
func (f *fakeSecondDispoRepo) Save(context.Context, *domain.SecondDisposition) error   { return nil }
func (f *fakeSecondDispoRepo) Delete(context.Context, string) error                    { return nil }

type fakeThirdDispoRepo struct {
	rows map[string]*domain.ThirdDisposition
}

func (f *fakeThirdDispoRepo) GetByID(_ context.Context, id string) (*domain.ThirdDisposition, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeThirdDispoRepo) List(context.Context, crud.ListQuery) ([]domain.ThirdDisposition, int64, error) {
	return nil, 0, nil
}
func (f *fakeThirdDispoRepo) Insert(context.Context, *domain.ThirdDisposition) error { return nil }
func (f *fakeThirdDispoRepo) Save(context.Context, *domain.ThirdDisposition) error   { return nil }
func (f *fakeThirdDispoRepo) Delete(context.Context, string) error                   { return nil }

type fakeHistoryRepo struct {
	entries map[string][]domain.DispositionHistory
}

func (f *fakeHistoryRepo) ListByLead(_ context.Context, leadID string) ([]domain.DispositionHistory, error) {
	return f.entries[leadID], nil
}

var (
	_ repository.UserRepository               = (*fakeUserRepo)(nil)
	_ repository.LeadPoolRepository           = (*fakePoolRepo)(nil)
	_ repository.LeadRepository               = (*fakeLeadRepo)(nil)
	_ repository.CampaignRepository           = (*fakeCampaignRepo)(nil)
	_ repository.SecondDispositionRepository  = (*fakeSecondDispoRepo)(nil)
	_ repository.ThirdDispositionRepository   = (*fakeThirdDispoRepo)(nil)
	_ repository.DispositionHistoryRepository = (*fakeHistoryRepo)(nil)
	_ events.Dispatcher                       = (*recordingDispatcher)(nil)
)
