package service

import (
	"context"
	"errors"
	"testing"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/events"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

func newLeadService(deps LeadDependencies) (*LeadService, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	return NewLeadService(deps, dispatcher, nil), dispatcher
}

func TestCaptureRejectsUnknownAndInactiveLinks(t *testing.T) {
	campaigns := &fakeCampaignRepo{byLink: map[string]*domain.Campaign{
		"dormant": {ID: "c-1", UniqueLink: "dormant", Active: false},
	}}
	svc, _ := newLeadService(LeadDependencies{
		LeadRepo:     &fakeLeadRepo{},
		CampaignRepo: campaigns,
	})

	_, err := svc.Capture(context.Background(), CaptureInput{
		FullName: "Jane Doe", Phone: "0771234567", CampaignLink: "no-such-link",
	})
	assertStatus(t, err, 400)

	_, err = svc.Capture(context.Background(), CaptureInput{
		FullName: "Jane Doe", Phone: "0771234567", CampaignLink: "dormant",
	})
	assertStatus(t, err, 400)
}

func TestCaptureLinksLeadToCampaign(t *testing.T) {
	leads := &fakeLeadRepo{}
	campaigns := &fakeCampaignRepo{byLink: map[string]*domain.Campaign{
		"live": {ID: "c-1", UniqueLink: "live", Active: true},
	}}
	svc, dispatcher := newLeadService(LeadDependencies{
		LeadRepo:     leads,
		CampaignRepo: campaigns,
	})

	lead, err := svc.Capture(context.Background(), CaptureInput{
		FullName: "Jane Doe", Phone: "0771234567", CampaignLink: "live",
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if lead.CampaignID == nil || *lead.CampaignID != "c-1" {
		t.Errorf("campaign id = %v, want c-1", lead.CampaignID)
	}
	if len(leads.inserted) != 1 {
		t.Fatalf("inserted = %d, want 1", len(leads.inserted))
	}
	if got := dispatcher.typesSeen(); len(got) != 1 || got[0] != events.EventLeadCaptured {
		t.Errorf("events = %v, want [lead_captured]", got)
	}
}

func TestCaptureWithoutLinkNeedsNoCampaign(t *testing.T) {
	leads := &fakeLeadRepo{}
	svc, _ := newLeadService(LeadDependencies{
		LeadRepo:     leads,
		CampaignRepo: &fakeCampaignRepo{},
	})

	lead, err := svc.Capture(context.Background(), CaptureInput{
		FullName: "Walk In", Phone: "0779999999",
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if lead.CampaignID != nil {
		t.Errorf("campaign id = %v, want nil", lead.CampaignID)
	}
}

func distributeDeps() (LeadDependencies, *fakeLeadRepo) {
	leads := &fakeLeadRepo{}
	deps := LeadDependencies{
		LeadRepo: leads,
		PoolRepo: &fakePoolRepo{pools: map[string]*domain.LeadPool{
			"pool-1": {ID: "pool-1", Name: "fresh"},
		}},
		UserRepo: &fakeUserRepo{users: map[string]*domain.User{
			"agent-1":      {ID: "agent-1", Role: domain.RoleAgent, Status: domain.UserStatusActive},
			"agent-idle":   {ID: "agent-idle", Role: domain.RoleAgent, Status: domain.UserStatusPending},
			"supervisor-1": {ID: "supervisor-1", Role: domain.RoleSupervisor, Status: domain.UserStatusActive},
		}},
	}
	return deps, leads
}

func TestDistributeValidatesTargets(t *testing.T) {
	deps, _ := distributeDeps()
	svc, _ := newLeadService(deps)
	ctx := context.Background()
	ids := []string{"l-1", "l-2"}

	if _, err := svc.Distribute(ctx, "no-pool", "agent-1", ids, "admin-1"); err == nil {
		t.Error("unknown pool accepted")
	} else {
		assertStatus(t, err, 404)
	}

	if _, err := svc.Distribute(ctx, "pool-1", "ghost", ids, "admin-1"); err == nil {
		t.Error("unknown agent accepted")
	} else {
		assertStatus(t, err, 400)
	}

	if _, err := svc.Distribute(ctx, "pool-1", "supervisor-1", ids, "admin-1"); err == nil {
		t.Error("non-agent target accepted")
	} else {
		assertStatus(t, err, 400)
	}

	if _, err := svc.Distribute(ctx, "pool-1", "agent-idle", ids, "admin-1"); err == nil {
		t.Error("inactive agent accepted")
	} else {
		assertStatus(t, err, 400)
	}

	if _, err := svc.Distribute(ctx, "pool-1", "agent-1", nil, "admin-1"); err == nil {
		t.Error("empty batch accepted")
	}
}

func TestDistributePartialBatchIsAllOrNothing(t *testing.T) {
	deps, leads := distributeDeps()
	leads.assignErr = &repository.PartialAssignmentError{Requested: 3, Assignable: 1}
	svc, dispatcher := newLeadService(deps)

	_, err := svc.Distribute(context.Background(), "pool-1", "agent-1", []string{"l-1", "l-2", "l-3"}, "admin-1")
	if err == nil {
		t.Fatal("partial batch accepted")
	}

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error type = %T", err)
	}
	if domainErr.HTTPStatus != 400 {
		t.Errorf("status = %d, want 400", domainErr.HTTPStatus)
	}
	if domainErr.Details["offending_leads"] != 2 {
		t.Errorf("offending_leads = %v, want 2", domainErr.Details["offending_leads"])
	}
	if len(dispatcher.published) != 0 {
		t.Errorf("events published on failure: %v", dispatcher.typesSeen())
	}
}

func TestDistributeSuccessReportsCount(t *testing.T) {
	deps, leads := distributeDeps()
	svc, dispatcher := newLeadService(deps)

	assigned, err := svc.Distribute(context.Background(), "pool-1", "agent-1", []string{"l-1", "l-2"}, "admin-1")
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if assigned != 2 {
		t.Errorf("assigned = %d, want 2", assigned)
	}
	if len(leads.lastAssign) != 2 {
		t.Errorf("batch forwarded = %v", leads.lastAssign)
	}
	if got := dispatcher.typesSeen(); len(got) != 1 || got[0] != events.EventLeadsAssigned {
		t.Errorf("events = %v, want [leads_assigned]", got)
	}
}

func dispositionDeps() LeadDependencies {
	return LeadDependencies{
		LeadRepo: &fakeLeadRepo{leads: map[string]*domain.Lead{
			"l-1": {ID: "l-1", FullName: "Jane Doe", Phone: "0771234567"},
		}},
		SecondDispoRepo: &fakeSecondDispoRepo{rows: map[string]*domain.SecondDisposition{
			"s-1": {ID: "s-1", Name: "Interested", FirstID: "f-1"},
		}},
		ThirdDispoRepo: &fakeThirdDispoRepo{rows: map[string]*domain.ThirdDisposition{
			"t-1": {ID: "t-1", Name: "Bought", SecondID: "s-1", Category: domain.DispositionCategorySale},
			"t-x": {ID: "t-x", Name: "Other", SecondID: "s-other", Category: domain.DispositionCategoryDNC},
		}},
		HistoryRepo: &fakeHistoryRepo{},
	}
}

func TestUpdateDispositionEnforcesHierarchy(t *testing.T) {
	svc, _ := newLeadService(dispositionDeps())
	ctx := context.Background()
	first := "f-wrong"
	second := "s-1"
	thirdForeign := "t-x"
	third := "t-1"

	_, err := svc.UpdateDisposition(ctx, "l-1", DispositionInput{FirstID: &first, SecondID: &second}, "agent-1")
	assertStatus(t, err, 400)

	_, err = svc.UpdateDisposition(ctx, "l-1", DispositionInput{SecondID: &second, ThirdID: &thirdForeign}, "agent-1")
	assertStatus(t, err, 400)

	_, err = svc.UpdateDisposition(ctx, "l-1", DispositionInput{ThirdID: &third}, "agent-1")
	assertStatus(t, err, 400)
}

func TestUpdateDispositionInfersFirstLevel(t *testing.T) {
	svc, dispatcher := newLeadService(dispositionDeps())
	second := "s-1"

	lead, err := svc.UpdateDisposition(context.Background(), "l-1", DispositionInput{SecondID: &second}, "agent-1")
	if err != nil {
		t.Fatalf("update disposition: %v", err)
	}
	if lead.FirstDispositionID == nil || *lead.FirstDispositionID != "f-1" {
		t.Errorf("first disposition = %v, want inferred f-1", lead.FirstDispositionID)
	}
	if got := dispatcher.typesSeen(); len(got) != 1 || got[0] != events.EventDispositionChanged {
		t.Errorf("events = %v, want [disposition_changed]", got)
	}
}

func TestUpdateDispositionUnknownLeadIs404(t *testing.T) {
	svc, _ := newLeadService(dispositionDeps())
	second := "s-1"

	_, err := svc.UpdateDisposition(context.Background(), "nope", DispositionInput{SecondID: &second}, "agent-1")
	assertStatus(t, err, 404)
}

func TestDispositionHistoryRequiresLead(t *testing.T) {
	deps := dispositionDeps()
	deps.HistoryRepo = &fakeHistoryRepo{entries: map[string][]domain.DispositionHistory{
		"l-1": {{ID: "h-1", LeadID: "l-1", ChangedByID: "agent-1"}},
	}}
	svc, _ := newLeadService(deps)

	entries, err := svc.DispositionHistory(context.Background(), "l-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "h-1" {
		t.Errorf("entries = %+v", entries)
	}

	_, err = svc.DispositionHistory(context.Background(), "nope")
	assertStatus(t, err, 404)
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error type = %T: %v", err, err)
	}
	if domainErr.HTTPStatus != want {
		t.Errorf("status = %d, want %d (%v)", domainErr.HTTPStatus, want, err)
	}
}
