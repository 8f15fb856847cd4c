package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/manyinyire/Outleads-sub001/internal/config"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/events"
)

func userTestConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			AccessSecret:         "access-secret",
			RefreshSecret:        "refresh-secret",
			AccessTTLMinutes:     15,
			RefreshTTLHours:      168,
			RegistrationTTLHours: 72,
			BcryptCost:           4,
		},
	}
}

func TestApproveIssuesRegistrationToken(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{
		"u-1": {ID: "u-1", Email: "jane@example.com", Role: domain.RoleAgent, Status: domain.UserStatusPending},
	}}
	dispatcher := &recordingDispatcher{}
	svc := NewUserService(userTestConfig(), repo, dispatcher)

	user, err := svc.Approve(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if user.Status != domain.UserStatusApproved {
		t.Errorf("status = %s, want APPROVED", user.Status)
	}
	if user.RegistrationToken == nil || *user.RegistrationToken == "" {
		t.Fatal("registration token missing")
	}
	if user.RegistrationExpires == nil {
		t.Fatal("registration expiry missing")
	}
	ttl := time.Until(*user.RegistrationExpires)
	if ttl < 71*time.Hour || ttl > 73*time.Hour {
		t.Errorf("registration ttl = %v, want ~72h", ttl)
	}
	if got := dispatcher.typesSeen(); len(got) != 1 || got[0] != events.EventUserApproved {
		t.Errorf("events = %v, want [user_approved]", got)
	}
}

func TestApproveRequiresPendingStatus(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{
		"u-1": {ID: "u-1", Status: domain.UserStatusActive},
	}}
	svc := NewUserService(userTestConfig(), repo, &recordingDispatcher{})

	_, err := svc.Approve(context.Background(), "u-1")
	assertStatus(t, err, 409)

	_, err = svc.Approve(context.Background(), "ghost")
	assertStatus(t, err, 404)
}

func TestRejectFlipsStatus(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{
		"u-1": {ID: "u-1", Status: domain.UserStatusPending},
	}}
	svc := NewUserService(userTestConfig(), repo, &recordingDispatcher{})

	user, err := svc.Reject(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if user.Status != domain.UserStatusRejected {
		t.Errorf("status = %s, want REJECTED", user.Status)
	}

	_, err = svc.Reject(context.Background(), "u-1")
	assertStatus(t, err, 409)
}

func TestExportCSVShape(t *testing.T) {
	sbu := "RETAIL"
	repo := &fakeUserRepo{users: map[string]*domain.User{
		"u-1": {
			ID: "u-1", FullName: "Jane, Doe", Email: "jane@example.com",
			Role: domain.RoleAgent, Status: domain.UserStatusActive, SBU: &sbu,
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}}
	svc := NewUserService(userTestConfig(), repo, &recordingDispatcher{})

	data, filename, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wantName := fmt.Sprintf("nexus-users-export-%s.csv", time.Now().Format("2006-01-02"))
	if filename != wantName {
		t.Errorf("filename = %q, want %q", filename, wantName)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(records))
	}

	wantHeader := []string{"id", "full_name", "email", "role", "status", "sbu", "created_at"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}
	if records[1][1] != "Jane, Doe" {
		t.Errorf("full_name = %q; comma must survive quoting", records[1][1])
	}
	if records[1][5] != "RETAIL" {
		t.Errorf("sbu = %q, want RETAIL", records[1][5])
	}
}

func TestExportCSVQuotesEveryField(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{
		"u-1": {
			ID: "u-1", FullName: `Jane "JD" Doe`, Email: "jane@example.com",
			Role: domain.RoleAgent, Status: domain.UserStatusActive,
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}}
	svc := NewUserService(userTestConfig(), repo, &recordingDispatcher{})

	data, _, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1", len(lines))
	}
	wantHeader := `"id","full_name","email","role","status","sbu","created_at"`
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want every field quoted: %q", lines[0], wantHeader)
	}
	wantRow := `"u-1","Jane ""JD"" Doe","jane@example.com","AGENT","ACTIVE","","2026-03-01T10:00:00Z"`
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}
