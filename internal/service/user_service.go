package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/manyinyire/Outleads-sub001/internal/config"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/events"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// UserService handles approval lifecycle and the user export.
type UserService struct {
	users           repository.UserRepository
	dispatcher      events.Dispatcher
	registrationTTL time.Duration
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{
		users:           users,
		dispatcher:      dispatcher,
		registrationTTL: time.Duration(cfg.Auth.RegistrationTTLHours) * time.Hour,
	}
}

// Approve moves a PENDING account to APPROVED and issues a one-time
// registration token the user completes registration with.
func (s *UserService) Approve(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status != domain.UserStatusPending {
		return nil, apperrors.NewConflict("user is not pending approval", nil)
	}

	token := uuid.NewString()
	expires := time.Now().Add(s.registrationTTL)
	user.Status = domain.UserStatusApproved
	user.RegistrationToken = &token
	user.RegistrationExpires = &expires
	if err := s.users.Save(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishLifecycle(ctx, events.EventUserApproved, user)
	return user, nil
}

// Reject moves a PENDING account to REJECTED.
func (s *UserService) Reject(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status != domain.UserStatusPending {
		return nil, apperrors.NewConflict("user is not pending approval", nil)
	}

	user.Status = domain.UserStatusRejected
	if err := s.users.Save(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ExportCSV renders all non-deleted users as CSV and returns the content
// with its dated filename.
func (s *UserService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}

	// encoding/csv only quotes when forced to; the export format quotes
	// every field, so rows are written by hand.
	var buf bytes.Buffer
	writeQuotedRecord(&buf, []string{"id", "full_name", "email", "role", "status", "sbu", "created_at"})
	for _, u := range users {
		sbu := ""
		if u.SBU != nil {
			sbu = *u.SBU
		}
		writeQuotedRecord(&buf, []string{
			u.ID,
			u.FullName,
			u.Email,
			string(u.Role),
			string(u.Status),
			sbu,
			u.CreatedAt.Format(time.RFC3339),
		})
	}

	filename := fmt.Sprintf("nexus-users-export-%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func writeQuotedRecord(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}

func (s *UserService) load(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *UserService) publishLifecycle(ctx context.Context, eventType events.EventType, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload: events.UserLifecyclePayload{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Status: user.Status,
		},
	})
}
