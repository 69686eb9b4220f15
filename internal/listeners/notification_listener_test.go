package listeners

import (
	"context"
	"sync"
	"testing"

	"asset-system/internal/entities"
	"asset-system/internal/events"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentEmail struct {
	kind      string
	to        string
	unitCodes []string
	detail    string
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (s *fakeEmailService) record(e sentEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, e)
	return nil
}

func (s *fakeEmailService) SendAssignmentEmail(to, personnelName string, unitCodes []string, detail string) error {
	return s.record(sentEmail{kind: "asignacion", to: to, unitCodes: unitCodes, detail: detail})
}

func (s *fakeEmailService) SendReassignmentEmail(to, personnelName, unitCode, detail string) error {
	return s.record(sentEmail{kind: "reasignacion", to: to, unitCodes: []string{unitCode}, detail: detail})
}

func (s *fakeEmailService) SendReturnEmail(to, personnelName string, unitCodes []string, detail string) error {
	return s.record(sentEmail{kind: "devolucion", to: to, unitCodes: unitCodes, detail: detail})
}

func (s *fakeEmailService) SendDisposalRequestEmail(to, unitCode, reason string) error {
	return s.record(sentEmail{kind: "solicitud_baja", to: to, unitCodes: []string{unitCode}, detail: reason})
}

func (s *fakeEmailService) SendDisposalResolvedEmail(to, unitCode, status string) error {
	return s.record(sentEmail{kind: "baja_resuelta", to: to, unitCodes: []string{unitCode}, detail: status})
}

type fakeWSService struct {
	mu   sync.Mutex
	sent int
}

func (s *fakeWSService) SendNotification(userID uint64, payload interface{}, messageType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent++
	return nil
}

func (s *fakeWSService) SendNotificationToRoles(roles []constants.Role, payload interface{}, messageType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent++
	return nil
}

type fakeUserRepo struct {
	users map[uint64]*entities.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entities.User) (uint64, error) {
	return 0, apperrors.ErrBadRequest
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) ListByRoles(ctx context.Context, roles []constants.Role) ([]*entities.User, error) {
	var out []*entities.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func newListenerFixture() (*NotificationListener, *fakeEmailService) {
	emails := &fakeEmailService{}
	userRepo := &fakeUserRepo{users: map[uint64]*entities.User{
		1: {ID: 1, Email: "admin@activos.local", Role: constants.RoleAdministrator},
	}}
	l := NewNotificationListener(emails, &fakeWSService{}, userRepo, zap.NewNop())
	return l, emails
}

func personWithEmail(id uint64, email string) *entities.Personnel {
	return &entities.Personnel{
		ID:     id,
		Name:   "María Flores",
		Email:  null.StringFrom(email),
		Active: true,
	}
}

func TestHandleAssignmentCreated_EmailsTheAssignee(t *testing.T) {
	l, emails := newListenerFixture()

	err := l.handleAssignmentCreated(context.Background(), events.AssignmentCreatedEvent{
		Assignment: &entities.Assignment{ID: 1, Detail: "Entrega de impresoras"},
		Units: []*entities.AssetUnit{
			{ID: 1, Code: "AF-1-0001-1"},
			{ID: 2, Code: "AF-1-0001-2"},
		},
		Personnel: personWithEmail(7, "maria@activos.local"),
		ActorID:   1,
	})
	require.NoError(t, err)

	require.Len(t, emails.sent, 1)
	assert.Equal(t, "asignacion", emails.sent[0].kind)
	assert.Equal(t, "maria@activos.local", emails.sent[0].to)
	assert.Equal(t, []string{"AF-1-0001-1", "AF-1-0001-2"}, emails.sent[0].unitCodes)
	assert.Equal(t, "Entrega de impresoras", emails.sent[0].detail)
}

func TestHandleAssignmentCreated_SkipsPersonnelWithoutEmail(t *testing.T) {
	l, emails := newListenerFixture()

	err := l.handleAssignmentCreated(context.Background(), events.AssignmentCreatedEvent{
		Assignment: &entities.Assignment{ID: 1},
		Units:      []*entities.AssetUnit{{ID: 1, Code: "AF-1-0001-1"}},
		Personnel:  &entities.Personnel{ID: 7, Name: "Sin Correo"},
		ActorID:    1,
	})
	require.NoError(t, err)
	assert.Empty(t, emails.sent)
}

func TestHandleReassignmentCreated_EmailsTheNewHolder(t *testing.T) {
	l, emails := newListenerFixture()

	err := l.handleReassignmentCreated(context.Background(), events.ReassignmentCreatedEvent{
		Reassignment: &entities.Reassignment{ID: 4, Detail: "Cambio de oficina"},
		Unit:         &entities.AssetUnit{ID: 1, Code: "AF-1-0001-1"},
		NewPersonnel: personWithEmail(8, "carlos@activos.local"),
		ActorID:      1,
	})
	require.NoError(t, err)

	require.Len(t, emails.sent, 1)
	assert.Equal(t, "reasignacion", emails.sent[0].kind)
	assert.Equal(t, "carlos@activos.local", emails.sent[0].to)
	assert.Equal(t, []string{"AF-1-0001-1"}, emails.sent[0].unitCodes)
}

func TestHandleDevolutionCompleted_EmailsTheReturnedList(t *testing.T) {
	l, emails := newListenerFixture()

	err := l.handleDevolutionCompleted(context.Background(), events.DevolutionCompletedEvent{
		Personnel: personWithEmail(7, "maria@activos.local"),
		Units: []*entities.AssetUnit{
			{ID: 1, Code: "AF-1-0001-1"},
			{ID: 3, Code: "AF-1-0001-3"},
		},
		Detail:  "Fin de proyecto",
		ActorID: 1,
	})
	require.NoError(t, err)

	require.Len(t, emails.sent, 1)
	assert.Equal(t, "devolucion", emails.sent[0].kind)
	assert.Equal(t, "maria@activos.local", emails.sent[0].to)
	assert.Equal(t, []string{"AF-1-0001-1", "AF-1-0001-3"}, emails.sent[0].unitCodes)
	assert.Equal(t, "Fin de proyecto", emails.sent[0].detail)
}

func TestHandleDisposalRequested_EmailsEveryAdministrator(t *testing.T) {
	l, emails := newListenerFixture()

	err := l.handleDisposalRequested(context.Background(), events.DisposalRequestedEvent{
		Disposal: &entities.Disposal{ID: 9, AssetUnitID: 1, Reason: "Rodillo dañado", Status: entities.DisposalPending},
		Unit:     &entities.AssetUnit{ID: 1, Code: "AF-1-0001-1"},
		ActorID:  2,
	})
	require.NoError(t, err)

	require.Len(t, emails.sent, 1)
	assert.Equal(t, "solicitud_baja", emails.sent[0].kind)
	assert.Equal(t, "admin@activos.local", emails.sent[0].to)
}
