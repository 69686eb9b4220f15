package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/service"
	"asset-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint64]*entities.User
	seq   uint64
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint64]*entities.User)}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.seq {
			r.seq = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entities.User) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	u.ID = r.seq
	r.users[u.ID] = u
	return u.ID, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) ListByRoles(ctx context.Context, roles []constants.Role) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func newAuthFixture(t *testing.T) (AuthServiceInterface, *fakeUserRepo, service.JWTService) {
	t.Helper()
	hash, err := utils.HashPassword("secreto123")
	require.NoError(t, err)

	userRepo := newFakeUserRepo(&entities.User{
		ID:           1,
		Username:     "admin",
		Email:        "admin@activos.local",
		PasswordHash: hash,
		Role:         constants.RoleAdministrator,
	})
	jwtSvc := service.NewJWTService("clave-de-prueba", time.Minute, time.Hour)
	return NewAuthService(userRepo, jwtSvc, testLogger()), userRepo, jwtSvc
}

func TestLogin_Success(t *testing.T) {
	svc, _, jwtSvc := newAuthFixture(t)

	pair, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "admin@activos.local",
		Password: "secreto123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := jwtSvc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), claims.UserID)
	assert.Equal(t, string(constants.RoleAdministrator), claims.Role)
	assert.False(t, claims.IsRefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "admin@activos.local",
		Password: "incorrecta",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "nadie@activos.local",
		Password: "lo-que-sea",
	})
	// El mismo error para usuario inexistente y contraseña incorrecta.
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegister_AdminOnly(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)

	_, err := svc.Register(testCtx(1, constants.RoleManager), dto.RegisterUserDTO{
		Username: "nuevo",
		Email:    "nuevo@activos.local",
		Password: "secreto123",
		Role:     string(constants.RoleTechnician),
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	created, err := svc.Register(testCtx(1, constants.RoleAdministrator), dto.RegisterUserDTO{
		Username: "nuevo",
		Email:    "nuevo@activos.local",
		Password: "secreto123",
		Role:     string(constants.RoleTechnician),
	})
	require.NoError(t, err)
	assert.Equal(t, string(constants.RoleTechnician), created.Role)

	stored, err := userRepo.FindByEmail(context.Background(), "nuevo@activos.local")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "la contraseña se guarda hasheada")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(testCtx(1, constants.RoleAdministrator), dto.RegisterUserDTO{
		Username: "otro",
		Email:    "admin@activos.local",
		Password: "secreto123",
		Role:     string(constants.RoleManager),
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestRefresh_RotatesTokensWithCurrentRole(t *testing.T) {
	svc, userRepo, jwtSvc := newAuthFixture(t)

	pair, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "admin@activos.local",
		Password: "secreto123",
	})
	require.NoError(t, err)

	// El rol pudo cambiar después de emitido el refresh.
	user, err := userRepo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	user.Role = constants.RoleManager

	renewed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(renewed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(constants.RoleManager), claims.Role)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	pair, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "admin@activos.local",
		Password: "secreto123",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
