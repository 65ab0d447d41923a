package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"gatekeeper/config"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/infra/auth"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryUserRepository is a map-backed UserRepository for flow tests.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*entity.User)}
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[email]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	user.ID = uuid.New()
	r.users[user.Email] = user

	return nil
}

func (r *memoryUserRepository) snapshot() map[string]*entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]*entity.User, len(r.users))
	for email, user := range r.users {
		snap[email] = user
	}

	return snap
}

func (r *memoryUserRepository) restore(snap map[string]*entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = snap
}

// memoryActivityRepository is a slice-backed ActivityRepository.
type memoryActivityRepository struct {
	mu         sync.Mutex
	activities []*entity.Activity
}

func (r *memoryActivityRepository) Create(_ context.Context, activity *entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity.ID = uuid.New()
	r.activities = append(r.activities, activity)

	return nil
}

func (r *memoryActivityRepository) FindByUserID(_ context.Context, userID uuid.UUID, limit int) ([]*entity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Activity
	for i := len(r.activities) - 1; i >= 0 && len(out) < limit; i-- {
		if r.activities[i].UserID == userID {
			out = append(out, r.activities[i])
		}
	}

	return out, nil
}

// flakyActivityRepository fails the first `failures` appends, then delegates.
type flakyActivityRepository struct {
	delegate repository.ActivityRepository
	failures int
	err      error
}

func (r *flakyActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	if r.failures > 0 {
		r.failures--

		return r.err
	}

	return r.delegate.Create(ctx, activity)
}

func (r *flakyActivityRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Activity, error) {
	return r.delegate.FindByUserID(ctx, userID, limit)
}

// memoryTransactionManager gives the in-memory stores transactional
// semantics: a failed callback restores the pre-transaction snapshot.
type memoryTransactionManager struct {
	userRepo     *memoryUserRepository
	activityRepo repository.ActivityRepository
}

func (m *memoryTransactionManager) UserRepo() repository.UserRepository {
	return m.userRepo
}

func (m *memoryTransactionManager) ActivityRepo() repository.ActivityRepository {
	return m.activityRepo
}

func (m *memoryTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	snap := m.userRepo.snapshot()
	if err := fn(m); err != nil {
		m.userRepo.restore(snap)

		return err
	}

	return nil
}

// flowStores bundles the in-memory persistence for flow tests.
type flowStores struct {
	userRepo     *memoryUserRepository
	activityRepo *memoryActivityRepository
}

// newFlowService wires the usecase with the real bcrypt hasher and real jwt
// token service over in-memory storage. A non-nil wrapActivity lets a test
// interpose a failing append path in front of the store.
func newFlowService(t *testing.T, wrapActivity func(repository.ActivityRepository) repository.ActivityRepository) (usecase.AuthUsecase, flowStores) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "flow_test_access_secret"
	cfg.SecretKey.Refresh = "flow_test_refresh_secret"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	stores := flowStores{
		userRepo:     newMemoryUserRepository(),
		activityRepo: &memoryActivityRepository{},
	}
	var activityRepo repository.ActivityRepository = stores.activityRepo
	if wrapActivity != nil {
		activityRepo = wrapActivity(activityRepo)
	}

	svc := NewAuthService(AuthServiceParams{
		UserRepo:     stores.userRepo,
		ActivityRepo: activityRepo,
		TxManager: &memoryTransactionManager{
			userRepo:     stores.userRepo,
			activityRepo: activityRepo,
		},
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenService,
		Config:       cfg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, stores
}

func TestAuthFlow_RegisterThenLogin(t *testing.T) {
	svc, stores := newFlowService(t, nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &usecase.RegisterInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "Grace@Example.com",
		Password:  "cobol4ever",
	})
	require.NoError(t, err)
	require.NotNil(t, registered)
	assert.Equal(t, "grace@example.com", registered.Profile.Email)

	// Wrong password first.
	_, err = svc.Login(ctx, &usecase.LoginInput{Email: "grace@example.com", Password: "fortran4ever"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPassword))

	// Then the real one, with a differently-cased email.
	session, err := svc.Login(ctx, &usecase.LoginInput{Email: "GRACE@example.com", Password: "cobol4ever"})
	require.NoError(t, err)
	assert.Equal(t, registered.Profile.ID, session.ID)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.NotEqual(t, session.AccessToken, session.RefreshToken)

	// One signup record plus one login record; the failed attempt wrote nothing.
	activities, err := svc.RecentActivity(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, entity.ActivityLogin, activities[0].ActivityType)
	assert.Equal(t, entity.ActivitySignup, activities[1].ActivityType)

	require.Len(t, stores.activityRepo.activities, 2)
}

func TestAuthFlow_RefreshGrantsNewAccessToken(t *testing.T) {
	svc, _ := newFlowService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, &usecase.RegisterInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "cobol4ever",
	})
	require.NoError(t, err)

	session, err := svc.Login(ctx, &usecase.LoginInput{Email: "grace@example.com", Password: "cobol4ever"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: session.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted where a refresh token is expected.
	_, err = svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: session.AccessToken})
	assert.Error(t, err)
}

func TestAuthFlow_FailedAuditAppendLeavesNoCredential(t *testing.T) {
	svc, stores := newFlowService(t, func(delegate repository.ActivityRepository) repository.ActivityRepository {
		return &flakyActivityRepository{delegate: delegate, failures: 1, err: errors.New("connection reset")}
	})
	ctx := context.Background()

	input := &usecase.RegisterInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "cobol4ever",
	}

	_, err := svc.Register(ctx, input)
	require.Error(t, err)

	// The transaction rolled back, so no credential row survives.
	_, err = stores.userRepo.FindByEmail(ctx, "grace@example.com")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))

	// The rolled-back credential must not be able to log in.
	_, err = svc.Login(ctx, &usecase.LoginInput{Email: "grace@example.com", Password: "cobol4ever"})
	assert.True(t, errors.Is(err, domainerrors.ErrNoSuchUser))

	// Retrying the same registration succeeds; the email was never taken.
	registered, err := svc.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", registered.Profile.Email)
	require.Len(t, stores.activityRepo.activities, 1)
	assert.Equal(t, entity.ActivitySignup, stores.activityRepo.activities[0].ActivityType)
}

func TestAuthFlow_DuplicateRegistration(t *testing.T) {
	svc, _ := newFlowService(t, nil)
	ctx := context.Background()

	input := &usecase.RegisterInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "cobol4ever",
	}

	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}
