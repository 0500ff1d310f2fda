package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"kaziid/internal/audit"
	"kaziid/internal/auth"
	"kaziid/internal/identity"
	"kaziid/internal/platform/metrics"
	"kaziid/pkg/domain"
	"kaziid/pkg/platform/sentinel"
	"kaziid/pkg/profile"
)

// Service is the single source of truth for who is signed in on this
// installation. It holds at most one resident identity, keeps it in
// agreement with the durable snapshot slot after every successful mutation,
// and restores it once at process start.
//
// Construct one Service at application start and hand it to consumers;
// it is not an ambient global. All methods are safe for concurrent use:
// mutating operations take an exclusive lock held across their persistence
// step, so operations issued sequentially by one caller complete in issue
// order.
//
// Session lifecycle: Uninitialized -> Loading -> {Anonymous, Authenticated};
// SignOut returns to Anonymous, SignUp/SignIn to Authenticated, and
// UpdateProfile self-loops on Authenticated. Only process restart resets
// the machine.
type Service struct {
	snapshots SnapshotStore
	backend   auth.Backend
	publisher *audit.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger

	// opMu serializes mutating operations end to end, including their
	// snapshot write. stateMu guards only the fields below and is never
	// held across I/O.
	opMu      sync.Mutex
	loadGroup singleflight.Group

	stateMu      sync.RWMutex
	current      *identity.Identity
	selectedRole domain.Role
	loading      bool
	initialized  bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithAudit attaches an audit publisher; session lifecycle events are
// emitted through it.
func WithAudit(p *audit.Publisher) ServiceOption {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithMetrics attaches operation counters.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(snapshots SnapshotStore, backend auth.Backend, opts ...ServiceOption) *Service {
	s := &Service{
		snapshots: snapshots,
		backend:   backend,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// LoadIdentity rehydrates the session from the snapshot slot. Idempotent:
// once initialized it returns immediately without touching storage, and
// concurrent first calls collapse into a single read. A missing or corrupt
// snapshot is swallowed, the session simply stays anonymous; the caller
// never sees a load failure.
func (s *Service) LoadIdentity(ctx context.Context) {
	s.stateMu.Lock()
	if s.initialized {
		s.stateMu.Unlock()
		return
	}
	s.loading = true
	s.stateMu.Unlock()

	// The read, the state commit, and the restore event all happen inside
	// the flight: concurrent first calls share one execution, and a caller
	// arriving after a finished flight re-checks initialized before touching
	// storage. Guarantees at most one read per process lifetime.
	_, _, _ = s.loadGroup.Do("snapshot", func() (any, error) {
		s.stateMu.RLock()
		done := s.initialized
		s.stateMu.RUnlock()
		if done {
			return nil, nil
		}

		ident, err := s.snapshots.Load(ctx)

		var restored *identity.Identity
		switch {
		case err == nil:
			restored = &ident
		case errors.Is(err, sentinel.ErrNotFound):
			// Empty slot: anonymous session.
		default:
			s.logger.WarnContext(ctx, "session snapshot unreadable, starting anonymous", "error", err)
		}

		s.stateMu.Lock()
		s.current = restored
		s.initialized = true
		s.stateMu.Unlock()

		if restored != nil {
			s.emit(ctx, audit.ActionSessionRestored, *restored, "")
		}
		return nil, nil
	})

	s.stateMu.Lock()
	s.loading = false
	s.stateMu.Unlock()
}

// SignUp registers a fresh identity through the auth backend, persists it
// as the session snapshot, and makes it current. On any failure the prior
// session state, if any, is retained unchanged.
func (s *Service) SignUp(ctx context.Context, req auth.RegisterRequest) (identity.Identity, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ident, err := s.backend.Register(ctx, req)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("sign-up failed: %w", err)
	}
	if err := s.snapshots.Save(ctx, ident); err != nil {
		return identity.Identity{}, fmt.Errorf("sign-up failed: %w", err)
	}

	s.setCurrent(ident)
	if s.metrics != nil {
		s.metrics.SignUps.Inc()
	}
	s.emit(ctx, audit.ActionSignedUp, ident, "")
	return ident, nil
}

// SignIn resolves the account through the auth backend and replaces the
// current identity wholesale. Unknown email comes back as
// sentinel.ErrInvalidCredentials with the prior identity untouched.
func (s *Service) SignIn(ctx context.Context, email, password string) (identity.Identity, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	ident, err := s.backend.Authenticate(ctx, email, password)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SignInFailures.Inc()
		}
		if errors.Is(err, sentinel.ErrInvalidCredentials) {
			return identity.Identity{}, err
		}
		return identity.Identity{}, fmt.Errorf("sign-in failed: %w", err)
	}
	if err := s.snapshots.Save(ctx, ident); err != nil {
		return identity.Identity{}, fmt.Errorf("sign-in failed: %w", err)
	}

	s.setCurrent(ident)
	if s.metrics != nil {
		s.metrics.SignIns.Inc()
	}
	s.emit(ctx, audit.ActionSignedIn, ident, "")
	return ident, nil
}

// UpdateProfile shallow-merges partial into the current identity's profile:
// named keys overwrite, untouched keys are retained. A no-op returning
// (nil, nil) when the session is anonymous.
//
// The merge is applied to memory before the snapshot write and is NOT
// rolled back if the write fails; the error is returned so callers can
// surface it, and the divergence is logged and counted. This optimistic
// behavior is inherited from the source system.
func (s *Service) UpdateProfile(ctx context.Context, partial profile.Profile) (*identity.Identity, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.stateMu.RLock()
	current := s.current
	s.stateMu.RUnlock()
	if current == nil {
		return nil, nil
	}

	merged := *current
	merged.Profile = current.Profile.Merge(partial)
	s.setCurrent(merged)
	if s.metrics != nil {
		s.metrics.ProfileUpdates.Inc()
	}
	s.emit(ctx, audit.ActionProfileUpdated, merged, "")

	if err := s.snapshots.Save(ctx, merged); err != nil {
		if s.metrics != nil {
			s.metrics.SnapshotWriteFailures.Inc()
		}
		s.logger.ErrorContext(ctx, "profile persisted in memory only, snapshot write failed",
			"identity_id", merged.ID,
			"error", err,
		)
		return &merged, fmt.Errorf("persist profile: %w", err)
	}
	return &merged, nil
}

// SignOut clears the session unconditionally. The snapshot delete is
// best-effort: a failure is logged and the caller still observes a
// signed-out session.
func (s *Service) SignOut(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.stateMu.Lock()
	prior := s.current
	s.current = nil
	s.selectedRole = ""
	s.stateMu.Unlock()

	if err := s.snapshots.Delete(ctx); err != nil {
		s.logger.WarnContext(ctx, "snapshot delete failed on sign-out", "error", err)
	}
	if s.metrics != nil {
		s.metrics.SignOuts.Inc()
	}
	if prior != nil {
		s.emit(ctx, audit.ActionSignedOut, *prior, "")
	}
}

// SetSelectedRole records the role chosen during onboarding. Transient:
// never persisted, cleared by SignOut.
func (s *Service) SetSelectedRole(role domain.Role) error {
	if _, err := domain.ParseRole(role.String()); err != nil {
		return err
	}
	s.stateMu.Lock()
	s.selectedRole = role
	s.stateMu.Unlock()
	return nil
}

// Current returns a copy of the signed-in identity, if any.
func (s *Service) Current() (identity.Identity, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.current == nil {
		return identity.Identity{}, false
	}
	ident := *s.current
	ident.Profile = s.current.Profile.Clone()
	return ident, true
}

// SelectedRole returns the transient onboarding role, if one was chosen.
func (s *Service) SelectedRole() (domain.Role, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.selectedRole, !s.selectedRole.IsNil()
}

// Loading reports whether a snapshot load is in flight.
func (s *Service) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

// Initialized reports whether the first load attempt has completed.
func (s *Service) Initialized() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.initialized
}

func (s *Service) setCurrent(ident identity.Identity) {
	s.stateMu.Lock()
	s.current = &ident
	s.stateMu.Unlock()
}

func (s *Service) emit(ctx context.Context, action audit.Action, ident identity.Identity, reason string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Emit(ctx, audit.Event{
		Action:     action,
		IdentityID: ident.ID,
		Email:      ident.Email,
		Role:       ident.Role,
		Domain:     ident.Domain,
		Device:     auth.DeviceFromContext(ctx),
		Reason:     reason,
	})
}
