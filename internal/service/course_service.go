package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"app/internal/gateway"
	"app/internal/model"
	"app/internal/search"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrSessionNotFound is returned for unknown or closed search sessions.
var ErrSessionNotFound = errors.New("search session not found")

// searchTimeout bounds the upstream call fired by a settled typeahead burst.
const searchTimeout = 10 * time.Second

// CourseService exposes catalog search, debounced typeahead sessions, and the
// passive header counts.
type CourseService interface {
	Search(ctx context.Context, f model.CourseFilters) (*model.CoursePage, error)

	// OpenSearchSession starts a typeahead session. Keystrokes typed into the
	// session are debounced: only the last burst within the interval reaches
	// the upstream search.
	OpenSearchSession() string
	TypeKeyword(ctx context.Context, sessionID string, f model.CourseFilters) error
	// SessionResult returns the latest settled result and whether a search is
	// still pending.
	SessionResult(sessionID string) (*model.CoursePage, bool, error)
	CloseSearchSession(sessionID string) error

	UnreadNotificationCount(ctx context.Context) (int, error)
	CartItemCount(ctx context.Context) (int, error)
}

type searchSession struct {
	debouncer *search.Debouncer

	mu         sync.Mutex
	generation int
	pending    bool
	result     *model.CoursePage
	err        error
}

type courseService struct {
	gw     gateway.Client
	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*searchSession
}

func NewCourseService(gw gateway.Client, logger zerolog.Logger) CourseService {
	return &courseService{
		gw:       gw,
		logger:   logger.With().Str("service", "CourseService").Logger(),
		sessions: make(map[string]*searchSession),
	}
}

func (s *courseService) Search(ctx context.Context, f model.CourseFilters) (*model.CoursePage, error) {
	return s.gw.SearchCourses(ctx, f)
}

func (s *courseService) OpenSearchSession() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &searchSession{debouncer: search.NewDebouncer(search.DebounceInterval)}
	s.mu.Unlock()
	return id
}

func (s *courseService) session(id string) (*searchSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// TypeKeyword records a keystroke. The search only fires once the session has
// been quiet for the debounce interval, against the filters of the last
// keystroke. The caller's bearer token is captured here so the delayed search
// still runs as the caller.
func (s *courseService) TypeKeyword(ctx context.Context, sessionID string, f model.CourseFilters) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	token := gateway.BearerFrom(ctx)

	sess.mu.Lock()
	sess.generation++
	generation := sess.generation
	sess.pending = true
	sess.mu.Unlock()

	sess.debouncer.Trigger(func() {
		// The request context is long gone by the time the burst settles.
		searchCtx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		if token != "" {
			searchCtx = gateway.WithBearer(searchCtx, token)
		}

		page, searchErr := s.gw.SearchCourses(searchCtx, f)

		sess.mu.Lock()
		defer sess.mu.Unlock()
		// A newer keystroke arrived while this search was in flight; its
		// result would be stale.
		if generation != sess.generation {
			return
		}
		sess.pending = false
		sess.result, sess.err = page, searchErr
		if searchErr != nil {
			s.logger.Warn().Err(searchErr).Str("keyword", f.Keyword).Msg("Typeahead search failed")
		}
	})
	return nil
}

func (s *courseService) SessionResult(sessionID string) (*model.CoursePage, bool, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, false, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.err != nil {
		return nil, sess.pending, sess.err
	}
	return sess.result, sess.pending, nil
}

func (s *courseService) CloseSearchSession(sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	sess.debouncer.Stop()
	return nil
}

func (s *courseService) UnreadNotificationCount(ctx context.Context) (int, error) {
	return s.gw.UnreadNotificationCount(ctx)
}

func (s *courseService) CartItemCount(ctx context.Context) (int, error) {
	return s.gw.CartItemCount(ctx)
}
