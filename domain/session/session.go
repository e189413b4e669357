package session

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/infrastructure/logger"
)

// State is the form a user edits between generations. Size and Border stay raw
// strings until generation so bad input surfaces as a generation error.
type State struct {
	Text       string         `json:"text"`
	Size       string         `json:"size"`
	Border     string         `json:"border"`
	Fill       composer.Color `json:"fill"`
	Background composer.Color `json:"background"`
	LogoPath   string         `json:"logo_path"`
}

// DefaultState returns the form as it looks on startup and after Clear
func DefaultState() State {
	return State{
		Text:       constant.DefaultText,
		Size:       strconv.Itoa(constant.DefaultModuleSize),
		Border:     strconv.Itoa(constant.DefaultBorder),
		Fill:       composer.Black,
		Background: composer.White,
	}
}

// Snapshot is a point-in-time copy of the session for rendering
type Snapshot struct {
	State State
	Image *composer.ComposedImage
}

// HasImage reports whether a generated image is held
func (s Snapshot) HasImage() bool {
	return s.Image != nil
}

// Repository defines the interface for persisting form state. Images are never stored.
type Repository interface {
	Load(ctx context.Context) (*State, error)
	Store(ctx context.Context, state *State) error
}

// Composer is the subset of composer.Composer the session drives
type Composer interface {
	Generate(ctx context.Context, req composer.GenerationRequest) (*composer.ComposedImage, error)
	Save(ctx context.Context, img *composer.ComposedImage, path string) (string, error)
	Verify(ctx context.Context, img *composer.ComposedImage) (string, error)
}

// Service owns a single session. Every operation holds the mutex for its whole
// duration, so concurrent callers observe sequential UI events.
type Service struct {
	mu       sync.Mutex
	composer Composer
	repo     Repository
	state    State
	image    *composer.ComposedImage
}

// NewService creates a new session service, restoring the last stored form state.
// repo may be nil, in which case state lives in memory only.
func NewService(ctx context.Context, c Composer, repo Repository) *Service {
	logger.CtxDebug(ctx, "Creating session service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "session",
		},
	})

	s := &Service{
		composer: c,
		repo:     repo,
		state:    DefaultState(),
	}

	if repo == nil {
		return s
	}

	stored, err := repo.Load(ctx)
	if err != nil {
		logger.CtxWarn(ctx, constant.MsgSessionRestoreFailure, logger.LoggerInfo{
			ContextFunction: constant.CtxLoad,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeSessionLoad,
				Message: err.Error(),
				Type:    constant.ErrTypeSession,
			},
		})
		return s
	}
	if stored != nil {
		s.state = *stored
	}

	return s
}

// Update replaces the form state and persists it
func (s *Service) Update(ctx context.Context, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state

	logger.CtxDebug(ctx, "Session state updated", logger.LoggerInfo{
		ContextFunction: constant.CtxUpdate,
		Data: map[string]interface{}{
			constant.DataTextLength: len(state.Text),
			constant.DataFill:       state.Fill.Hex(),
			constant.DataBackground: state.Background.Hex(),
			constant.DataLogoPath:   state.LogoPath,
		},
	})

	s.persist(ctx)
}

// Generate builds a QR code from the current state. The held image is only replaced
// on success.
func (s *Service) Generate(ctx context.Context) (*composer.ComposedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	size, border, err := composer.ParseDimensions(s.state.Size, s.state.Border)
	if err != nil {
		code := constant.ErrCodeInvalidSize
		if errors.Is(err, composer.ErrInvalidBorder) {
			code = constant.ErrCodeInvalidBorder
		}
		logger.CtxWarn(ctx, "Invalid dimensions", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    code,
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
		})
		return nil, err
	}

	img, err := s.composer.Generate(ctx, composer.GenerationRequest{
		Text:       s.state.Text,
		ModuleSize: size,
		Border:     border,
		Fill:       s.state.Fill,
		Background: s.state.Background,
		LogoPath:   s.state.LogoPath,
	})
	if err != nil {
		return nil, err
	}

	s.image = img
	return img, nil
}

// Save writes the held image to path and returns the path actually written
func (s *Service) Save(ctx context.Context, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.composer.Save(ctx, s.image, path)
}

// Verify decodes the held image back to text
func (s *Service) Verify(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.composer.Verify(ctx, s.image)
}

// Clear resets the form to defaults and drops the held image
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = DefaultState()
	s.image = nil

	logger.CtxInfo(ctx, constant.MsgCleared, logger.LoggerInfo{
		ContextFunction: constant.CtxClear,
	})

	s.persist(ctx)
}

// Snapshot returns the current state and held image
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{State: s.state, Image: s.image}
}

// persist stores the state; failures are logged and never surface. Callers hold mu.
func (s *Service) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}

	state := s.state
	if err := s.repo.Store(ctx, &state); err != nil {
		logger.CtxError(ctx, "Failed to persist session state", logger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeSessionPersist,
				Message: err.Error(),
				Type:    constant.ErrTypeSession,
			},
		})
	}
}
