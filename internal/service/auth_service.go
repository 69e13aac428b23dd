package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/config"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

// Scopes requested when connecting Google Classroom. Read-only is enough for
// courses, rosters and submissions; profile emails let imported students keep
// their Classroom identity.
var classroomScopes = []string{
	classroomapi.ClassroomCoursesReadonlyScope,
	classroomapi.ClassroomRostersReadonlyScope,
	classroomapi.ClassroomCourseworkStudentsReadonlyScope,
	classroomapi.ClassroomProfileEmailsScope,
}

// AuthService issues API sessions for the teacher and runs the Google OAuth
// consent flow. There are no passwords: possession of the device is the
// credential, and a session simply asserts the teacher profile exists.
type AuthService struct {
	teachers teacherRepository
	jwtCfg   config.JWTConfig
	oauth    *oauth2.Config
	logger   *zap.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(teachers teacherRepository, jwtCfg config.JWTConfig, googleCfg config.GoogleConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		teachers: teachers,
		jwtCfg:   jwtCfg,
		oauth: &oauth2.Config{
			ClientID:     googleCfg.ClientID,
			ClientSecret: googleCfg.ClientSecret,
			RedirectURL:  googleCfg.RedirectURL,
			Scopes:       classroomScopes,
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

// IssueSession returns a signed session token for the teacher profile.
func (s *AuthService) IssueSession(ctx context.Context) (*models.SessionResponse, error) {
	teacher, err := s.teachers.Find(ctx)
	if err != nil {
		return nil, errors.Clone(errors.ErrNotFound, "teacher profile not created yet")
	}
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.jwtCfg.Expiration)
	claims := &models.SessionClaims{
		TeacherID: teacher.ID,
		Email:     teacher.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", teacher.ID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to sign session token")
	}
	return &models.SessionResponse{Token: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// ValidateToken parses and validates a session token returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUnauthorized.Code, errors.ErrUnauthorized.Status, "invalid token")
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.Clone(errors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// AuthURL builds the Google consent URL. The state parameter is a short-lived
// signed token, so the callback can reject requests this server never issued.
func (s *AuthService) AuthURL(ctx context.Context) (string, error) {
	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" {
		return "", errors.Clone(errors.ErrInvalidState, "google oauth is not configured")
	}
	if _, err := s.teachers.Find(ctx); err != nil {
		return "", errors.Clone(errors.ErrNotFound, "teacher profile not created yet")
	}
	state, err := s.signState()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to sign oauth state")
	}
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// HandleCallback exchanges the authorization code and stores the resulting
// token on the teacher profile.
func (s *AuthService) HandleCallback(ctx context.Context, state, code string) error {
	if err := s.verifyState(state); err != nil {
		return errors.Clone(errors.ErrUnauthorized, "invalid oauth state")
	}
	teacher, err := s.teachers.Find(ctx)
	if err != nil {
		return errors.Clone(errors.ErrNotFound, "teacher profile not created yet")
	}
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return errors.Wrap(err, errors.ErrRemoteService.Code, errors.ErrRemoteService.Status, "failed to exchange authorization code")
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to serialize credentials")
	}
	credentials := string(raw)
	if err := s.teachers.SetGoogleCredentials(ctx, teacher.ID, &credentials); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to store credentials")
	}
	s.logger.Info("google account connected", zap.Int64("teacher_id", teacher.ID))
	return nil
}

// Disconnect drops the stored Google credentials.
func (s *AuthService) Disconnect(ctx context.Context) error {
	teacher, err := s.teachers.Find(ctx)
	if err != nil {
		return errors.Clone(errors.ErrNotFound, "teacher profile not created yet")
	}
	if err := s.teachers.SetGoogleCredentials(ctx, teacher.ID, nil); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to clear credentials")
	}
	s.logger.Info("google account disconnected", zap.Int64("teacher_id", teacher.ID))
	return nil
}

// TokenSource yields an auto-refreshing token source from the stored
// credentials, for building Classroom API clients.
func (s *AuthService) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	teacher, err := s.teachers.Find(ctx)
	if err != nil {
		return nil, errors.Clone(errors.ErrNotFound, "teacher profile not created yet")
	}
	if teacher.GoogleCredentials == nil {
		return nil, errors.Clone(errors.ErrInvalidState, "google account is not connected")
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(*teacher.GoogleCredentials), &token); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to parse stored credentials")
	}
	return s.oauth.TokenSource(ctx, &token), nil
}

func (s *AuthService) signState() (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "oauth-state",
		ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
}

func (s *AuthService) verifyState(state string) error {
	token, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("invalid state token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != "oauth-state" {
		return fmt.Errorf("unexpected state subject")
	}
	return nil
}
