package auth

import (
	"errors"

	"github.com/compras/backend/internal/domain/shared"
	"github.com/compras/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrInvalidClaims  = errors.New("invalid token claims")
	ErrMissingUserID  = errors.New("missing subject in claims")
	ErrTokenRevoked   = errors.New("token has been revoked")
	ErrUnknownIssuer  = errors.New("token issuer is not the identity provider")
	ErrInvalidSigning = errors.New("unexpected token signing method")
)

// Claims are the session claims issued by the external identity provider.
// This application never issues tokens; it only validates them.
type Claims struct {
	jwt.RegisteredClaims
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
}

// SessionService validates session tokens against the shared HMAC secret.
type SessionService struct {
	secret []byte
	issuer string
}

// NewSessionService creates a new SessionService
func NewSessionService(cfg config.SessionConfig) *SessionService {
	return &SessionService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// Validate parses and verifies a session token and returns the resolved
// session along with the raw claims (for the revocation check). Expiry and
// signature failures map to sentinel errors so the middleware can
// distinguish "no session" from infrastructure failure.
func (s *SessionService) Validate(tokenString string) (*shared.Session, *Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigning
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, ErrExpiredToken
		}
		return nil, nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, nil, ErrInvalidToken
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, nil, ErrUnknownIssuer
	}
	if claims.Subject == "" {
		return nil, nil, ErrMissingUserID
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil, ErrInvalidClaims
	}

	rol := shared.Rol(claims.Rol)
	switch rol {
	case shared.RolAdmin, shared.RolGestor, shared.RolConsulta:
	case "":
		rol = shared.RolConsulta
	default:
		return nil, nil, ErrInvalidClaims
	}

	sess := &shared.Session{
		UserID: userID,
		Nombre: claims.Nombre,
		Email:  claims.Email,
		Rol:    rol,
	}
	return sess, claims, nil
}
