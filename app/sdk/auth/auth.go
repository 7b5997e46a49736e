// Package auth provides authentication and token support for the api.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/tenantbus"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/types/role"
	"github.com/jcpaschoal/smartroom/foundation/logger"
)

// Erros padronizados do pacote de autenticação
var (
	ErrInvalidToken       = errors.New("token is invalid")
	ErrExpired            = errors.New("token has expired")
	ErrKIDMissing         = errors.New("kid missing from token header")
	ErrKIDMalformed       = errors.New("kid in token header is malformed")
	ErrUserDisabled       = errors.New("user is disabled")
	ErrInvalidRole        = errors.New("token contains an invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 24 * time.Hour

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// KeyLookup declares a method set of behavior for looking up
// private and public keys for JWT use.
type KeyLookup interface {
	PrivateKey(kid string) (key string, err error)
	PublicKey(kid string) (key string, err error)
}

// Config represents information required to initialize auth.
type Config struct {
	Log       *logger.Logger
	UserBus   *userbus.Core
	TenantBus *tenantbus.Core
	KeyLookup KeyLookup
	ActiveKID string
	Issuer    string
	TTL       time.Duration
}

// Auth is used to authenticate clients.
type Auth struct {
	log       *logger.Logger
	keyLookup KeyLookup
	userBus   *userbus.Core
	tenantBus *tenantbus.Core
	method    jwt.SigningMethod
	parser    *jwt.Parser
	activeKID string
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// New creates an Auth to support authentication/authorization.
func New(cfg Config) *Auth {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Auth{
		log:       cfg.Log,
		keyLookup: cfg.KeyLookup,
		userBus:   cfg.UserBus,
		tenantBus: cfg.TenantBus,
		method:    jwt.GetSigningMethod(jwt.SigningMethodRS256.Name),
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name})),
		activeKID: cfg.ActiveKID,
		issuer:    cfg.Issuer,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issuer provides the configured issuer used to authenticate tokens.
func (a *Auth) Issuer() string {
	return a.issuer
}

// GenerateToken generates a signed JWT token string for the user. The token
// carries the user id as subject together with the tenant and role.
func (a *Auth) GenerateToken(usr userbus.User) (string, error) {
	now := a.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usr.ID.String(),
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TenantID: usr.TenantID.String(),
		Role:     usr.Role.String(),
	}

	token := jwt.NewWithClaims(a.method, claims)
	token.Header["kid"] = a.activeKID

	privateKeyPEM, err := a.keyLookup.PrivateKey(a.activeKID)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parsing private key from PEM: %w", err)
	}

	str, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Authenticate processes the token to validate the sender's token is valid.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Claims, error) {
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		return Claims{}, fmt.Errorf("expected authorization header format: Bearer <token>: %w", ErrInvalidToken)
	}

	jwtUnverified := bearerToken[7:]

	var unverified Claims
	token, _, err := a.parser.ParseUnverified(jwtUnverified, &unverified)
	if err != nil {
		return Claims{}, fmt.Errorf("error parsing token: %w", ErrInvalidToken)
	}

	kidRaw, exists := token.Header["kid"]
	if !exists {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, ErrKIDMissing)
	}

	kid, ok := kidRaw.(string)
	if !ok {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, ErrKIDMalformed)
	}

	pem, err := a.keyLookup.PublicKey(kid)
	if err != nil {
		return Claims{}, fmt.Errorf("fetching public key for kid %q: %w", kid, ErrInvalidToken)
	}

	claims, err := a.verifySignatureAndClaims(jwtUnverified, pem)
	if err != nil {
		a.log.Info(ctx, "**Authenticate-FAILED**", "userID", unverified.Subject, "err", err)
		return Claims{}, err
	}

	// Valida se a Role que está no token é uma Role conhecida pelo sistema.
	if _, err := role.Parse(claims.Role); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, ErrInvalidRole)
	}

	// Verifica no banco se o usuário ainda está ativo/habilitado
	if err := a.isUserEnabled(ctx, claims); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// Login verifies the credentials and returns the user they belong to. Unknown
// emails and wrong passwords are not told apart.
func (a *Auth) Login(ctx context.Context, email mail.Address, password string) (userbus.User, error) {
	usr, err := a.userBus.Authenticate(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, userbus.ErrAuthenticationFailure):
			return userbus.User{}, ErrInvalidCredentials
		case errors.Is(err, userbus.ErrDisabled):
			return userbus.User{}, ErrAccountInactive
		}
		return userbus.User{}, fmt.Errorf("authenticate: %w", err)
	}

	if err := a.isTenantEnabled(ctx, usr.TenantID); err != nil {
		if errors.Is(err, tenantbus.ErrDisabled) {
			return userbus.User{}, ErrAccountInactive
		}
		return userbus.User{}, err
	}

	return usr, nil
}

// isUserEnabled checks if the user is active in the database and still
// belongs to the tenant named in the token.
func (a *Auth) isUserEnabled(ctx context.Context, claims Claims) error {
	if a.userBus == nil {
		return nil
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return fmt.Errorf("parsing user ID %q from claims: %w", claims.Subject, ErrInvalidToken)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return fmt.Errorf("query user: %w", ErrInvalidToken)
		}
		return fmt.Errorf("query user: %w", err)
	}

	if usr.TenantID.String() != claims.TenantID {
		return fmt.Errorf("tenant mismatch for user %s: %w", userID, ErrInvalidToken)
	}

	if !usr.Enabled {
		return ErrUserDisabled
	}

	if err := a.isTenantEnabled(ctx, usr.TenantID); err != nil {
		if errors.Is(err, tenantbus.ErrDisabled) {
			return ErrUserDisabled
		}
		return err
	}

	return nil
}

func (a *Auth) isTenantEnabled(ctx context.Context, tenantID uuid.UUID) error {
	if a.tenantBus == nil {
		return nil
	}

	if _, err := a.tenantBus.QueryEnabled(ctx, tenantID); err != nil {
		return fmt.Errorf("query tenant: %w", err)
	}

	return nil
}

// verifySignatureAndClaims parses the token with the public key, validates
// the signature and expiry, and checks the issuer claim.
func (a *Auth) verifySignatureAndClaims(tokenStr, pemStr string) (Claims, error) {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemStr))
	if err != nil {
		return Claims{}, fmt.Errorf("parsing public key: %w", err)
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, fmt.Errorf("validating token signature: %w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if claims.Issuer != a.issuer {
		return Claims{}, fmt.Errorf("invalid issuer: expected %q, got %q: %w", a.issuer, claims.Issuer, ErrInvalidToken)
	}

	return claims, nil
}
