package echoapi

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/session"
)

// Views. Each token is scoped to exactly one portal.
const (
	ViewGuardian = "guardian" // -> GUARDIAN PORTAL
	ViewOperator = "operator" // -> SCHOOL OPERATOR PORTAL
	ViewAdmin    = "admin"    // -> PLATFORM ADMIN PORTAL
)

var (
	// appJWTConfig is the default JWT auth middleware config.
	appJWTConfig = middleware.JWTConfig{
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "sessionToken",
		Claims:        new(Claims),
	}
	contextGuardianKey = "guardian"

	jwtIssuer          string
	jwtExpirationDelta time.Duration
)

func initAuth(conf *core.Config) {
	appJWTConfig.SigningKey = []byte(conf.SecretKey)
	jwtIssuer = conf.AppName
	jwtExpirationDelta = conf.Server.JWTExpirationDelta
}

// Claims represents the authorization claims transmitted via a JWT.
// They encode the session: which portal, which school, which guardian.
type Claims struct {
	jwt.StandardClaims
	View         string `json:"view,omitempty"`
	SchoolID     string `json:"school_id,omitempty"`
	GuardianName string `json:"guardian_name,omitempty"`
}

// Session rebuilds the session state encoded in the claims.
func (c Claims) Session() session.Session {
	s := session.Session{SchoolID: c.SchoolID, GuardianID: c.Subject}
	switch c.View {
	case ViewOperator:
		s.State = session.SchoolOperatorHome
	case ViewAdmin:
		s.State = session.PlatformAdminHome
	default:
		s.State = session.GuardianHome
	}
	return s
}

func GetGuardianClaims(g guardian.Guardian, view string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    jwtIssuer,
			Subject:   g.ID,
			Audience:  "Portaria",
			ExpiresAt: now.Add(jwtExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		View:         view,
		SchoolID:     g.SchoolID,
		GuardianName: g.Name,
	}
}

// GetAdminClaims builds claims for the hidden platform admin portal. Admin
// tokens carry no school and no guardian.
func GetAdminClaims() *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    jwtIssuer,
			Audience:  "Portaria",
			ExpiresAt: now.Add(jwtExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		View: ViewAdmin,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextGuardian(ctx echo.Context, svc *guardian.Service, clms ...Claims) (guardian.Guardian, error) {
	if g, ok := ctx.Get(contextGuardianKey).(guardian.Guardian); ok {
		return g, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return guardian.Guardian{}, errors.Wrap(err, "getting context claims")
		}
	}

	g, err := svc.GetByID(claims.Subject)
	if err != nil {
		return guardian.Guardian{}, errors.Wrap(err, "finding guardian by ID")
	}
	ctx.Set(contextGuardianKey, g)
	return g, nil
}
