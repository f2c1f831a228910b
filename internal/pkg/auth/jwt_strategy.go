package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTStrategy issues HS256 JSON Web Tokens.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	return &JWTStrategy{secret: []byte(secret), ttl: opts.ttl(), now: time.Now}
}

func (s *JWTStrategy) IssueToken(claims Claims) (string, error) {
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID,
		"typ":   "staff",
		"email": claims.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

func (s *JWTStrategy) ParseToken(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || token == nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	if typ, _ := mapClaims["typ"].(string); typ != "staff" {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	email, _ := mapClaims["email"].(string)
	return Claims{UserID: sub, Email: email}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
