package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// HMACStrategy signs compact tokens of the form id.email.expiry.signature.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	return &HMACStrategy{secret: []byte(secret), ttl: opts.ttl(), now: time.Now}
}

// IssueToken generates a signed token for the staff member.
func (s *HMACStrategy) IssueToken(claims Claims) (string, error) {
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	expires := s.now().Add(s.ttl).Unix()
	payload := strings.Join([]string{
		encodeSegment(claims.UserID),
		encodeSegment(claims.Email),
		strconv.FormatInt(expires, 10),
	}, ".")
	return payload + "." + s.sign(payload), nil
}

// ParseToken validates signature and expiry.
func (s *HMACStrategy) ParseToken(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return Claims{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ".")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return Claims{}, ErrInvalidToken
	}

	userID, err := decodeSegment(parts[0])
	if err != nil || userID == "" {
		return Claims{}, ErrInvalidToken
	}
	email, err := decodeSegment(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	if time.Unix(expires, 0).Before(s.now()) {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: userID, Email: email}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encodeSegment(v string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(v))
}

func decodeSegment(v string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(v)
	return string(raw), err
}
