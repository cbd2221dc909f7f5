package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// jwksURL is the identity provider's published signing key set.
const jwksURL = "https://sihalev.eu.auth0.com/.well-known/jwks.json"

// KeySet is the JSON document served at the JWKS endpoint.
type KeySet struct {
	Keys []SigningKey `json:"keys"`
}

// SigningKey is a single entry of the key set. The x5c chain carries the
// DER certificate whose public key signed the tokens.
type SigningKey struct {
	Kid string   `json:"kid"`
	Alg string   `json:"alg"`
	Use string   `json:"use"`
	X5c []string `json:"x5c"`
}

// Verifier checks bearer tokens against the identity provider's signing
// keys. The key set is refetched on every verification; nothing is cached
// between invocations.
type Verifier struct {
	KeySetURL string
	HTTP      *http.Client
	Logger    *logrus.Logger
}

// NewVerifier creates a Verifier pointing at the identity provider.
func NewVerifier(logger *logrus.Logger) *Verifier {
	return &Verifier{
		KeySetURL: jwksURL,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
		Logger:    logger,
	}
}

// VerifyToken validates an Authorization header value and returns the
// subject claim of the verified token.
func (v *Verifier) VerifyToken(ctx context.Context, authHeader string) (string, error) {
	jwtToken, err := TokenFromHeader(authHeader)
	if err != nil {
		return "", err
	}

	keySet, err := v.fetchKeySet(ctx)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{}
	_, err = jwt.NewParser().ParseWithClaims(jwtToken, claims, func(token *jwt.Token) (interface{}, error) {
		key := matchSigningKey(keySet, token)
		if key == nil {
			return nil, fmt.Errorf("no signing key matches the token")
		}
		if key.Alg != "" && token.Method.Alg() != key.Alg {
			return nil, fmt.Errorf("token algorithm %q does not match key algorithm %q", token.Method.Alg(), key.Alg)
		}
		return certificatePublicKey(key)
	})
	if err != nil {
		return "", fmt.Errorf("failed to verify token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject claim")
	}

	return sub, nil
}

func (v *Verifier) fetchKeySet(ctx context.Context) (*KeySet, error) {
	v.Logger.WithField("url", v.KeySetURL).Debug("Fetching identity provider key set")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.KeySetURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch key set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("key set endpoint returned status %d", resp.StatusCode)
	}

	var keySet KeySet
	if err := json.NewDecoder(resp.Body).Decode(&keySet); err != nil {
		return nil, fmt.Errorf("failed to decode key set: %w", err)
	}
	if len(keySet.Keys) == 0 {
		return nil, fmt.Errorf("key set contains no keys")
	}

	return &keySet, nil
}

// matchSigningKey picks the key whose kid matches the token header, or the
// first key when the token carries no kid.
func matchSigningKey(keySet *KeySet, token *jwt.Token) *SigningKey {
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return &keySet.Keys[0]
	}
	for i := range keySet.Keys {
		if keySet.Keys[i].Kid == kid {
			return &keySet.Keys[i]
		}
	}
	return nil
}

func certificatePublicKey(key *SigningKey) (*rsa.PublicKey, error) {
	if len(key.X5c) == 0 {
		return nil, fmt.Errorf("signing key %q has no certificate chain", key.Kid)
	}

	der, err := base64.StdEncoding.DecodeString(key.X5c[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing certificate: %w", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing certificate: %w", err)
	}

	publicKey, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("signing certificate does not carry an RSA key")
	}

	return publicKey, nil
}
