package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// URLSigner mints and verifies expiring download URLs. The signature covers
// the storage path and the expiry timestamp, so neither can be swapped.
type URLSigner struct {
	secret  []byte
	baseURL string
}

func NewURLSigner(secret, baseURL string) *URLSigner {
	return &URLSigner{secret: []byte(secret), baseURL: baseURL}
}

func (s *URLSigner) sign(storagePath string, expiresAt int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s\n%d", storagePath, expiresAt)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignedURL returns a URL valid for expiresIn from now.
func (s *URLSigner) SignedURL(storagePath string, expiresIn time.Duration) string {
	expiresAt := time.Now().Add(expiresIn).Unix()

	query := url.Values{}
	query.Set("expires", strconv.FormatInt(expiresAt, 10))
	query.Set("signature", s.sign(storagePath, expiresAt))

	return fmt.Sprintf("%s/api/v1/files/%s?%s", s.baseURL, storagePath, query.Encode())
}

// Verify checks a signature produced by SignedURL. Expired or tampered
// requests fail closed.
func (s *URLSigner) Verify(storagePath, expires, signature string) error {
	expiresAt, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expiry")
	}
	if time.Now().Unix() > expiresAt {
		return fmt.Errorf("url expired")
	}
	expected := s.sign(storagePath, expiresAt)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("invalid signature")
	}
	return nil
}
