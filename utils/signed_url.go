package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// URLSigner builds and checks presigned download query strings.
type URLSigner struct {
	secret []byte
}

// NewURLSigner returns a signer using secret as the HMAC key.
func NewURLSigner(secret string) *URLSigner {
	return &URLSigner{secret: []byte(secret)}
}

// Sign builds a presigned query string (exp, nonce, sig) for the given file ID.
// expiresIn이 0 이하이면 기본값으로 5분을 사용합니다.
func (s *URLSigner) Sign(fileID string, expiresIn time.Duration) (string, error) {
	if fileID == "" {
		return "", errors.New("fileID is required")
	}

	if expiresIn <= 0 {
		expiresIn = 5 * time.Minute
	}

	expiration := time.Now().Add(expiresIn).Unix()
	nonceBytes := make([]byte, 12)
	if _, err := rand.Read(nonceBytes); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	nonce := hex.EncodeToString(nonceBytes)

	signature := s.sign(buildSignaturePayload(fileID, expiration, nonce))
	return fmt.Sprintf("exp=%d&nonce=%s&sig=%s", expiration, nonce, signature), nil
}

// Validate checks the query params of a presigned download URL.
func (s *URLSigner) Validate(fileID, expStr, nonce, sig string) error {
	if fileID == "" || expStr == "" || nonce == "" || sig == "" {
		return errors.New("missing download signature parameters")
	}

	expiration, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expiration: %w", err)
	}

	if time.Now().Unix() > expiration {
		return errors.New("download link has expired")
	}

	expectedSig := s.sign(buildSignaturePayload(fileID, expiration, nonce))
	if !hmac.Equal([]byte(expectedSig), []byte(sig)) {
		return errors.New("invalid download signature")
	}

	return nil
}

func buildSignaturePayload(fileID string, expiration int64, nonce string) string {
	return strings.Join([]string{fileID, strconv.FormatInt(expiration, 10), nonce}, "|")
}

func (s *URLSigner) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
