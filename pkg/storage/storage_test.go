package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveReadDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save([]byte("file content"), "report.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "documents/"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	data, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("file content"), data)

	require.NoError(t, store.Delete(path))
	_, err = store.Read(path)
	assert.Error(t, err)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(path))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read("../../etc/passwd")
	assert.Error(t, err)

	err = store.Delete("/etc/passwd")
	assert.Error(t, err)
}

func TestURLSigner_RoundTrip(t *testing.T) {
	signer := NewURLSigner("test-secret", "http://localhost:8080")

	u := signer.SignedURL("documents/abc.pdf", time.Hour)
	assert.Contains(t, u, "http://localhost:8080/api/v1/files/documents/abc.pdf?")

	expires, signature := parseQuery(t, u)
	assert.NoError(t, signer.Verify("documents/abc.pdf", expires, signature))
}

func TestURLSigner_RejectsTampering(t *testing.T) {
	signer := NewURLSigner("test-secret", "http://localhost:8080")

	u := signer.SignedURL("documents/abc.pdf", time.Hour)
	expires, signature := parseQuery(t, u)

	// Different path, same signature.
	assert.Error(t, signer.Verify("documents/other.pdf", expires, signature))
	// Extended expiry invalidates the signature.
	assert.Error(t, signer.Verify("documents/abc.pdf", "9999999999", signature))
	// A different secret cannot verify.
	other := NewURLSigner("another-secret", "http://localhost:8080")
	assert.Error(t, other.Verify("documents/abc.pdf", expires, signature))
}

func TestURLSigner_RejectsExpired(t *testing.T) {
	signer := NewURLSigner("test-secret", "http://localhost:8080")

	u := signer.SignedURL("documents/abc.pdf", -time.Minute)
	expires, signature := parseQuery(t, u)

	assert.Error(t, signer.Verify("documents/abc.pdf", expires, signature))
}

func parseQuery(t *testing.T, u string) (expires, signature string) {
	t.Helper()
	_, query, found := strings.Cut(u, "?")
	require.True(t, found)
	for _, kv := range strings.Split(query, "&") {
		k, v, _ := strings.Cut(kv, "=")
		switch k {
		case "expires":
			expires = v
		case "signature":
			signature = v
		}
	}
	require.NotEmpty(t, expires)
	require.NotEmpty(t, signature)
	return expires, signature
}
