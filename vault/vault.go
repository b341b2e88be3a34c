package vault

import "context"

const (
	usernameKey = "remembered-username"
	passwordKey = "remembered-password"
)

// Credentials is what Recall hands back to the login form. Password is
// plaintext only in memory; it is never persisted unencrypted.
type Credentials struct {
	Username   string
	Password   string
	RememberMe bool
}

type passwordCodec interface {
	encode(plaintext string) string
	decode(encoded string) (string, error)
}

// Vault persists and recalls the remember-me credential pair.
type Vault struct {
	storage Storage
	codec   passwordCodec
}

// New creates a Vault over the given storage. keyMaterial seeds the local
// reversible codec; the same material must be supplied across restarts or
// Recall degrades to an empty password.
func New(storage Storage, keyMaterial []byte) (*Vault, error) {
	c, err := newCodec(keyMaterial)
	if err != nil {
		return nil, err
	}
	return &Vault{storage: storage, codec: c}, nil
}

// Remember persists username and the encrypted password. When encryption
// yields no result only the username is stored and any previously stored
// ciphertext is dropped, so a later Recall cannot pair the new username with
// an older password. Plaintext is never written.
func (v *Vault) Remember(ctx context.Context, username, password string) error {
	if err := v.storage.Set(ctx, usernameKey, username); err != nil {
		return err
	}
	encrypted := v.codec.encode(password)
	if encrypted == "" {
		return v.storage.Delete(ctx, passwordKey)
	}
	return v.storage.Set(ctx, passwordKey, encrypted)
}

// Forget clears both persisted fields. Missing fields are not an error.
func (v *Vault) Forget(ctx context.Context) error {
	return v.storage.Delete(ctx, usernameKey, passwordKey)
}

// Recall returns the remembered credentials. It never fails: storage errors,
// an absent ciphertext, and a ciphertext that no longer decrypts all degrade
// to an empty password with RememberMe false.
func (v *Vault) Recall(ctx context.Context) Credentials {
	username, err := v.storage.Get(ctx, usernameKey)
	if err != nil {
		return Credentials{}
	}

	encrypted, err := v.storage.Get(ctx, passwordKey)
	if err != nil || encrypted == "" {
		return Credentials{Username: username}
	}

	password, err := v.codec.decode(encrypted)
	if err != nil {
		return Credentials{Username: username}
	}
	return Credentials{
		Username:   username,
		Password:   password,
		RememberMe: true,
	}
}
