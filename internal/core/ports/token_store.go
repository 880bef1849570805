package ports

// TokenStore is the single durable slot holding the persisted session token.
// Load returns an empty string when no token is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
