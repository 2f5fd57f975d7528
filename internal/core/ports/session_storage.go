package ports

// SessionStorage persists the bearer token and the serialized user profile.
// Implementations must treat the two entries as a unit: Save writes both,
// Clear removes both. Load returns ok=false when either entry is missing.
type SessionStorage interface {
	Save(token string, user []byte) error
	Load() (token string, user []byte, ok bool, err error)
	Clear() error
}
