package service

import "errors"

// User facing failures. Their messages are returned to API clients as is.
var (
	// ErrUserNotFound indicates that no user holds the supplied session token.
	ErrUserNotFound = errors.New("Utilisateur introuvable")
	// ErrPostingNotFound indicates that the requested posting does not exist.
	ErrPostingNotFound = errors.New("Annonce introuvable")
	// ErrNotOwner is returned when a user tries to delete someone else's posting.
	ErrNotOwner = errors.New("Cette annonce ne peux pas etre supprimé par vous")
	// ErrMissingFields is returned when a required request field is absent or blank.
	ErrMissingFields = errors.New("Champs vides ou manquants")
	// ErrInvalidPostingType is returned when a posting type is neither an offer nor a request.
	ErrInvalidPostingType = errors.New("Type d'annonce invalide")
)

// StoreError wraps a persistence failure. Its message is the underlying
// error's message, unchanged.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: err}
}
