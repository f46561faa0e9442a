package application

import (
	"errors"
	"fmt"
)

// Kind is the stable, loggable code of an error
type Kind string

const (
	KindUnknown             Kind = "unknown"
	KindPersistenceRead     Kind = "persistence_read"
	KindPersistenceWrite    Kind = "persistence_write"
	KindProtectedCollection Kind = "protected_collection"
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
)

// Sentinel errors for common conditions
var (
	ErrNotFound  = errors.New("not found")
	ErrProtected = errors.New("protected collection")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Kind() Kind { return KindValidation }

func (e *ValidationError) UserMessage() string {
	return upperFirst(e.Message) + "."
}

// ProtectedCollectionError is returned for any attempt to change the
// default collection
type ProtectedCollectionError struct {
	ID        string
	Operation string
}

func (e *ProtectedCollectionError) Error() string {
	return fmt.Sprintf("cannot %s collection %s: it is protected", e.Operation, e.ID)
}

func (e *ProtectedCollectionError) Is(target error) bool {
	return target == ErrProtected
}

func (e *ProtectedCollectionError) Kind() Kind { return KindProtectedCollection }

func (e *ProtectedCollectionError) UserMessage() string {
	return "The All Notes collection can't be changed."
}

// NotFoundError is the soft "already gone" condition. The Service reports it
// as a nil/false result; adapters that need an error use this type.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("collection %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Kind() Kind { return KindNotFound }

func (e *NotFoundError) UserMessage() string {
	return "That collection no longer exists."
}

// PersistenceReadError wraps a failed or malformed read of the collections blob
type PersistenceReadError struct {
	Location  string
	Malformed bool
	Err       error
}

func (e *PersistenceReadError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("malformed collections data at %s: %v", e.Location, e.Err)
	}
	return fmt.Sprintf("failed to read collections at %s: %v", e.Location, e.Err)
}

func (e *PersistenceReadError) Unwrap() error { return e.Err }

func (e *PersistenceReadError) Kind() Kind { return KindPersistenceRead }

func (e *PersistenceReadError) UserMessage() string {
	if e.Malformed {
		return "Your collections file is damaged and could not be loaded."
	}
	return "Your collections could not be loaded."
}

// PersistenceWriteError wraps a failed write of the collections blob
type PersistenceWriteError struct {
	Location string
	Err      error
}

func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("failed to save collections at %s: %v", e.Location, e.Err)
}

func (e *PersistenceWriteError) Unwrap() error { return e.Err }

func (e *PersistenceWriteError) Kind() Kind { return KindPersistenceWrite }

func (e *PersistenceWriteError) UserMessage() string {
	return "Your changes could not be saved. Try again."
}

type kinded interface {
	Kind() Kind
	UserMessage() string
}

// KindOf returns the Kind of the first classified error in err's chain
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// UserMessage returns a short message suitable for direct display
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.UserMessage()
	}
	return "Something went wrong."
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
