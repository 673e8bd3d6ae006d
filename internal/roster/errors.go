package roster

import (
	"errors"

	"github.com/mmynk/dutyroster/internal/transfer"
)

var (
	// ErrDuplicatePhone means another person already uses the phone number.
	ErrDuplicatePhone = errors.New("phone number already exists")

	// ErrEmptyField means a required name or phone was blank after trimming.
	ErrEmptyField = errors.New("required field is empty")

	// ErrPersonNotFound means no person has the given phone. Edits report it so
	// callers can tell a stale form from a success; deletes never do.
	ErrPersonNotFound = errors.New("person not found")

	// ErrTeamNotFound means no team has the given id.
	ErrTeamNotFound = errors.New("team not found")

	ErrInvalidShift    = errors.New("invalid shift")
	ErrInvalidDateMode = errors.New("invalid date mode")

	// ErrMalformedDocument means an import document could not be parsed.
	ErrMalformedDocument = transfer.ErrMalformedDocument
)
