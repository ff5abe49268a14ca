package services

// Kind classifies a service failure so callers can map it to a transport
// status without parsing messages.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindStorage
)

// Error is the failure type every service operation returns. Storage errors
// wrap the underlying cause; it is logged, never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "something went wrong, please try again", cause: err}
}

// KindOf extracts the failure kind, defaulting to storage for foreign errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindStorage
}

// Validation rule messages surfaced verbatim to clients.
const (
	MsgMissingPartyFields   = "missing required party fields"
	MsgInsufficientSpots    = "party must have at least one open spot"
	MsgTooManyRequirements  = "a party allows at most two requirements"
	MsgDuplicateRequirement = "duplicate requirement"
	MsgSpotTaken            = "spot is already taken"
	MsgAlreadyInParty       = "cannot be in more than one party"
	MsgSpotNotFound         = "spot not found"
	MsgPartyNotFound        = "party not found"
	MsgMessageNotFound      = "message not found"
	MsgNotPartyMember       = "must be a party member to chat"
	MsgNotMessageOwner      = "only the author can change a message"
	MsgNotPartyOwner        = "only the party owner can do that"
	MsgEmptyMessage         = "message body is required"
	MsgNotSpotOccupant      = "spot is not yours to leave"
)
