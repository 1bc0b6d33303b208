package types

// Status is the result of comparing an entry's repository source against its
// home destination. Both reconcilers share this vocabulary: symlink checks
// never produce StatusChanged and copy checks never produce StatusWrong or
// StatusBroken.
type Status string

const (
	// StatusOK means the destination already represents the source
	StatusOK Status = "ok"

	// StatusMissing means nothing exists at the destination
	StatusMissing Status = "missing"

	// StatusConflict means an unmanaged file or directory occupies the destination
	StatusConflict Status = "conflict"

	// StatusChanged means a copied destination differs from its source
	StatusChanged Status = "changed"

	// StatusWrong means the destination symlink points somewhere other than the source
	StatusWrong Status = "wrong"

	// StatusBroken means the destination symlink cannot be resolved
	StatusBroken Status = "broken"
)

// Statuses lists every status value.
func Statuses() []Status {
	return []Status{StatusOK, StatusMissing, StatusConflict, StatusChanged, StatusWrong, StatusBroken}
}

// NeedsAttention reports whether the status represents drift from the repository.
func (s Status) NeedsAttention() bool {
	return s != StatusOK
}

// Label is the short human-readable form used in tables.
func (s Status) Label() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusConflict:
		return "conflict"
	case StatusChanged:
		return "changed"
	case StatusWrong:
		return "wrong link"
	case StatusBroken:
		return "broken link"
	default:
		return string(s)
	}
}

func (s Status) String() string {
	return string(s)
}

// Action is the outcome of a reconciler's create operation.
type Action string

const (
	// ActionOK means the destination was already correct and nothing was touched
	ActionOK Action = "ok"

	// ActionCreated means a symlink was created
	ActionCreated Action = "created"

	// ActionCopied means the source was copied into place
	ActionCopied Action = "copied"

	// ActionConflict means the destination is occupied and force was not given
	ActionConflict Action = "conflict"
)

// Succeeded reports whether the destination correctly represents the source
// after the create call.
func (a Action) Succeeded() bool {
	switch a {
	case ActionOK, ActionCreated, ActionCopied:
		return true
	}
	return false
}

func (a Action) String() string {
	return string(a)
}
