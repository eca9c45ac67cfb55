package proxy

import "github.com/devaloi/newsboard/internal/domain"

// Operation identifies a store operation for permission lookups.
type Operation int

// Operations.
const (
	OpCreate Operation = iota
	OpRead
	OpUpdate
	OpDelete
)

func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpRead:
		return "read"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

type rule struct {
	allowed map[domain.Role]bool
	denial  string
}

// rules is keyed by operation. An operation without a rule is open to every role.
var rules = map[Operation]rule{
	OpCreate: {
		allowed: roleSet(domain.User, domain.Moderator, domain.Admin),
		denial:  domain.MsgDenyAdd,
	},
	OpUpdate: {
		allowed: roleSet(domain.Moderator, domain.Admin),
		denial:  domain.MsgDenyEdit,
	},
	OpDelete: {
		allowed: roleSet(domain.Admin),
		denial:  domain.MsgDenyDelete,
	},
}

func roleSet(roles ...domain.Role) map[domain.Role]bool {
	set := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return set
}

// Allowed reports whether role may perform op.
func Allowed(op Operation, role domain.Role) bool {
	r, ok := rules[op]
	return !ok || r.allowed[role]
}

// check returns the denial response when role may not perform op.
func check(op Operation, role domain.Role) (domain.Response, bool) {
	if Allowed(op, role) {
		return domain.Response{}, true
	}
	return domain.Failure(rules[op].denial), false
}
