// Package permissions is the single authorization gate. Every sensitive
// operation is described by an Operation value and decided by one pure
// policy function over the closed role set {student, organization, admin}.
package permissions

// Operation enumerates everything the gate can be asked about.
type Operation int

const (
	OpBrowseCatalog Operation = iota
	OpReadSelf
	OpCreateUser
	OpCreateOrganization
	OpListUsers
	OpDeleteUser
	OpCreateCourse
	OpViewAdminCourses
	OpAssignEnrollment
	OpListAssignments
	OpCreateBatch
	OpManageBatch
	OpListBatchAssignments
)

// Deny reasons returned with a negative decision.
const (
	ReasonProfileMissing = "profile not found"
	ReasonRoleForbidden  = "role not permitted for this operation"
	ReasonNotOwner       = "resource belongs to another organization"
)

// Actor is the verified caller identity the gate decides over.
// Role is empty when the account has no Profile row.
type Actor struct {
	UserID      uint
	IsSuperuser bool
	Role        string
	OrgID       *uint // OrganizationProfile id, set only for organization callers
}

// Resource describes the target of an operation. OrganizationID is the
// owning organization, when the resource has one.
type Resource struct {
	OrganizationID *uint
	OwnerID        *uint
}

// OwnedByOrg builds a Resource owned by the given organization.
func OwnedByOrg(orgID uint) Resource {
	return Resource{OrganizationID: &orgID}
}

// Decision is the gate's verdict. Reason is set only on deny.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// policy is implemented once per role variant.
type policy interface {
	decide(op Operation, res Resource) Decision
}

type adminPolicy struct{}

func (adminPolicy) decide(Operation, Resource) Decision { return allow() }

type organizationPolicy struct {
	orgID *uint
}

func (p organizationPolicy) decide(op Operation, res Resource) Decision {
	switch op {
	case OpBrowseCatalog, OpReadSelf:
		return allow()
	case OpCreateUser, OpCreateCourse, OpCreateBatch:
		// Self-scoped creation; callers stamp the new resource with
		// their own organization.
		if p.orgID == nil {
			return deny(ReasonProfileMissing)
		}
		return allow()
	case OpManageBatch:
		if p.orgID == nil {
			return deny(ReasonProfileMissing)
		}
		if res.OrganizationID == nil || *res.OrganizationID != *p.orgID {
			return deny(ReasonNotOwner)
		}
		return allow()
	case OpListBatchAssignments:
		// Gated on the organization role only; the listing itself is
		// not scoped further.
		if p.orgID == nil {
			return deny(ReasonProfileMissing)
		}
		return allow()
	default:
		return deny(ReasonRoleForbidden)
	}
}

type studentPolicy struct{}

func (studentPolicy) decide(op Operation, res Resource) Decision {
	switch op {
	case OpBrowseCatalog, OpReadSelf:
		return allow()
	default:
		return deny(ReasonRoleForbidden)
	}
}

// Authorize evaluates the gate for one request. It is a pure decision
// function; callers surface a deny as a permission error themselves.
func Authorize(actor Actor, op Operation, res Resource) Decision {
	if actor.IsSuperuser {
		return adminPolicy{}.decide(op, res)
	}

	switch actor.Role {
	case "admin":
		return adminPolicy{}.decide(op, res)
	case "organization":
		return organizationPolicy{orgID: actor.OrgID}.decide(op, res)
	case "student":
		return studentPolicy{}.decide(op, res)
	case "":
		// A missing Profile is a deny in its own right, never an
		// anonymous/guest path.
		return deny(ReasonProfileMissing)
	default:
		return studentPolicy{}.decide(op, res)
	}
}
