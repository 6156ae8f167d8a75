package domain

const (
	ActorIdCtxKey     = "vc-actorId"
	ActorRoleCtxKey   = "vc-actorRole"
	ActorVendorCtxKey = "vc-actorVendor"
)

const (
	ActorIdHeader     = "vc-actor-id"
	ActorRoleHeader   = "vc-actor-role"
	ActorVendorHeader = "vc-actor-vendor"
)

// Actor roles resolved by the external identity provider. The engine
// trusts the role passed in and only enforces ownership guards itself.
const (
	RoleVendor        = "vendor"
	RoleConsultant    = "consultant"
	RoleCrossVerifier = "cross_verifier"
	RoleApprover      = "approver"
	RoleAdmin         = "admin"
)
