package api

import (
	"github.com/udyogjagat/job-board/internal/api/middleware"
	"github.com/udyogjagat/job-board/internal/core/domain"
)

// publicRoutes bypass the authorization gate entirely: authentication
// endpoints, health probes, and the metrics/docs surfaces.
var publicRoutes = []string{
	"/api/login",
	"/api/register",
	"/health",
	"/health/ready",
	"/metrics",
	"/swagger/*",
}

// protectedRoutes is the single declarative mapping of route pattern to
// allowed roles. Handlers trust the gate's decision; none of them
// re-derive role checks (ownership rules live in the services).
var protectedRoutes = middleware.RouteTable{
	"/api/jobs": {
		domain.RoleJobSeeker, domain.RoleJobPoster, domain.RoleAdministrator,
	},
	"/api/jobs/:id": {
		domain.RoleJobSeeker, domain.RoleJobPoster, domain.RoleReferrer, domain.RoleAdministrator,
	},
	"/api/jobs/:id/apply": {
		domain.RoleJobSeeker, domain.RoleAdministrator,
	},
	"/api/jobs/:id/applicants": {
		domain.RoleJobPoster, domain.RoleAdministrator,
	},
	"/api/jobs/posted-by-user": {
		domain.RoleJobPoster, domain.RoleAdministrator,
	},
	"/api/profile": {
		domain.RoleJobSeeker, domain.RoleJobPoster, domain.RoleReferrer, domain.RoleAdministrator,
	},
	"/api/admin/users": {
		domain.RoleAdministrator,
	},
	"/api/admin/users/:id/referrals": {
		domain.RoleAdministrator,
	},
}
