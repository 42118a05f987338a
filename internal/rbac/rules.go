package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"test:take",
		"test:submit",
		"report:view-own",
		"leaderboard:view",
		"reminder:view",
	},
	"admin": {
		"*", // everything
	},
}
