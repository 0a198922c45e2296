package rbac

// Default policy. Students run quizzes and read their own history; question
// authoring stays admin-only.
var RolePermissions = map[string][]string{
	"student": {
		"quiz:start",
		"quiz:answer",
		"quiz:advance",
		"quiz:finish",
		"quiz:reset",
		"quiz:view",
		"result:view-own",
	},
	"admin": {
		"*", // everything
	},
}
