package auth

import "strings"

// Role policy. Pure functions, no I/O; every rule takes the actor's role and,
// where ownership matters, the resource owner's id.
//
// Feedback moderation deliberately excludes staff: staff can work another
// user's grievance but must not read their product feedback.

func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// IsPrivileged reports whether the role belongs to the staff tier that may
// read and update any grievance regardless of ownership.
func IsPrivileged(role string) bool {
	switch NormalizeRole(role) {
	case "admin", "manager", "staff":
		return true
	}
	return false
}

func CanReadGrievance(role string, actorID, ownerID int64) bool {
	return actorID == ownerID || IsPrivileged(role)
}

func CanUpdateGrievance(role string, actorID, ownerID int64) bool {
	return actorID == ownerID || IsPrivileged(role)
}

// CanModerateFeedback reports whether the role may read, update or delete
// feedback it does not own.
func CanModerateFeedback(role string) bool {
	switch NormalizeRole(role) {
	case "admin", "manager":
		return true
	}
	return false
}

func CanAccessFeedback(role string, actorID, ownerID int64) bool {
	return actorID == ownerID || CanModerateFeedback(role)
}

// SeesAllStatistics: only admin aggregates over every record; all other roles
// are scoped to their own submissions.
func SeesAllStatistics(role string) bool {
	return NormalizeRole(role) == "admin"
}
