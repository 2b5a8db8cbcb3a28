package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Service Routes
	RouteIndex   = "/"
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
	RouteDocs    = "/docs"

	// Auth Routes
	RouteAuthGoogle       = "/auth/google"
	RouteAuthGoogleCode   = "/auth/google/code"
	RouteAuthDevLogin     = "/auth/dev-login"
	RouteAuthRefresh      = "/auth/refresh"
	RouteAuthMe           = "/auth/me"
	RouteAuthMoodleStatus = "/auth/moodle-status"

	// Course Routes
	RouteCourses        = "/courses"
	RouteCourse         = "/courses/{course_id}"
	RouteCourseContents = "/courses/{course_id}/contents"

	// Assignment Routes
	RouteCourseAssignments    = "/assignments/course/{course_id}"
	RouteAssignment           = "/assignments/{assignment_id}"
	RouteAssignmentSubmission = "/assignments/{assignment_id}/submission"
	RouteAssignmentSubmit     = "/assignments/{assignment_id}/submit"

	// Forum Routes
	RouteCourseForums     = "/forums/course/{course_id}"
	RouteForumDiscussions = "/forums/{forum_id}/discussions"
	RouteDiscussionPosts  = "/forums/discussions/{discussion_id}/posts"
	RouteDiscussionReply  = "/forums/discussions/{discussion_id}/reply"
)

// Path parameter names
const (
	paramCourseID     = "course_id"
	paramAssignmentID = "assignment_id"
	paramForumID      = "forum_id"
	paramDiscussionID = "discussion_id"
)
