package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, s.IndexHandler())
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	if s.services.Metrics != nil {
		s.RegisterRouteHandler("GET "+RouteMetrics, s.services.Metrics)
	}
	if s.config.IsDebug() {
		s.RegisterRouteFunc("GET "+RouteDocs, s.DocsHandler())
	}

	// AUTH
	s.RegisterRouteFunc("POST "+RouteAuthGoogle, s.GoogleLoginHandler())
	s.RegisterRouteFunc("POST "+RouteAuthGoogleCode, s.GoogleCodeLoginHandler())
	s.RegisterRouteFunc("POST "+RouteAuthDevLogin, s.DevLoginHandler())
	s.RegisterRouteFunc("POST "+RouteAuthRefresh, s.RefreshHandler())
	s.RegisterAuthenticatedRouteFunc("GET "+RouteAuthMe, s.MeHandler())
	s.RegisterAuthenticatedRouteFunc("GET "+RouteAuthMoodleStatus, s.MoodleStatusHandler())

	// COURSES
	s.RegisterAuthenticatedRouteFunc("GET "+RouteCourses, s.CoursesHandler())
	s.RegisterAuthenticatedRouteFunc("GET "+RouteCourse, s.CourseHandler())
	s.RegisterAuthenticatedRouteFunc("GET "+RouteCourseContents, s.CourseContentsHandler())

	// ASSIGNMENTS
	s.RegisterAuthenticatedRouteFunc("GET "+RouteCourseAssignments, s.CourseAssignmentsHandler())
	s.RegisterAuthenticatedRouteFunc("GET "+RouteAssignment, s.AssignmentHandler())
	s.RegisterAuthenticatedRouteFunc("GET "+RouteAssignmentSubmission, s.SubmissionStatusHandler())
	s.RegisterAuthenticatedRouteFunc("POST "+RouteAssignmentSubmit, s.SubmitAssignmentHandler())

	// FORUMS
	s.RegisterAuthenticatedRouteFunc("GET "+RouteCourseForums, s.CourseForumsHandler())
	s.RegisterAuthenticatedRouteFunc("GET "+RouteForumDiscussions, s.ForumDiscussionsHandler())
	s.RegisterAuthenticatedRouteFunc("GET "+RouteDiscussionPosts, s.DiscussionPostsHandler())
	s.RegisterAuthenticatedRouteFunc("POST "+RouteDiscussionReply, s.ReplyHandler())
}
