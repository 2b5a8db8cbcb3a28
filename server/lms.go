package server

import (
	"context"

	"github.com/jrsteele09/lms-mobile-gateway/moodle"
)

// LMS is the subset of the upstream client the handlers use.
type LMS interface {
	GetSiteInfo(ctx context.Context) (*moodle.SiteInfo, error)
	GetUserCourses(ctx context.Context, userID int64) ([]moodle.Course, error)
	GetCourseContents(ctx context.Context, courseID int64) ([]moodle.Section, error)
	GetAssignments(ctx context.Context, courseID int64) ([]moodle.Assignment, error)
	GetAssignmentByID(ctx context.Context, assignmentID int64) (*moodle.Assignment, bool)
	GetSubmissionStatus(ctx context.Context, assignmentID, userID int64) moodle.SubmissionStatus
	SubmitAssignment(ctx context.Context, assignmentID int64, text string) bool
	GetForums(ctx context.Context, courseID int64) ([]moodle.Forum, error)
	GetForumDiscussions(ctx context.Context, forumID int64) ([]moodle.Discussion, error)
	GetDiscussionPosts(ctx context.Context, discussionID int64) ([]moodle.Post, error)
	AddDiscussionPost(ctx context.Context, postID int64, message string) (*moodle.AddedPost, bool)
}

var _ LMS = (*moodle.Client)(nil)
