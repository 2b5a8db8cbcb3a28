package apimodel

import "encoding/json"

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	MoodleURL string `json:"moodle_url"`
	Debug     bool   `json:"debug"`
}

type CourseResponse struct {
	ID        int64   `json:"id"`
	ShortName string  `json:"shortname"`
	FullName  string  `json:"fullname"`
	Summary   *string `json:"summary"`
	StartDate *int64  `json:"startdate"`
	EndDate   *int64  `json:"enddate"`
}

type CourseContentResponse struct {
	ID      int64             `json:"id"`
	Name    string            `json:"name"`
	Summary *string           `json:"summary"`
	Modules []json.RawMessage `json:"modules"`
}

type AssignmentResponse struct {
	ID                       int64   `json:"id"`
	CourseID                 int64   `json:"course_id"`
	Name                     string  `json:"name"`
	Intro                    *string `json:"intro"`
	DueDate                  *int64  `json:"duedate"`
	AllowSubmissionsFromDate *int64  `json:"allowsubmissionsfromdate"`
	Grade                    *int64  `json:"grade"`
}

type SubmissionStatusResponse struct {
	Status   string  `json:"status"`
	Graded   bool    `json:"graded"`
	Grade    *string `json:"grade"`
	Feedback *string `json:"feedback"`
}

type SubmitAssignmentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ForumResponse struct {
	ID       int64   `json:"id"`
	CourseID int64   `json:"course_id"`
	Name     string  `json:"name"`
	Intro    *string `json:"intro"`
	Type     *string `json:"type"`
}

type DiscussionResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Message      *string `json:"message"`
	UserID       int64   `json:"userid"`
	UserFullName *string `json:"userfullname"`
	Created      *int64  `json:"created"`
	Modified     *int64  `json:"modified"`
	NumReplies   int     `json:"numreplies"`
}

type PostResponse struct {
	ID           int64   `json:"id"`
	DiscussionID int64   `json:"discussion_id"`
	ParentID     int64   `json:"parent_id"`
	UserID       int64   `json:"userid"`
	UserFullName *string `json:"userfullname"`
	Message      string  `json:"message"`
	Created      *int64  `json:"created"`
}

type ReplyResponse struct {
	Success bool   `json:"success"`
	PostID  *int64 `json:"post_id"`
	Message string `json:"message"`
}

// RouteResponse documents one registered route.
type RouteResponse struct {
	Method        string `json:"method"`
	Path          string `json:"path"`
	Authenticated bool   `json:"authenticated"`
}
