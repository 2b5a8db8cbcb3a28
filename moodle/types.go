package moodle

import "encoding/json"

// SiteInfo is the result of core_webservice_get_site_info. UserID is the
// owner of the service token.
type SiteInfo struct {
	SiteName string `json:"sitename"`
	SiteURL  string `json:"siteurl"`
	Release  string `json:"release"`
	UserID   int64  `json:"userid"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

type Course struct {
	ID        int64   `json:"id"`
	ShortName string  `json:"shortname"`
	FullName  string  `json:"fullname"`
	Summary   *string `json:"summary"`
	StartDate *int64  `json:"startdate"`
	EndDate   *int64  `json:"enddate"`
}

// Section is one section of a course. Modules are passed through as the
// LMS reports them.
type Section struct {
	ID      int64             `json:"id"`
	Name    string            `json:"name"`
	Summary *string           `json:"summary"`
	Modules []json.RawMessage `json:"modules"`
}

type Assignment struct {
	ID                       int64   `json:"id"`
	Course                   int64   `json:"course"`
	Name                     string  `json:"name"`
	Intro                    *string `json:"intro"`
	DueDate                  *int64  `json:"duedate"`
	AllowSubmissionsFromDate *int64  `json:"allowsubmissionsfromdate"`
	Grade                    *int64  `json:"grade"`
}

// SubmissionStatus is the caller's latest attempt at an assignment.
type SubmissionStatus struct {
	Status   string
	Graded   bool
	Grade    *string
	Feedback *string
}

const submissionStatusNew = "new"

// DefaultSubmissionStatus is reported when the LMS cannot be asked.
func DefaultSubmissionStatus() SubmissionStatus {
	return SubmissionStatus{Status: submissionStatusNew}
}

type Forum struct {
	ID     int64   `json:"id"`
	Course int64   `json:"course"`
	Name   string  `json:"name"`
	Intro  *string `json:"intro"`
	Type   *string `json:"type"`
}

type Discussion struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Message      *string `json:"message"`
	UserID       int64   `json:"userid"`
	UserFullName *string `json:"userfullname"`
	Created      *int64  `json:"created"`
	Modified     *int64  `json:"modified"`
	NumReplies   int     `json:"numreplies"`
}

type Post struct {
	ID           int64   `json:"id"`
	Discussion   int64   `json:"discussion"`
	Parent       int64   `json:"parent"`
	UserID       int64   `json:"userid"`
	UserFullName *string `json:"userfullname"`
	Message      string  `json:"message"`
	Created      *int64  `json:"created"`
}

// AddedPost is the result of a successful reply.
type AddedPost struct {
	PostID int64 `json:"postid"`
}
