package moodle

import "context"

func (c *Client) GetUserCourses(ctx context.Context, userID int64) ([]Course, error) {
	var courses []Course
	if err := c.callInto(ctx, fnGetUsersCourses, Params{"userid": userID}, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) GetCourseContents(ctx context.Context, courseID int64) ([]Section, error) {
	var sections []Section
	if err := c.callInto(ctx, fnGetCourseContents, Params{"courseid": courseID}, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}
