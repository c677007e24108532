package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrInvalidRole = errors.New("role must be student or instructor")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrCourseNotFound = errors.New("course not found")
var ErrLectureNotFound = errors.New("lecture not found")
var ErrNotCourseInstructor = errors.New("you are not the course instructor")
var ErrNotEnrolled = errors.New("you must be enrolled in this course")
var ErrAlreadyEnrolled = errors.New("already enrolled in this course")
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrProgressNotFound = errors.New("progress not found")
var ErrProgressExists = errors.New("progress already exists")
var ErrNotQuiz = errors.New("quiz not found")
var ErrNotReading = errors.New("only reading lectures can be marked complete by viewing")
var ErrAnswersMismatch = errors.New("an answer is required for every question")
var ErrInvalidQuestions = errors.New("invalid quiz questions")
var ErrForbidden = errors.New("access denied")
