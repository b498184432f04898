// Package log provides named loggers for CourseXpert components and
// providers. See log.go for usage details.
package log
