package errors

import "net/http"

var (
	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	ErrCategoryNotFound = New(
		"CATEGORY_NOT_FOUND",
		"Category not found",
		http.StatusNotFound,
	)

	ErrPointNotFound = New(
		"POINT_NOT_FOUND",
		"Point of interest not found",
		http.StatusNotFound,
	)

	ErrReviewNotFound = New(
		"REVIEW_NOT_FOUND",
		"Review not found",
		http.StatusNotFound,
	)

	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"Route not found",
		http.StatusNotFound,
	)

	ErrResourceNotFound = New(
		"RESOURCE_NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrValidation = New(
		"VALIDATION_ERROR",
		"Validation failed",
		http.StatusBadRequest,
	)

	ErrMalformedRequest = New(
		"MALFORMED_REQUEST",
		"Malformed request",
		http.StatusBadRequest,
	)

	ErrConflict = New(
		"CONFLICT",
		"Resource is still referenced",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
