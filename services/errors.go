package services

import "errors"

// Sentinel errors the controllers map onto the HTTP error taxonomy:
// validation -> 400, not found -> 404, conflict -> 409, auth -> 401.
// Anything else is an unexpected error and becomes a 500.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("user profile not found")
	ErrFoodItemNotFound     = errors.New("food item not found")
	ErrMealNotFound         = errors.New("meal not found")
	ErrMealFoodItemNotFound = errors.New("food item not found in meal")
	ErrWeightLogNotFound    = errors.New("weight log not found")
	ErrNoWeightLogs         = errors.New("no weight logs found for this user")

	ErrEmailTaken = errors.New("a user with this email already exists")
)

// ValidationError marks malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return ValidationError{Msg: msg} }

// notFoundErrs is every sentinel that maps to a 404.
var notFoundErrs = []error{
	ErrUserNotFound,
	ErrProfileNotFound,
	ErrFoodItemNotFound,
	ErrMealNotFound,
	ErrMealFoodItemNotFound,
	ErrWeightLogNotFound,
	ErrNoWeightLogs,
}

func IsNotFound(err error) bool {
	for _, e := range notFoundErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken)
}

func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken)
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
