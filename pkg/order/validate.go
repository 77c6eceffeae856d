package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/starlines/starlines/pkg/ctbs"
)

const birthDateLayout = "2006-01-02"

// E.164 with the leading plus mandatory.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// FieldError pinpoints a single invalid passenger field so forms can
// highlight it.
type FieldError struct {
	Passenger int
	Field     string
	Message   string
}

func (e FieldError) Error() string {
	if e.Passenger < 0 {
		return fmt.Sprintf("contact: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("passenger %d: %s: %s", e.Passenger, e.Field, e.Message)
}

// ValidationErrors is the full set of problems found in one pass. Validation
// never stops at the first failure, so a form can show everything at once.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	messages := make([]string, len(e))
	for i, fieldError := range e {
		messages[i] = fieldError.Error()
	}
	return strings.Join(messages, "; ")
}

// PassengerRequirements mirrors the route flags that decide which optional
// fields become mandatory for this booking.
type PassengerRequirements struct {
	Doc           bool
	DocExpireDate bool
	Gender        bool
	Citizenship   bool
	Phone         bool
}

// RequirementsForTrips folds the need flags of every route in the order.
// One trip demanding a field makes it mandatory for the whole order.
func RequirementsForTrips(trips []TripMeta) PassengerRequirements {
	union := unionRequirements(trips)

	return PassengerRequirements{
		Doc:           union.doc,
		DocExpireDate: union.docExpire,
		Gender:        union.gender,
		Citizenship:   union.citizenship,
	}
}

// ValidateContact checks the order-level contact data the provider requires
// on every booking. The contact phone is mandatory regardless of route flags;
// it is where the provider sends the ticket and SMS verification.
func ValidateContact(common CommonData) ValidationErrors {
	var problems ValidationErrors

	if common.Phone == "" {
		problems = append(problems, FieldError{Passenger: -1, Field: "phone", Message: "required"})
	} else if !phonePattern.MatchString(common.Phone) {
		problems = append(problems, FieldError{Passenger: -1, Field: "phone", Message: "expected international format, e.g. +37360123456"})
	}

	return problems
}

// ValidatePassengers checks every passenger against the requirements and
// returns all failures. now anchors the age checks; pass time.Now() outside
// of tests.
func ValidatePassengers(passengers []ctbs.Passenger, requirements PassengerRequirements, now time.Time) ValidationErrors {
	var problems ValidationErrors

	addProblem := func(passenger int, field, message string) {
		problems = append(problems, FieldError{Passenger: passenger, Field: field, Message: message})
	}

	for i, passenger := range passengers {
		if strings.TrimSpace(passenger.Name) == "" {
			addProblem(i, "name", "required")
		}
		if strings.TrimSpace(passenger.Surname) == "" {
			addProblem(i, "surname", "required")
		}

		if passenger.BirthDate == "" {
			addProblem(i, "birth_date", "required")
		} else if born, err := time.Parse(birthDateLayout, passenger.BirthDate); err != nil {
			addProblem(i, "birth_date", "expected YYYY-MM-DD")
		} else {
			age := yearsBetween(born, now)
			if age < 1 {
				addProblem(i, "birth_date", "passenger must be at least 1 year old")
			} else if age > 120 {
				addProblem(i, "birth_date", "implausible age")
			}
		}

		if passenger.Phone != "" && !phonePattern.MatchString(passenger.Phone) {
			addProblem(i, "phone", "expected international format, e.g. +37360123456")
		} else if requirements.Phone && passenger.Phone == "" {
			addProblem(i, "phone", "required")
		}

		if requirements.Doc {
			if strings.TrimSpace(passenger.DocType) == "" {
				addProblem(i, "doc_type", "required for this route")
			}
			if strings.TrimSpace(passenger.DocNumber) == "" {
				addProblem(i, "doc_number", "required for this route")
			}
		}

		if requirements.DocExpireDate {
			if passenger.DocExpireDate == "" {
				addProblem(i, "doc_expire_date", "required for this route")
			} else if expiry, err := time.Parse(birthDateLayout, passenger.DocExpireDate); err != nil {
				addProblem(i, "doc_expire_date", "expected YYYY-MM-DD")
			} else if expiry.Before(now) {
				addProblem(i, "doc_expire_date", "document already expired")
			}
		}

		if requirements.Gender && strings.TrimSpace(passenger.Gender) == "" {
			addProblem(i, "gender", "required for this route")
		}

		if requirements.Citizenship && strings.TrimSpace(passenger.Citizenship) == "" {
			addProblem(i, "citizenship", "required for this route")
		}
	}

	return problems
}

func yearsBetween(born, now time.Time) int {
	years := now.Year() - born.Year()

	// Birthday not reached yet this year.
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}

	return years
}
