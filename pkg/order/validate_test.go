package order

import (
	"testing"
	"time"

	"github.com/starlines/starlines/pkg/ctbs"
)

var validationNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func validPassenger() ctbs.Passenger {
	return ctbs.Passenger{
		Name:      "Ion",
		Surname:   "Popescu",
		BirthDate: "1985-04-12",
		Phone:     "+37360123456",
	}
}

func hasFieldError(problems ValidationErrors, passenger int, field string) bool {
	for _, problem := range problems {
		if problem.Passenger == passenger && problem.Field == field {
			return true
		}
	}
	return false
}

func TestValidatePassengersHappyPath(t *testing.T) {
	problems := ValidatePassengers([]ctbs.Passenger{validPassenger()}, PassengerRequirements{}, validationNow)
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}

func TestValidatePassengersCollectsAllFailures(t *testing.T) {
	passengers := []ctbs.Passenger{
		{Surname: "Popescu", BirthDate: "1985-04-12"},
		{Name: "Maria", BirthDate: "not-a-date", Phone: "0601234"},
	}

	problems := ValidatePassengers(passengers, PassengerRequirements{}, validationNow)

	if !hasFieldError(problems, 0, "name") {
		t.Error("expected missing name on passenger 0")
	}
	if !hasFieldError(problems, 1, "surname") {
		t.Error("expected missing surname on passenger 1")
	}
	if !hasFieldError(problems, 1, "birth_date") {
		t.Error("expected malformed birth date on passenger 1")
	}
	if !hasFieldError(problems, 1, "phone") {
		t.Error("expected malformed phone on passenger 1")
	}

	// All four problems in one pass, not just the first.
	if len(problems) < 4 {
		t.Errorf("expected at least 4 problems, got %d: %v", len(problems), problems)
	}
}

func TestValidatePassengersAgeBounds(t *testing.T) {
	testCases := []struct {
		birthDate string
		valid     bool
	}{
		{"2023-02-28", true},  // just over 1 year
		{"2023-06-01", false}, // under 1 year
		{"1905-01-01", true},  // 119 years
		{"1900-01-01", false}, // over 120 years
	}

	for _, testCase := range testCases {
		passenger := validPassenger()
		passenger.BirthDate = testCase.birthDate

		problems := ValidatePassengers([]ctbs.Passenger{passenger}, PassengerRequirements{}, validationNow)
		hasProblem := hasFieldError(problems, 0, "birth_date")
		if hasProblem == testCase.valid {
			t.Errorf("birth date %s: expected valid=%v, problems=%v", testCase.birthDate, testCase.valid, problems)
		}
	}
}

func TestValidatePassengersPhoneFormat(t *testing.T) {
	testCases := []struct {
		phone string
		valid bool
	}{
		{"+37360123456", true},
		{"+4915112345678", true},
		{"37360123456", false},
		{"+0601234567", false},
		{"+373", false},
		{"", true}, // optional unless required
	}

	for _, testCase := range testCases {
		passenger := validPassenger()
		passenger.Phone = testCase.phone

		problems := ValidatePassengers([]ctbs.Passenger{passenger}, PassengerRequirements{}, validationNow)
		hasProblem := hasFieldError(problems, 0, "phone")
		if hasProblem == testCase.valid {
			t.Errorf("phone %q: expected valid=%v", testCase.phone, testCase.valid)
		}
	}
}

func TestValidatePassengersRouteRequirements(t *testing.T) {
	requirements := PassengerRequirements{Doc: true, DocExpireDate: true, Gender: true, Citizenship: true}

	problems := ValidatePassengers([]ctbs.Passenger{validPassenger()}, requirements, validationNow)

	for _, field := range []string{"doc_type", "doc_number", "doc_expire_date", "gender", "citizenship"} {
		if !hasFieldError(problems, 0, field) {
			t.Errorf("expected %s required for this route", field)
		}
	}

	complete := validPassenger()
	complete.DocType = "passport"
	complete.DocNumber = "AA123456"
	complete.DocExpireDate = "2030-01-01"
	complete.Gender = "M"
	complete.Citizenship = "MD"

	if problems := ValidatePassengers([]ctbs.Passenger{complete}, requirements, validationNow); len(problems) != 0 {
		t.Errorf("expected complete passenger to pass, got %v", problems)
	}
}

func TestValidatePassengersExpiredDocument(t *testing.T) {
	passenger := validPassenger()
	passenger.DocType = "passport"
	passenger.DocNumber = "AA123456"
	passenger.DocExpireDate = "2023-12-31"

	problems := ValidatePassengers([]ctbs.Passenger{passenger}, PassengerRequirements{Doc: true, DocExpireDate: true}, validationNow)
	if !hasFieldError(problems, 0, "doc_expire_date") {
		t.Error("expected expired document to be rejected")
	}
}

func TestValidateContact(t *testing.T) {
	if problems := ValidateContact(CommonData{Phone: "+37360123456"}); len(problems) != 0 {
		t.Errorf("expected valid contact phone to pass, got %v", problems)
	}

	if problems := ValidateContact(CommonData{}); !hasFieldError(problems, -1, "phone") {
		t.Error("expected missing contact phone to be rejected")
	}

	for _, phone := range []string{"060123456", "+0123", "+373 60 123 456", "sixty"} {
		if problems := ValidateContact(CommonData{Phone: phone}); !hasFieldError(problems, -1, "phone") {
			t.Errorf("expected %q to be rejected", phone)
		}
	}
}

func TestRequirementsForTripsUnion(t *testing.T) {
	trips := []TripMeta{
		{Route: ctbs.RouteSummary{NeedDoc: true}},
		{Route: ctbs.RouteSummary{NeedGender: true, NeedCitizenship: true}},
	}

	requirements := RequirementsForTrips(trips)
	if !requirements.Doc || !requirements.Gender || !requirements.Citizenship {
		t.Errorf("expected union of needs, got %+v", requirements)
	}
	if requirements.DocExpireDate {
		t.Error("expected doc expiry not required when no trip demands it")
	}
}
