package query

import (
	"testing"

	"github.com/starlines/starlines/pkg/ctbs"
)

func TestValidateReturnDate(t *testing.T) {
	testCases := []struct {
		arrival  string
		returns  string
		expected bool
	}{
		{"2023-11-30", "2023-12-01", true},
		{"2023-12-01", "2023-12-01", true},
		{"2023-12-01", "2023-11-30", false},
		{"not a date", "2023-12-01", false},
		{"2023-12-01", "", false},
	}

	for _, testCase := range testCases {
		if got := ValidateReturnDate(testCase.arrival, testCase.returns); got != testCase.expected {
			t.Errorf("ValidateReturnDate(%q, %q): expected %v got %v",
				testCase.arrival, testCase.returns, testCase.expected, got)
		}
	}
}

func TestBuildReturnParamsInvertsDirection(t *testing.T) {
	outbound := ctbs.NewOutboundSelection(
		ctbs.RouteSummary{IntervalID: "out|90|257", DateTo: "2024-03-16"},
		ctbs.RouteSearchParams{
			IDFrom:        "90",
			IDTo:          "257",
			StationIDFrom: "10",
			StationIDTo:   "30",
			Currency:      "EUR",
			Change:        "0",
			Date:          "2024-03-15",
		},
	)

	params := BuildReturnParams(outbound, "2024-03-20")

	if params.IDFrom != "257" || params.IDTo != "90" {
		t.Errorf("expected swapped points 257->90, got %s->%s", params.IDFrom, params.IDTo)
	}
	if params.StationIDFrom != "30" || params.StationIDTo != "10" {
		t.Errorf("expected swapped stations 30/10, got %s/%s", params.StationIDFrom, params.StationIDTo)
	}
	if params.Date != "2024-03-20" {
		t.Errorf("expected return date forwarded, got %s", params.Date)
	}
	if params.Change != "auto" {
		t.Errorf("expected change forced to auto, got %q", params.Change)
	}
	if len(params.IntervalID) != 1 || params.IntervalID[0] != "out|90|257" {
		t.Errorf("expected outbound interval forwarded, got %v", params.IntervalID)
	}
	if params.Currency != "EUR" {
		t.Errorf("expected currency carried over, got %q", params.Currency)
	}
}

// A one-sided station constraint still swaps sides: boarding-only on the way
// out becomes alighting-only on the way back.
func TestBuildReturnParamsAsymmetricStation(t *testing.T) {
	outbound := ctbs.NewOutboundSelection(
		ctbs.RouteSummary{IntervalID: "out", DateTo: "2024-03-16"},
		ctbs.RouteSearchParams{
			IDFrom:        "90",
			IDTo:          "257",
			StationIDFrom: "10",
		},
	)

	params := BuildReturnParams(outbound, "2024-03-20")

	if params.StationIDFrom != "" {
		t.Errorf("expected no return boarding station, got %q", params.StationIDFrom)
	}
	if params.StationIDTo != "10" {
		t.Errorf("expected outbound boarding station to become return alighting station, got %q", params.StationIDTo)
	}
}

func TestBuildReturnParamsForwardsTransferIntervals(t *testing.T) {
	outbound := ctbs.NewOutboundSelection(
		ctbs.RouteSummary{
			IntervalID: "main",
			DateTo:     "2024-03-16",
			Trips: ctbs.TripList{
				{IntervalID: "leg1"},
				{IntervalID: "leg2"},
			},
		},
		ctbs.RouteSearchParams{IDFrom: "90", IDTo: "257"},
	)

	params := BuildReturnParams(outbound, "2024-03-20")

	if len(params.IntervalID) != 2 || params.IntervalID[0] != "leg1" || params.IntervalID[1] != "leg2" {
		t.Errorf("expected both transfer legs forwarded, got %v", params.IntervalID)
	}

	// The derived params own their interval slice.
	params.IntervalID[0] = "mutated"
	if outbound.IntervalIDs[0] != "leg1" {
		t.Error("mutating derived params must not touch the outbound selection")
	}
}

func TestGetRoutesReturnRejectsEarlyDateWithoutNetwork(t *testing.T) {
	client := NewClient(Options{Transport: &failingTransport{t: t}, Mock: false})

	outbound := ctbs.NewOutboundSelection(
		ctbs.RouteSummary{IntervalID: "out", DateTo: "2024-03-16"},
		ctbs.RouteSearchParams{IDFrom: "90", IDTo: "257", Date: "2024-03-15"},
	)

	response := client.GetRoutesReturn(t.Context(), outbound, "2024-03-10")
	if response.Success {
		t.Fatal("expected validation failure for return before arrival")
	}
	if response.Error == nil || response.Error.Code != "validation" {
		t.Errorf("expected validation error, got %#v", response.Error)
	}
}
