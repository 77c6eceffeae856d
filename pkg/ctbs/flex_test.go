package ctbs

import (
	"encoding/json"
	"testing"
)

func TestFlexBoolUnmarshal(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{`1`, true},
		{`"1"`, true},
		{`true`, true},
		{`"true"`, true},
		{`"yes"`, true},
		{`0`, false},
		{`"0"`, false},
		{`false`, false},
		{`""`, false},
		{`null`, false},
	}

	for _, testCase := range testCases {
		var value FlexBool
		if err := json.Unmarshal([]byte(testCase.input), &value); err != nil {
			t.Errorf("unmarshal %s: %v", testCase.input, err)
			continue
		}

		if value.Bool() != testCase.expected {
			t.Errorf("unmarshal %s: expected %v got %v", testCase.input, testCase.expected, value.Bool())
		}
	}
}

func TestFlexFloatUnmarshal(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{`42.5`, 42.5},
		{`"42.5"`, 42.5},
		{`"0"`, 0},
		{`""`, 0},
		{`null`, 0},
		{`"not a number"`, 0},
	}

	for _, testCase := range testCases {
		var value FlexFloat
		if err := json.Unmarshal([]byte(testCase.input), &value); err != nil {
			t.Errorf("unmarshal %s: %v", testCase.input, err)
			continue
		}

		if value.Float64() != testCase.expected {
			t.Errorf("unmarshal %s: expected %v got %v", testCase.input, testCase.expected, value.Float64())
		}
	}
}

func TestFlexStringUnmarshal(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{`"1043339"`, "1043339"},
		{`1043339`, "1043339"},
		{`null`, ""},
	}

	for _, testCase := range testCases {
		var value FlexString
		if err := json.Unmarshal([]byte(testCase.input), &value); err != nil {
			t.Errorf("unmarshal %s: %v", testCase.input, err)
			continue
		}

		if value.String() != testCase.expected {
			t.Errorf("unmarshal %s: expected %q got %q", testCase.input, testCase.expected, value.String())
		}
	}
}

func TestFlexBoolMarshalsAsPlainBool(t *testing.T) {
	encoded, err := json.Marshal(struct {
		Flag FlexBool `json:"flag"`
	}{Flag: true})
	if err != nil {
		t.Fatal(err)
	}

	if string(encoded) != `{"flag":true}` {
		t.Errorf("expected plain bool encoding, got %s", encoded)
	}
}

func TestTripListAcceptsSingleObjectAndArray(t *testing.T) {
	var fromArray struct {
		Trips TripList `json:"trips"`
	}
	if err := json.Unmarshal([]byte(`{"trips":[{"interval_id":"a"},{"interval_id":"b"}]}`), &fromArray); err != nil {
		t.Fatal(err)
	}
	if len(fromArray.Trips) != 2 {
		t.Errorf("expected 2 trips from array, got %d", len(fromArray.Trips))
	}

	var fromObject struct {
		Trips TripList `json:"trips"`
	}
	if err := json.Unmarshal([]byte(`{"trips":{"interval_id":"a"}}`), &fromObject); err != nil {
		t.Fatal(err)
	}
	if len(fromObject.Trips) != 1 || fromObject.Trips[0].IntervalID != "a" {
		t.Errorf("expected 1 trip from single object, got %#v", fromObject.Trips)
	}
}

func TestRouteSummaryIntervalIDs(t *testing.T) {
	direct := RouteSummary{IntervalID: "main"}
	if ids := direct.IntervalIDs(); len(ids) != 1 || ids[0] != "main" {
		t.Errorf("direct route: expected [main], got %v", ids)
	}

	transfer := RouteSummary{
		IntervalID: "main",
		Trips: TripList{
			{IntervalID: "leg1"},
			{IntervalID: "leg2"},
		},
	}
	ids := transfer.IntervalIDs()
	if len(ids) != 2 || ids[0] != "leg1" || ids[1] != "leg2" {
		t.Errorf("transfer route: expected [leg1 leg2], got %v", ids)
	}

	if !transfer.HasTransfers() {
		t.Error("route with 2 trips should report transfers")
	}
	if direct.HasTransfers() {
		t.Error("direct route should not report transfers")
	}
}
