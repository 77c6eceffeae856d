package normalise

import (
	"encoding/json"
	"testing"
)

func TestCityListNormalisesProviderRecords(t *testing.T) {
	raw := decode(t, `{"root":{"item":[
		{"point_id":"90","point_ru_name":"Кишинев","point_en_name":"Chisinau","point_latin_name":"Chisinau","country_id":"4","currency":"EUR","latitude":"47.0105","longitude":"28.8638"},
		{"point_id":"257","point_en_name":"Berlin","country_id":"2","curency":"EUR"}
	]}}`)

	points, err := CityList(raw, "en")
	if err != nil {
		t.Fatal(err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	// Collated sort puts Berlin before Chisinau.
	if points[0].Name != "Berlin" || points[1].Name != "Chisinau" {
		t.Errorf("unexpected sort order: %s, %s", points[0].Name, points[1].Name)
	}

	chisinau := points[1]
	if chisinau.PointID != "90" {
		t.Errorf("expected point_id 90, got %s", chisinau.PointID)
	}
	if chisinau.Location == nil || chisinau.Location.Latitude != 47.0105 {
		t.Errorf("expected parsed location, got %#v", chisinau.Location)
	}

	// The curency spelling must still resolve.
	if points[0].Currency != "EUR" {
		t.Errorf("expected currency EUR from curency field, got %q", points[0].Currency)
	}
}

func TestCityListPrefersRequestedLanguage(t *testing.T) {
	raw := decode(t, `[{"point_id":"90","point_ru_name":"Кишинев","point_name":"Chisinau"}]`)

	points, err := CityList(raw, "ru")
	if err != nil {
		t.Fatal(err)
	}

	if len(points) != 1 || points[0].Name != "Кишинев" {
		t.Fatalf("expected Russian name, got %#v", points)
	}
}

func TestCityListDeduplicatesLastWriteWins(t *testing.T) {
	raw := decode(t, `[
		{"point_id":"90","point_name":"Old Name"},
		{"point_id":"90","point_name":"New Name"}
	]`)

	points, err := CityList(raw, "en")
	if err != nil {
		t.Fatal(err)
	}

	if len(points) != 1 {
		t.Fatalf("expected duplicates collapsed to 1 point, got %d", len(points))
	}
	if points[0].Name != "New Name" {
		t.Errorf("expected last record to win, got %q", points[0].Name)
	}
}

func TestCityListSkipsMalformedRecords(t *testing.T) {
	raw := decode(t, `[
		{"point_id":"90","point_name":"Chisinau"},
		{"point_name":"No ID"},
		{"point_id":"91"},
		{"point_id":"92","point_name":"Bad Coords","latitude":"91.5","longitude":"0"},
		"not an object"
	]`)

	points, err := CityList(raw, "en")
	if err != nil {
		t.Fatal(err)
	}

	if len(points) != 1 || points[0].PointID != "90" {
		t.Fatalf("expected only the valid record to survive, got %#v", points)
	}
}

func TestCityListIdempotent(t *testing.T) {
	raw := decode(t, `[{"point_id":"90","point_en_name":"Chisinau","country_id":"4","currency":"EUR","latitude":47.0105,"longitude":28.8638,"stations":[{"station_id":"10","station_name":"Central"}]}]`)

	once, err := CityList(raw, "en")
	if err != nil {
		t.Fatal(err)
	}

	// Feed the normalised output back through its own JSON form.
	encoded, err := json.Marshal(once)
	if err != nil {
		t.Fatal(err)
	}

	twice, err := CityList(decode(t, string(encoded)), "en")
	if err != nil {
		t.Fatal(err)
	}

	first, _ := json.Marshal(once)
	second, _ := json.Marshal(twice)
	if string(first) != string(second) {
		t.Errorf("normalisation not idempotent:\nonce:  %s\ntwice: %s", first, second)
	}
}

func TestCountryGroupsNestedPoints(t *testing.T) {
	raw := decode(t, `{"root":{"item":[
		{"country_id":"4","country_en":"Moldova","points":{"item":[{"point_id":"90","point_en_name":"Chisinau"}]}},
		{"country_id":"2","country_en":"Germany","points":"garbage"}
	]}}`)

	groups, err := CountryGroups(raw, "en")
	if err != nil {
		t.Fatal(err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	byName := map[string]int{}
	for _, group := range groups {
		byName[group.Name] = len(group.Points)
	}

	if byName["Moldova"] != 1 {
		t.Errorf("expected Moldova to keep its nested point, got %d", byName["Moldova"])
	}
	// Malformed nested points never sink the country itself.
	if byName["Germany"] != 0 {
		t.Errorf("expected Germany with no points, got %d", byName["Germany"])
	}
}
