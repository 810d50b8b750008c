package gallery

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/diogo-costa-silva/portfolio/models"
)

func TestParseQuery(t *testing.T) {
	q, err := url.ParseQuery("category=devops,data-science&category=robotics&status=completed&tech=Go&tech=Go&tech=Big+Data&real=true&q=Pipeline")
	if err != nil {
		t.Fatal(err)
	}

	got := ParseQuery(q)
	want := FilterState{
		Categories:   []models.Category{"devops", "data-science"},
		Statuses:     []models.Status{"completed"},
		Technologies: []string{"Go", "Big Data"},
		RealOnly:     true,
		SearchTerm:   "Pipeline",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseQuery_AllClearsEarlierSelections(t *testing.T) {
	got := ParseQuery(url.Values{"category": {"devops", "all"}, "real": {"nope"}})
	if !got.IsDefault() {
		t.Errorf("got %+v, want default", got)
	}
}

func TestEncodeQuery_RoundTrip(t *testing.T) {
	var s FilterState
	s.ToggleCategory("ai")
	s.ToggleStatus("in-progress")
	s.ToggleTechnology("Python")
	s.SetSearchTerm("bot")

	if got := ParseQuery(EncodeQuery(s)); !reflect.DeepEqual(got, s) {
		t.Errorf("got %+v, want %+v", got, s)
	}
	if got := EncodeQuery(FilterState{}).Encode(); got != "" {
		t.Errorf("default state encodes to %q", got)
	}
}
