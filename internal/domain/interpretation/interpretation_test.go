package interpretation

import (
	"testing"
	"time"

	"github.com/kailas-cloud/catalogai/internal/domain"
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
)

func TestNew_CopiesFilters(t *testing.T) {
	f := filter.Set{Category: "phone", Keywords: []string{"telefon"}}
	r := New("id-1", "ucuz telefon", f, AISuccess, nil, "gpt-4o-mini", time.Now())

	f.Keywords[0] = "mutated"
	if r.Filters().Keywords[0] != "telefon" {
		t.Error("result must not share keyword storage with the caller")
	}

	got := r.Filters()
	got.Keywords[0] = "mutated"
	if r.Filters().Keywords[0] != "telefon" {
		t.Error("Filters() must return a copy")
	}
}

func TestProvenance(t *testing.T) {
	if !AISuccess.IsAI() || !AIPartial.IsAI() {
		t.Error("ai provenances should report IsAI")
	}
	if Fallback.IsAI() {
		t.Error("fallback is not ai")
	}

	r := New("id-2", "q", filter.Set{}, Fallback,
		&Failure{Kind: domain.FailureTimeout, Message: "deadline"}, "", time.Now())
	if r.Success() {
		t.Error("fallback result should not be a success")
	}
	if r.Failure().Kind != domain.FailureTimeout {
		t.Errorf("Failure().Kind = %q", r.Failure().Kind)
	}
}
