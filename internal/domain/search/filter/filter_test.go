package filter

import (
	"slices"
	"testing"
)

func TestGender_IsValid(t *testing.T) {
	for _, g := range []Gender{Female, Male, Unisex} {
		if !g.IsValid() {
			t.Errorf("%q should be valid", g)
		}
	}
	if Gender("kids").IsValid() {
		t.Error("kids should be invalid")
	}
}

func TestPriceTier_IsValid(t *testing.T) {
	for _, p := range []PriceTier{Budget, Medium, Premium} {
		if !p.IsValid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if PriceTier("cheap").IsValid() {
		t.Error("cheap should be invalid")
	}
}

func TestSet_IsEmpty(t *testing.T) {
	if !(Set{}).IsEmpty() {
		t.Error("zero set should be empty")
	}
	if (Set{Keywords: []string{"gaming"}}).IsEmpty() {
		t.Error("set with keywords should not be empty")
	}
	if (Set{Keywords: []string{"gaming"}}).HasStructured() {
		t.Error("keywords alone are not structured")
	}
	if !(Set{Size: "42"}).HasStructured() {
		t.Error("size is structured")
	}
}

func TestSet_Fill_KeepsExisting(t *testing.T) {
	ai := Set{Category: "headphones", Brand: "Apple", Keywords: []string{"wireless"}}
	lex := Set{Category: "electronics", PriceTier: Premium, Color: "black", Keywords: []string{"apple", "wireless"}}

	got := ai.Fill(lex)

	if got.Category != "headphones" {
		t.Errorf("category overwritten: %q", got.Category)
	}
	if got.PriceTier != Premium || got.Color != "black" {
		t.Errorf("absent keys not filled: %+v", got)
	}
	if !slices.Equal(got.Keywords, []string{"wireless", "apple"}) {
		t.Errorf("keywords = %v", got.Keywords)
	}
	if len(ai.Keywords) != 1 {
		t.Error("Fill must not mutate the receiver")
	}
}

func TestSet_Fill_Idempotent(t *testing.T) {
	lex := Set{Category: "phone", Keywords: []string{"ucuz", "telefon"}}
	once := Set{}.Fill(lex)
	twice := once.Fill(lex)
	if !slices.Equal(once.Keywords, twice.Keywords) || once.Category != twice.Category {
		t.Errorf("fill not idempotent: %+v vs %+v", once, twice)
	}
}

func TestClone_NeverNilKeywords(t *testing.T) {
	if (Set{}).Clone().Keywords == nil {
		t.Error("clone should have non-nil keywords")
	}
}

func TestAddKeywords(t *testing.T) {
	got := AddKeywords(nil, "a1", "", "b2", "a1")
	if !slices.Equal(got, []string{"a1", "b2"}) {
		t.Errorf("got %v", got)
	}
}
