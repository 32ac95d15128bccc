package ner

import (
	"context"
	"testing"
)

func TestRuleExtractor_PersonWithHonorific(t *testing.T) {
	e := NewRuleExtractor()
	set, err := e.Extract(context.Background(), "Dr. Maria Alvarez treated the victims at the scene.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !hasForm(set, CategoryPerson, "Maria Alvarez") {
		t.Errorf("Expected PERSON 'Maria Alvarez', got %v", set.Forms(CategoryPerson))
	}
}

func TestRuleExtractor_MultiWordRunIsPerson(t *testing.T) {
	e := NewRuleExtractor()
	set, _ := e.Extract(context.Background(), "Witnesses said John Smith ran toward the exit.")

	if !hasForm(set, CategoryPerson, "John Smith") {
		t.Errorf("Expected PERSON 'John Smith', got %v", set.Forms(CategoryPerson))
	}
}

func TestRuleExtractor_OrgMarkers(t *testing.T) {
	e := NewRuleExtractor()
	set, _ := e.Extract(context.Background(), "Investigators from the Springfield Police Department opened an investigation.")

	if !hasForm(set, CategoryOrg, "Springfield Police Department") {
		t.Errorf("Expected ORG 'Springfield Police Department', got %v", set.Forms(CategoryOrg))
	}
}

func TestRuleExtractor_Acronym(t *testing.T) {
	e := NewRuleExtractor()
	set, _ := e.Extract(context.Background(), "Agents from the FBI searched the building overnight.")

	if !hasForm(set, CategoryOrg, "FBI") {
		t.Errorf("Expected ORG 'FBI', got %v", set.Forms(CategoryOrg))
	}
}

func TestRuleExtractor_PlaceAfterCue(t *testing.T) {
	e := NewRuleExtractor()
	set, _ := e.Extract(context.Background(), "The protest started in Chicago before spreading north.")

	if !hasForm(set, CategoryGPE, "Chicago") {
		t.Errorf("Expected GPE 'Chicago', got %v", set.Forms(CategoryGPE))
	}
}

func TestRuleExtractor_Dates(t *testing.T) {
	e := NewRuleExtractor()
	set, _ := e.Extract(context.Background(), "The incident happened on January 10, 2026 according to officials.")

	if set.Count(CategoryDate) == 0 {
		t.Errorf("Expected a DATE entity, got %v", set.Forms(CategoryDate))
	}
}

func TestRuleExtractor_EmptyText(t *testing.T) {
	e := NewRuleExtractor()
	set, err := e.Extract(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Expected no error for empty text, got %v", err)
	}
	if set.Count(CategoryPerson)+set.Count(CategoryOrg)+set.Count(CategoryGPE)+set.Count(CategoryDate) != 0 {
		t.Errorf("Expected empty set, got %v", set)
	}
}

func hasForm(set EntitySet, cat Category, form string) bool {
	for _, f := range set.Forms(cat) {
		if f == form {
			return true
		}
	}
	return false
}
