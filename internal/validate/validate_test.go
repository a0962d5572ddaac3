// ABOUTME: Tests for the rule-set validation engine
// ABOUTME: Covers message precedence, password mismatch, and purity

package validate

import (
	"testing"

	"folio-admin/internal/entity"
)

func TestValidate_CleanRecord(t *testing.T) {
	rules := entity.RuleSet{
		"title":       {Required: true, Min: 3},
		"description": {Required: true},
	}
	record := entity.Record{
		"title":       "My Project",
		"description": "Something",
	}

	if errs := Validate(record, rules); errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_RequiredEmpty(t *testing.T) {
	rules := entity.RuleSet{"title": {Required: true, Min: 3}}

	errs := Validate(entity.Record{"title": "   "}, rules)
	if errs["title"] != "title is required" {
		t.Errorf("expected required message for blank field, got %q", errs["title"])
	}

	// Absent field is treated as empty
	errs = Validate(entity.Record{}, rules)
	if errs["title"] != "title is required" {
		t.Errorf("expected required message for absent field, got %q", errs["title"])
	}
}

func TestValidate_MinLength(t *testing.T) {
	// Scenario: admin password of 5 chars against a min of 6
	rules := entity.RuleSet{"password": {Required: true, Min: 6}}

	errs := Validate(entity.Record{"password": "abc12"}, rules)
	if errs["password"] != "Minimum 6 characters required" {
		t.Errorf("expected minimum-length message, got %q", errs["password"])
	}
}

func TestValidate_RequiredTakesPriorityOverLength(t *testing.T) {
	// An empty required field with a minimum reports only "is required"
	rules := entity.RuleSet{"title": {Required: true, Min: 3}}

	errs := Validate(entity.Record{"title": ""}, rules)
	if errs["title"] != "title is required" {
		t.Errorf("expected required message to win, got %q", errs["title"])
	}
	if len(errs) != 1 {
		t.Errorf("expected exactly one error, got %v", errs)
	}
}

func TestValidate_PasswordMismatch(t *testing.T) {
	// Mismatch fires independent of the rule set
	errs := Validate(entity.Record{
		"password":        "secret1",
		"confirmPassword": "secret2",
	}, entity.RuleSet{})

	if errs["confirmPassword"] != "Passwords do not match" {
		t.Errorf("expected mismatch message, got %q", errs["confirmPassword"])
	}
}

func TestValidate_PasswordMatchNoError(t *testing.T) {
	errs := Validate(entity.Record{
		"password":        "secret1",
		"confirmPassword": "secret1",
	}, entity.RuleSet{})

	if errs != nil {
		t.Errorf("expected no errors for matching passwords, got %v", errs)
	}
}

func TestValidate_HumanizedFieldNames(t *testing.T) {
	rules := entity.RuleSet{"featured_image": {Required: true, Type: "file"}}

	errs := Validate(entity.Record{}, rules)
	if errs["featured_image"] != "featured image is required" {
		t.Errorf("expected humanized field name, got %q", errs["featured_image"])
	}
}

func TestValidate_DateRule(t *testing.T) {
	rules := entity.RuleSet{"publishedAt": {Type: "date"}}

	errs := Validate(entity.Record{"publishedAt": "2025-01-15"}, rules)
	if errs != nil {
		t.Errorf("expected valid date to pass, got %v", errs)
	}

	errs = Validate(entity.Record{"publishedAt": "soon"}, rules)
	if errs["publishedAt"] != "publishedAt is not a valid date" {
		t.Errorf("expected date message, got %q", errs["publishedAt"])
	}
}

func TestValidate_LocalFileSatisfiesRequired(t *testing.T) {
	rules := entity.RuleSet{"featured_image": {Required: true, Type: "file"}}

	errs := Validate(entity.Record{"featured_image": LocalFile{Path: "/tmp/cover.png"}}, rules)
	if errs != nil {
		t.Errorf("expected pending file to satisfy required, got %v", errs)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	rules := entity.RuleSet{
		"title":    {Required: true, Min: 3},
		"password": {Required: true, Min: 6},
	}
	record := entity.Record{"title": "ab", "password": ""}

	first := Validate(record, rules)
	second := Validate(record, rules)

	if len(first) != len(second) {
		t.Fatalf("expected identical error maps, got %v and %v", first, second)
	}
	for field, msg := range first {
		if second[field] != msg {
			t.Errorf("field %s: %q != %q", field, msg, second[field])
		}
	}
}
