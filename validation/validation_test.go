package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "Ada", v)
	Required("email", "   ", v)
	if v.Empty() {
		t.Fatal("expected violations")
	}
	if _, ok := v["name"]; ok {
		t.Error("non-empty value flagged as required")
	}
	if v["email"] != "required" {
		t.Errorf("email violation = %q, want required", v["email"])
	}
}

func TestEmail(t *testing.T) {
	v := Violations{}
	Email("email", "ada@example.com", v)
	if !v.Empty() {
		t.Fatalf("valid address flagged: %v", v)
	}
	Email("email", "not-an-address", v)
	if v["email"] != "invalid_email" {
		t.Errorf("email violation = %q, want invalid_email", v["email"])
	}

	// empty input is the caller's Required check, not ours
	v2 := Violations{}
	Email("email", "", v2)
	if !v2.Empty() {
		t.Errorf("empty address flagged: %v", v2)
	}
}

func TestMinLen(t *testing.T) {
	v := Violations{}
	MinLen("password", "short", 8, v)
	if v["password"] != "too_short" {
		t.Errorf("password violation = %q, want too_short", v["password"])
	}
	v2 := Violations{}
	MinLen("password", "longenough", 8, v2)
	if !v2.Empty() {
		t.Errorf("valid length flagged: %v", v2)
	}
}

func TestOneOf(t *testing.T) {
	allowed := []string{"full-time", "part-time", "contract", "internship"}
	v := Violations{}
	OneOf("type", "contract", allowed, v)
	if !v.Empty() {
		t.Fatalf("allowed value flagged: %v", v)
	}
	OneOf("type", "freelance", allowed, v)
	if v["type"] != "invalid_value" {
		t.Errorf("type violation = %q, want invalid_value", v["type"])
	}
}

func TestSalaryRange(t *testing.T) {
	cases := []struct {
		name     string
		min, max float64
		want     string
	}{
		{"valid", 50000, 90000, ""},
		{"omitted", 0, 0, ""},
		{"min only", 50000, 0, ""},
		{"inverted", 90000, 50000, "min_exceeds_max"},
		{"negative", -1, 100, "must_not_be_negative"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := Violations{}
			SalaryRange("salary", c.min, c.max, v)
			if got := v["salary"]; got != c.want {
				t.Errorf("SalaryRange(%v, %v) = %q, want %q", c.min, c.max, got, c.want)
			}
		})
	}
}
