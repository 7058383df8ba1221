package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"manager@test.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"EMP001", "MGR001", "HR1234"}
	invalid := []string{"emp001", "EMP", "001", "E001", "EMP-001", ""}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-11-28", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:10", "10:15", "23:59"}
	invalid := []string{"24:00", "9:1", "10:60", "10.15", ""}
	for _, s := range valid {
		if _, ok := IsValidTimeOfDay(s); !ok {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidTimeOfDay(s); ok {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"1", 1, true},
		{"11", 11, true},
		{"12", 12, true},
		{"0", 0, false},
		{"13", 0, false},
		{"nov", 0, false},
	}
	for _, c := range cases {
		got, ok := IsValidMonth(c.input)
		if got != c.want || ok != c.ok {
			t.Errorf("IsValidMonth(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestIsValidYear(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
	}{
		{"2025", true},
		{"1970", true},
		{"1969", false},
		{"25", false},
		{"20x5", false},
	}
	for _, c := range cases {
		if _, ok := IsValidYear(c.input); ok != c.ok {
			t.Errorf("IsValidYear(%q) ok = %v, want %v", c.input, ok, c.ok)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"present", "late", "absent"}
	if !IsInSlice("late", slice) {
		t.Errorf("IsInSlice('late') = false, want true")
	}
	if IsInSlice("half-day", slice) {
		t.Errorf("IsInSlice('half-day') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "status", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; status: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "status", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "status": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
