package practitioner

import (
	"testing"

	"wellnexus_back_end/internal/models"
)

func storedProfile() models.PractitionerProfile {
	return models.PractitionerProfile{
		Name:            "Dr. Meera Nair",
		Specialization:  "Ayurveda",
		Bio:             "15 years of panchakarma practice",
		ConsultationFee: 800,
		StartHour:       10,
		EndHour:         17,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestMergeProfileHoursOnlyKeepsOtherFields(t *testing.T) {
	merged, err := mergeProfile(storedProfile(), profileUpdate{
		StartHour: intPtr(8),
		EndHour:   intPtr(14),
	})
	if err != nil {
		t.Fatalf("mergeProfile() error = %v", err)
	}

	if merged.StartHour != 8 || merged.EndHour != 14 {
		t.Errorf("hours = %d..%d, want 8..14", merged.StartHour, merged.EndHour)
	}
	if merged.Specialization != "Ayurveda" {
		t.Errorf("specialization overwritten: %q", merged.Specialization)
	}
	if merged.Bio != "15 years of panchakarma practice" {
		t.Errorf("bio overwritten: %q", merged.Bio)
	}
	if merged.ConsultationFee != 800 {
		t.Errorf("fee = %v, want 800", merged.ConsultationFee)
	}
}

func TestMergeProfileOverridesProvidedFields(t *testing.T) {
	merged, err := mergeProfile(storedProfile(), profileUpdate{
		Specialization:  strPtr("Physiotherapy"),
		Bio:             strPtr("Sports injury specialist"),
		ConsultationFee: floatPtr(1200),
	})
	if err != nil {
		t.Fatalf("mergeProfile() error = %v", err)
	}

	if merged.Specialization != "Physiotherapy" || merged.Bio != "Sports injury specialist" {
		t.Errorf("fields not applied: %q / %q", merged.Specialization, merged.Bio)
	}
	if merged.ConsultationFee != 1200 {
		t.Errorf("fee = %v, want 1200", merged.ConsultationFee)
	}
	if merged.StartHour != 10 || merged.EndHour != 17 {
		t.Errorf("hours changed without being provided: %d..%d", merged.StartHour, merged.EndHour)
	}
}

func TestMergeProfileRejectsNegativeFee(t *testing.T) {
	if _, err := mergeProfile(storedProfile(), profileUpdate{ConsultationFee: floatPtr(-1)}); err == nil {
		t.Fatal("negative fee accepted")
	}
}

func TestMergeProfileRejectsInvalidWindow(t *testing.T) {
	cases := []profileUpdate{
		{StartHour: intPtr(17)},                      // equals stored end hour
		{EndHour: intPtr(9)},                         // before stored start hour
		{StartHour: intPtr(-1)},                      // out of range
		{StartHour: intPtr(20), EndHour: intPtr(25)}, // out of range
	}
	for i, in := range cases {
		if _, err := mergeProfile(storedProfile(), in); err == nil {
			t.Errorf("case %d: invalid window accepted", i)
		}
	}
}

func TestMergeProfileEmptyUpdateIsIdentity(t *testing.T) {
	current := storedProfile()
	merged, err := mergeProfile(current, profileUpdate{})
	if err != nil {
		t.Fatalf("mergeProfile() error = %v", err)
	}
	if merged.Specialization != current.Specialization || merged.Bio != current.Bio ||
		merged.ConsultationFee != current.ConsultationFee ||
		merged.StartHour != current.StartHour || merged.EndHour != current.EndHour {
		t.Errorf("merged = %+v, want %+v", merged, current)
	}
}
