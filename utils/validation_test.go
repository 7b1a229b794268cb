package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{"+48123456789", "+1 (555) 123-4567", "48123456789"}
	for _, phone := range valid {
		if !ValidatePhone(phone) {
			t.Errorf("expected %q to be valid", phone)
		}
	}
	invalid := []string{"", "abc", "+0123", "1"}
	for _, phone := range invalid {
		if ValidatePhone(phone) {
			t.Errorf("expected %q to be invalid", phone)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"anna@example.com", " anna.k@salon.pl ", "a+b@x.co"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	invalid := []string{"", "anna", "anna@", "@example.com", "anna@example"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":            "photo.jpg",
		"mój piesek (1).jpg":   "m_j_piesek__1_.jpg",
		"../../../etc/passwd":  ".._.._.._etc_passwd",
		"reksio po kąpieli.png": "reksio_po_k_pieli.png",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
