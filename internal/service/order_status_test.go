package service

import "testing"

func TestValidateStatusTransitionAllowed(t *testing.T) {
	cases := []struct{ from, to string }{
		{"pending", "preparing"},
		{"pending", "cancelled"},
		{"preparing", "pending"},
		{"preparing", "ready"},
		{"preparing", "cancelled"},
		{"ready", "preparing"},
		{"ready", "completed"},
	}
	for _, tc := range cases {
		if err := ValidateStatusTransition(tc.from, tc.to); err != nil {
			t.Fatalf("expected %s -> %s allowed, got %v", tc.from, tc.to, err)
		}
	}
}

func TestValidateStatusTransitionRejected(t *testing.T) {
	cases := []struct{ from, to string }{
		{"pending", "ready"},
		{"pending", "completed"},
		{"ready", "cancelled"},
		{"completed", "pending"},
		{"cancelled", "preparing"},
		{"pending", "unknown"},
	}
	for _, tc := range cases {
		if err := ValidateStatusTransition(tc.from, tc.to); err != ErrOrderStatusInvalid {
			t.Fatalf("expected %s -> %s rejected, got %v", tc.from, tc.to, err)
		}
	}
}

func TestValidateStatusTransitionSameStatus(t *testing.T) {
	for _, status := range []string{"pending", "preparing", "ready", "completed", "cancelled"} {
		if err := ValidateStatusTransition(status, status); err != nil {
			t.Fatalf("expected keeping %s allowed, got %v", status, err)
		}
	}
}

func TestValidateStatusTransitionNormalizesInput(t *testing.T) {
	if err := ValidateStatusTransition("pending", "  Preparing "); err != nil {
		t.Fatalf("expected normalized input accepted, got %v", err)
	}
}
