package models

import "testing"

func TestInvitationStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   InvitationStatus
		to     InvitationStatus
		want   bool
	}{
		{name: "pending to accepted", from: InvitationPending, to: InvitationAccepted, want: true},
		{name: "pending to rejected", from: InvitationPending, to: InvitationRejected, want: true},
		{name: "pending to pending", from: InvitationPending, to: InvitationPending, want: false},
		{name: "accepted to rejected", from: InvitationAccepted, to: InvitationRejected, want: false},
		{name: "accepted to accepted", from: InvitationAccepted, to: InvitationAccepted, want: false},
		{name: "rejected to accepted", from: InvitationRejected, to: InvitationAccepted, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestInvitationStatusIsTerminal(t *testing.T) {
	if InvitationPending.IsTerminal() {
		t.Error("PENDING should not be terminal")
	}
	if !InvitationAccepted.IsTerminal() {
		t.Error("ACCEPTED should be terminal")
	}
	if !InvitationRejected.IsTerminal() {
		t.Error("REJECTED should be terminal")
	}
}
