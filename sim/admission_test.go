package sim

import (
	"testing"
)

func TestCombinedCapacity_Admit(t *testing.T) {
	tests := []struct {
		name       string
		capacity   CombinedCapacity
		inSystem   int
		wantAdmit  bool
		wantReason string
	}{
		{"empty system", CombinedCapacity{Servers: 1, MaxQueue: 0}, 0, true, ""},
		{"one below limit", CombinedCapacity{Servers: 2, MaxQueue: 3}, 4, true, ""},
		{"at limit", CombinedCapacity{Servers: 2, MaxQueue: 3}, 5, false, RejectCapacityFull},
		{"queue only counts with servers", CombinedCapacity{Servers: 0, MaxQueue: 12}, 0, false, RejectNoServers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admitted, reason := tt.capacity.Admit(tt.inSystem)
			if admitted != tt.wantAdmit || reason != tt.wantReason {
				t.Errorf("Admit(%d) = (%v, %q), want (%v, %q)", tt.inSystem, admitted, reason, tt.wantAdmit, tt.wantReason)
			}
		})
	}
}

func TestCombinedCapacity_Limit(t *testing.T) {
	if got := (CombinedCapacity{Servers: 4, MaxQueue: 12}).Limit(); got != 16 {
		t.Errorf("Limit() = %d, want 16", got)
	}
}
