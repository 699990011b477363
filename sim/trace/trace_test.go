package trace

import (
	"testing"
)

func TestSimulationTrace_RecordAdmission_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an admission record is recorded
	st.RecordAdmission(AdmissionRecord{
		ArrivalIndex: 0,
		Clock:        12.5,
		InSystem:     3,
		Capacity:     14,
		Admitted:     true,
		Reason:       "within capacity",
	})

	// THEN the trace contains one admission record with correct data
	if len(st.Admissions) != 1 {
		t.Fatalf("expected 1 admission, got %d", len(st.Admissions))
	}
	if st.Admissions[0].Clock != 12.5 {
		t.Errorf("expected clock 12.5, got %f", st.Admissions[0].Clock)
	}
	if !st.Admissions[0].Admitted {
		t.Error("expected admitted=true")
	}
}

func TestSimulationTrace_RecordAssignment_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an assignment record is recorded
	st.RecordAssignment(AssignmentRecord{
		ArrivalIndex: 4,
		Server:       2,
		Clock:        60,
		ServiceStart: 120,
		ServiceEnd:   900,
		WaitMinutes:  1,
	})

	// THEN the trace contains one assignment record with correct data
	if len(st.Assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(st.Assignments))
	}
	if st.Assignments[0].Server != 2 {
		t.Errorf("expected server 2, got %d", st.Assignments[0].Server)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordAdmission(AdmissionRecord{ArrivalIndex: 0, Clock: 100, Admitted: true})
	st.RecordAdmission(AdmissionRecord{ArrivalIndex: 1, Clock: 200, Admitted: false, Reason: "capacity full"})
	st.RecordAssignment(AssignmentRecord{ArrivalIndex: 0, Server: 0, Clock: 100})

	// THEN order is preserved
	if len(st.Admissions) != 2 {
		t.Fatalf("expected 2 admissions, got %d", len(st.Admissions))
	}
	if st.Admissions[0].ArrivalIndex != 0 || st.Admissions[1].ArrivalIndex != 1 {
		t.Error("admission order not preserved")
	}
	if len(st.Assignments) != 1 || st.Assignments[0].ArrivalIndex != 0 {
		t.Error("assignment record mismatch")
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	if (TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none level must not be enabled")
	}
	if (TraceConfig{}).Enabled() {
		t.Error("empty level must not be enabled")
	}
	if !(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("decisions level must be enabled")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"verbose", false},
		{"DECISIONS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}
