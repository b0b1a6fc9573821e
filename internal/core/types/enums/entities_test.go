package enums

import "testing"

func TestParseEntityKind(t *testing.T) {
	tests := []struct {
		input string
		want  EntityKind
	}{
		{"MOB", EntityKindMob},
		{"mob", EntityKindMob},
		{"Item", EntityKindItem},
		{"structure", EntityKindStructure},
		{"ghost", EntityKindUnknown},
		{"", EntityKindUnknown},
	}

	for _, tt := range tests {
		if got := ParseEntityKind(tt.input); got != tt.want {
			t.Errorf("ParseEntityKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestEntityKind_String(t *testing.T) {
	if got := EntityKindMob.String(); got != "MOB" {
		t.Errorf("EntityKindMob.String() = %q, want MOB", got)
	}
	if got := EntityKind(200).String(); got != "UNKNOWN" {
		t.Errorf("EntityKind(200).String() = %q, want UNKNOWN", got)
	}
}
