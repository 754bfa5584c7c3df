package model

import "testing"

func TestParamsDiffIdentical(t *testing.T) {
	p := DefaultParams()
	if diff := p.Diff(p); diff != "" {
		t.Errorf("expected no diff for identical params, got %q", diff)
	}
}

func TestParamsDiffReportsChangedFields(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()
	b.SampleRate = 44100
	b.HashFanout = 3

	diff := a.Diff(b)
	if diff == "" {
		t.Fatal("expected a non-empty diff")
	}
	if !containsAll(diff, "sample_rate", "hash_fanout") {
		t.Errorf("diff %q missing expected field names", diff)
	}
	if containsAll(diff, "fft_size") {
		t.Errorf("diff %q should not mention unchanged fields", diff)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !contains(s, sub) {
			return false
		}
	}
	return true
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
