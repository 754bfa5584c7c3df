package fingerprint

import "testing"

func TestResampleSameRateIsNoop(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3, 0.4}
	out := Resample(in, 8000, 8000)
	if len(out) != len(in) {
		t.Fatalf("expected length %d, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d mutated: got %v want %v", i, out[i], in[i])
		}
	}
}

func TestResampleLengthMatchesRatio(t *testing.T) {
	in := make([]float64, 4410) // 0.2s at 22050Hz
	for i := range in {
		in[i] = 0.5
	}
	out := Resample(in, 22050, 8000)
	want := len(in) * 8000 / 22050
	if diff := abs(len(out) - want); diff > 1 {
		t.Errorf("resampled length %d too far from expected %d", len(out), want)
	}
}

func TestResampleEmptyInput(t *testing.T) {
	if out := Resample(nil, 44100, 8000); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
}

func TestDownmixStereoAverages(t *testing.T) {
	stereo := []float64{1.0, -1.0, 0.5, 0.5}
	mono := Downmix(stereo, 2)
	want := []float64{0.0, 0.5}
	for i := range want {
		if mono[i] != want[i] {
			t.Errorf("frame %d: got %v want %v", i, mono[i], want[i])
		}
	}
}

func TestDownmixMonoIsCopy(t *testing.T) {
	in := []float64{1, 2, 3}
	out := Downmix(in, 1)
	if len(out) != len(in) {
		t.Fatalf("length mismatch")
	}
	out[0] = 99
	if in[0] == 99 {
		t.Error("Downmix should not alias the input slice")
	}
}
