package logic

import (
	"testing"
	"time"
)

func TestCountTransitions(t *testing.T) {
	tests := []struct {
		name    string
		samples []int
		want    int
	}{
		{"mixed", []int{1, 1, 0, 0, 1, 1, 0, 1}, 4},
		{"all ones", []int{1, 1, 1, 1, 1, 1}, 0},
		{"all zeros", []int{0, 0, 0, 0}, 0},
		{"alternating", []int{1, 0, 1, 0, 1}, 4},
		{"single element", []int{1}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountTransitions(tt.samples); got != tt.want {
				t.Errorf("CountTransitions(%v) = %d, want %d", tt.samples, got, tt.want)
			}
		})
	}
}

func TestFreshWindowHasNoTransitions(t *testing.T) {
	w, err := NewWindow(50)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if got := CountTransitions(w.Snapshot()); got != 0 {
		t.Errorf("fresh window transitions: got %d, want 0", got)
	}
	if IsPresent(0) {
		t.Error("IsPresent(0) = true, want false")
	}
}

func TestIsPresentBounds(t *testing.T) {
	tests := []struct {
		transitions int
		want        bool
	}{
		{0, false},
		{2, false},
		{3, true},
		{7, true},
		{10, true},
		{11, false},
		{100, false},
	}
	for _, tt := range tests {
		if got := IsPresent(tt.transitions); got != tt.want {
			t.Errorf("IsPresent(%d) = %v, want %v", tt.transitions, got, tt.want)
		}
	}
}

func TestEvaluationDueStrictlyGreater(t *testing.T) {
	period := 10 * time.Second
	last := time.UnixMilli(1000)

	if evaluationDue(time.UnixMilli(11000), last, period) {
		t.Error("elapsed == period must not be due")
	}
	if !evaluationDue(time.UnixMilli(11001), last, period) {
		t.Error("elapsed > period must be due")
	}
	if evaluationDue(time.UnixMilli(5000), last, period) {
		t.Error("elapsed < period must not be due")
	}
}

func TestMapCO2(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{0, 400},
		{4095, 2000},
		{2048, 1200}, // 400 + 2048*1600/4095, integer truncation
		{1, 400},     // 1600/4095 truncates to 0
		{5000, 2353}, // out of domain extrapolates, no clamping
	}
	for _, tt := range tests {
		if got := MapCO2(tt.raw); got != tt.want {
			t.Errorf("MapCO2(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestProcessNoVerdictUntilPeriodElapsed(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d, err := NewDetector(100, 10*time.Second, start)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	// Ticks up to and including start+period produce no verdict.
	for i := 1; i <= 100; i++ {
		now := start.Add(time.Duration(i) * 100 * time.Millisecond)
		if v := d.Process(1, now); v != nil {
			t.Fatalf("tick %d: unexpected verdict %+v", i, v)
		}
	}

	// The first tick past the period evaluates.
	now := start.Add(10*time.Second + 100*time.Millisecond)
	v := d.Process(1, now)
	if v == nil {
		t.Fatal("expected a verdict after the period elapsed")
	}
	if !v.Timestamp.Equal(now) {
		t.Errorf("verdict timestamp: got %v, want %v", v.Timestamp, now)
	}
	if v.Present {
		t.Error("all-ones window must not report presence")
	}
	if v.Transitions != 0 {
		t.Errorf("transitions: got %d, want 0", v.Transitions)
	}
}

func TestProcessGateResetsAfterVerdict(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d, err := NewDetector(10, time.Second, start)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	first := start.Add(1500 * time.Millisecond)
	if v := d.Process(1, first); v == nil {
		t.Fatal("expected first verdict")
	}

	// Exactly one period after the first verdict: not yet due.
	if v := d.Process(1, first.Add(time.Second)); v != nil {
		t.Errorf("elapsed == period after reset: unexpected verdict %+v", v)
	}
	if v := d.Process(1, first.Add(time.Second+time.Millisecond)); v == nil {
		t.Error("expected second verdict strictly past the period")
	}
}

func TestProcessIncludesSampleFromSameTick(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d, err := NewDetector(4, time.Second, start)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	d.Process(1, start.Add(100*time.Millisecond))
	d.Process(1, start.Add(200*time.Millisecond))
	d.Process(1, start.Add(300*time.Millisecond))

	// Window is [1,1,1,1]; inserting 0 on the evaluating tick must be
	// visible to that same evaluation: [1,1,1,0] has one transition.
	v := d.Process(0, start.Add(2*time.Second))
	if v == nil {
		t.Fatal("expected verdict")
	}
	if v.Transitions != 1 {
		t.Errorf("transitions: got %d, want 1 (same-tick sample not reflected)", v.Transitions)
	}
}

// TestBreathingScenario traces the window state for a 100-sample window fed
// 8 alternating readings followed by 92 steady ones: the stored array ends
// up [1,0,1,0,1,0,1,0,1,...,1], which holds 8 adjacent flips — inside the
// presence band.
func TestBreathingScenario(t *testing.T) {
	w, err := NewWindow(100)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	for i := 0; i < 8; i++ {
		if i%2 == 0 {
			w.Insert(1)
		} else {
			w.Insert(0)
		}
	}
	for i := 0; i < 92; i++ {
		w.Insert(1)
	}

	transitions := CountTransitions(w.Snapshot())
	if transitions != 8 {
		t.Errorf("transitions: got %d, want 8", transitions)
	}
	if !IsPresent(transitions) {
		t.Errorf("IsPresent(%d) = false, want true", transitions)
	}
}

func TestStatsCountVerdicts(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d, err := NewDetector(8, time.Second, start)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	// First verdict: steady ones, no human.
	now := start.Add(1100 * time.Millisecond)
	if v := d.Process(1, now); v == nil || v.Present {
		t.Fatalf("expected NO HUMAN verdict, got %+v", v)
	}

	// Stir the window so the next evaluation sees flips.
	for i, s := range []int{0, 1, 0, 1} {
		d.Process(s, now.Add(time.Duration(i+1)*100*time.Millisecond))
	}
	v := d.Process(1, now.Add(1100*time.Millisecond))
	if v == nil || !v.Present {
		t.Fatalf("expected HUMAN verdict, got %+v", v)
	}

	stats := d.Stats()
	if stats.Evaluations != 2 {
		t.Errorf("evaluations: got %d, want 2", stats.Evaluations)
	}
	if stats.Human != 1 || stats.NoHuman != 1 {
		t.Errorf("counts: got human=%d noHuman=%d, want 1/1", stats.Human, stats.NoHuman)
	}
}
