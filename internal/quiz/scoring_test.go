package quiz

import "testing"

func TestClassify_Bands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{10, "Heavy Noise Creator"},
		{17, "Heavy Noise Creator"},
		{18, "Leaning Noise Creator"},
		{25, "Leaning Noise Creator"},
		{26, "Leaning Signal Creator"},
		{33, "Leaning Signal Creator"},
		{34, "Strong Signal Creator"},
		{40, "Strong Signal Creator"},
	}
	for _, tt := range tests {
		if got := Classify(tt.score).Title; got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestClassify_OutOfRangeFallback(t *testing.T) {
	if got := Classify(0).Key; got != "heavy-noise" {
		t.Errorf("Classify(0) = %q, want lowest band", got)
	}
	if got := Classify(-5).Key; got != "heavy-noise" {
		t.Errorf("Classify(-5) = %q, want lowest band", got)
	}
	if got := Classify(41).Key; got != "strong-signal" {
		t.Errorf("Classify(41) = %q, want highest band", got)
	}
	if got := Classify(1000).Key; got != "strong-signal" {
		t.Errorf("Classify(1000) = %q, want highest band", got)
	}
}

func TestClassify_EveryScoreHasExactlyOneBand(t *testing.T) {
	for s := MinScore; s <= MaxScore; s++ {
		matches := 0
		for _, c := range Categories() {
			if s >= c.Min && s <= c.Max {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("score %d matched %d bands", s, matches)
		}
		c := Classify(s)
		if s < c.Min || s > c.Max {
			t.Fatalf("Classify(%d) returned band [%d,%d]", s, c.Min, c.Max)
		}
	}
}

func TestComputeScore(t *testing.T) {
	got := ComputeScore([]int{4, 4, 3, 4, 4, 3, 4, 4, 3, 4})
	if got != 37 {
		t.Fatalf("ComputeScore = %d, want 37", got)
	}
	if c := Classify(got); c.Title != "Strong Signal Creator" || c.Min != 34 || c.Max != 40 {
		t.Fatalf("Classify(37) = %+v", c)
	}

	minimum := ComputeScore([]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	if minimum != 10 {
		t.Fatalf("ComputeScore(all ones) = %d, want 10", minimum)
	}
	if c := Classify(minimum); c.Min != 10 || c.Max != 17 {
		t.Fatalf("Classify(10) band = [%d,%d], want [10,17]", c.Min, c.Max)
	}

	if ComputeScore(nil) != 0 {
		t.Fatal("empty answers should score 0")
	}
}

func TestDefaultBank(t *testing.T) {
	bank := DefaultBank()
	if len(bank) != 10 {
		t.Fatalf("bank has %d questions, want 10", len(bank))
	}
	total := 0
	for _, q := range bank {
		if len(q.Answers) != 4 {
			t.Fatalf("question %d has %d answers", q.ID, len(q.Answers))
		}
		maxVal := 0
		for _, a := range q.Answers {
			if a.Value < 1 || a.Value > 4 {
				t.Fatalf("question %d answer value %d out of 1..4", q.ID, a.Value)
			}
			if a.Value > maxVal {
				maxVal = a.Value
			}
		}
		total += maxVal
	}
	if total != MaxScore {
		t.Fatalf("best possible score = %d, want %d", total, MaxScore)
	}

	bank[0].Prompt = "mutated"
	if DefaultBank()[0].Prompt == "mutated" {
		t.Fatal("DefaultBank must return a copy")
	}
}
