package blank

import (
	"maps"
	"math/rand/v2"
	"testing"

	"github.com/aalvaropc/blanks/internal/domain"
)

// firstRand always picks the lowest remaining index, so Generate blanks the
// first k candidates in order.
type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

const addSource = "def add(a, b):\n    return a_b"

func TestGenerate_ProtectedDefinitionLine(t *testing.T) {
	redacted, blanks := Generate(addSource, 1.0, WithRand(firstRand{}))

	if want := "def add(a, b):\n    ______ ___"; redacted != want {
		t.Fatalf("expected %q, got %q", want, redacted)
	}

	want := map[int]rune{19: 'r', 20: 'e', 21: 't', 22: 'u', 23: 'r', 24: 'n', 26: 'a', 28: 'b'}
	if len(blanks) != len(want) {
		t.Fatalf("expected %d blanks, got %d (%v)", len(want), len(blanks), blanks)
	}
	for pos, r := range want {
		if blanks[pos] != r {
			t.Fatalf("expected blank %d=%q, got %q", pos, r, blanks[pos])
		}
	}
	for pos := range blanks {
		if pos < 15 {
			t.Fatalf("position %d lies on the protected def line", pos)
		}
	}
}

func TestGenerate_UnfilledBlanksAllMismatch(t *testing.T) {
	redacted, blanks := Generate(addSource, 1.0, WithRand(firstRand{}))

	res := Verify(redacted, blanks)
	if res.Correct != 0 {
		t.Fatalf("expected 0 correct, got %d", res.Correct)
	}
	if res.Total != 8 || len(res.Mismatches) != 8 {
		t.Fatalf("expected 8 mismatches of 8, got %d of %d", len(res.Mismatches), res.Total)
	}
	for _, m := range res.Mismatches {
		if m.Actual != domain.Sentinel {
			t.Fatalf("expected sentinel at %d, got %q", m.Position, m.Actual)
		}
	}
}

func TestGenerate_ZeroRatioIsNoOp(t *testing.T) {
	content := "x = 1\ny = x + 2\n"
	redacted, blanks := Generate(content, 0)

	if redacted != content {
		t.Fatalf("expected content unchanged, got %q", redacted)
	}
	if len(blanks) != 0 {
		t.Fatalf("expected no blanks, got %v", blanks)
	}
	if res := Verify(redacted, blanks); res.Total != 0 {
		t.Fatalf("expected total 0, got %d", res.Total)
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	content := "# only a comment\nimport os\n\n   \n(){};"
	redacted, blanks := Generate(content, 1)

	if redacted != content || len(blanks) != 0 {
		t.Fatalf("expected no-op, got %q / %v", redacted, blanks)
	}
}

func TestGenerate_EmptyContent(t *testing.T) {
	redacted, blanks := Generate("", 0.7)
	if redacted != "" || len(blanks) != 0 {
		t.Fatalf("expected empty no-op, got %q / %v", redacted, blanks)
	}
}

func TestGenerate_CountIsFloorOfRatio(t *testing.T) {
	content := "total = 0\nfor x in xs:\n    total += x * 2\nprint(total)\n"
	runes := []rune(content)
	c := len(Candidates(runes, ProtectedPositions(runes)))

	for _, ratio := range []float64{0.1, 0.25, 0.5, 0.9, 1} {
		_, blanks := Generate(content, ratio, WithRand(rand.New(rand.NewPCG(1, 2))))
		want := int(float64(c) * ratio)
		if len(blanks) != want {
			t.Fatalf("ratio %v: expected %d blanks of %d candidates, got %d", ratio, want, c, len(blanks))
		}
	}
}

func TestGenerate_RatioClamped(t *testing.T) {
	content := "a = b"
	_, blanks := Generate(content, 7, WithRand(firstRand{}))
	if len(blanks) != 3 {
		t.Fatalf("expected ratio>1 to blank every candidate, got %d", len(blanks))
	}

	_, blanks = Generate(content, -1)
	if len(blanks) != 0 {
		t.Fatalf("expected ratio<0 to blank nothing, got %d", len(blanks))
	}
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	content := "n = len(nums)\nwhile lo < hi:\n    mid = lo + hi\n    lo = mid + 1\n"

	_, a := Generate(content, 0.5, WithRand(rand.New(rand.NewPCG(42, 7))))
	_, b := Generate(content, 0.5, WithRand(rand.New(rand.NewPCG(42, 7))))

	if !maps.Equal(a, b) {
		t.Fatalf("expected identical selections, got %v vs %v", a, b)
	}
}

func TestGenerate_SentinelExclusivity(t *testing.T) {
	content := "lo, hi = 0, len(a) - 1\nwhile lo <= hi:\n    mid = (lo + hi) // 2\n"
	redacted, blanks := Generate(content, 0.6, WithRand(rand.New(rand.NewPCG(3, 3))))

	orig := []rune(content)
	red := []rune(redacted)
	if len(orig) != len(red) {
		t.Fatalf("redaction must not change length: %d vs %d", len(orig), len(red))
	}
	for i := range orig {
		if want, ok := blanks[i]; ok {
			if red[i] != domain.Sentinel || want != orig[i] {
				t.Fatalf("position %d: expected sentinel over %q, got %q", i, orig[i], red[i])
			}
			continue
		}
		if red[i] != orig[i] {
			t.Fatalf("position %d changed from %q to %q without a blank", i, orig[i], red[i])
		}
	}
}

func TestSample_Distinct(t *testing.T) {
	pool := []int{3, 5, 8, 13, 21, 34}
	got := sample(pool, 6, rand.New(rand.NewPCG(9, 9)))

	seen := map[int]bool{}
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate %d in %v", v, got)
		}
		seen[v] = true
	}
	if pool[0] != 3 || pool[5] != 34 {
		t.Fatalf("sample must not reorder its input, got %v", pool)
	}
}
