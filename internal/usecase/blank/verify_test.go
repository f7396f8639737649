package blank

import (
	"testing"

	"github.com/aalvaropc/blanks/internal/domain"
)

func TestVerify_OriginalTextIsAllCorrect(t *testing.T) {
	content := "for i in range(n):\n    total += i\n"
	_, blanks := Generate(content, 0.8, WithRand(firstRand{}))

	res := Verify(content, blanks)
	if res.Correct != res.Total {
		t.Fatalf("expected %d correct, got %d", res.Total, res.Correct)
	}
	if len(res.Mismatches) != 0 {
		t.Fatalf("expected no mismatches, got %v", res.Mismatches)
	}
}

func TestVerify_MixedAnswers(t *testing.T) {
	blanks := domain.BlankMap{0: 'a', 2: 'b', 4: 'c'}

	res := Verify("a_x_c", blanks)

	if res.Total != 3 || res.Correct != 2 {
		t.Fatalf("expected 2/3, got %d/%d", res.Correct, res.Total)
	}
	if len(res.Mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %v", res.Mismatches)
	}
	m := res.Mismatches[0]
	if m.Position != 2 || m.Expected != 'b' || m.Actual != 'x' {
		t.Fatalf("unexpected mismatch %+v", m)
	}
}

func TestVerify_ShortenedFileSkipsOutOfRange(t *testing.T) {
	blanks := domain.BlankMap{1: 'a', 5: 'b', 9: 'c'}

	res := Verify("xa", blanks)

	if res.Total != 3 {
		t.Fatalf("expected total 3, got %d", res.Total)
	}
	if res.Correct != 1 || len(res.Mismatches) != 0 {
		t.Fatalf("expected 1 correct and no mismatches, got %d / %v", res.Correct, res.Mismatches)
	}
	if res.Correct+len(res.Mismatches) >= res.Total {
		t.Fatalf("expected skipped blanks to be excluded")
	}
	if res.Skipped() != 2 {
		t.Fatalf("expected 2 skipped, got %d", res.Skipped())
	}
}

func TestVerify_EmptyEdited(t *testing.T) {
	res := Verify("", domain.BlankMap{0: 'a'})
	if res.Total != 1 || res.Correct != 0 || len(res.Mismatches) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestVerify_MismatchesSortedByPosition(t *testing.T) {
	blanks := domain.BlankMap{7: 'z', 1: 'y', 4: 'x'}

	res := Verify("________", blanks)

	if len(res.Mismatches) != 3 {
		t.Fatalf("expected 3 mismatches, got %v", res.Mismatches)
	}
	for i, want := range []int{1, 4, 7} {
		if res.Mismatches[i].Position != want {
			t.Fatalf("expected sorted positions, got %v", res.Mismatches)
		}
	}
}

func TestVerify_RunePositions(t *testing.T) {
	blanks := domain.BlankMap{2: 'é'}
	if res := Verify("caé", blanks); res.Correct != 1 {
		t.Fatalf("expected rune-indexed comparison, got %+v", res)
	}
}

func TestVerify_DoesNotMutateBlanks(t *testing.T) {
	blanks := domain.BlankMap{0: 'a', 1: 'b'}
	_ = Verify("zz", blanks)
	if len(blanks) != 2 || blanks[0] != 'a' || blanks[1] != 'b' {
		t.Fatalf("blanks were modified: %v", blanks)
	}
}

func TestRemaining(t *testing.T) {
	blanks := domain.BlankMap{0: 'a', 1: 'b', 2: 'c', 10: 'd'}
	if got := Remaining("a__", blanks); got != 2 {
		t.Fatalf("expected 2 remaining, got %d", got)
	}
}
