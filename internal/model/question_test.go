package model

import "testing"

func TestCanonicalBool(t *testing.T) {
	cases := []struct {
		in   string
		want Answer
		ok   bool
	}{
		{"true", AnswerTrue, true},
		{"false", AnswerFalse, true},
		{"  TRUE ", AnswerTrue, true},
		{"صح", AnswerTrue, true},
		{"خطأ", AnswerFalse, true},
		{"maybe", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := CanonicalBool(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("CanonicalBool(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

// Grading must not depend on which textual form the correct answer was
// stored in: canonical or legacy display token, the matching choice
// always grades correct.
func TestGradeTrueFalseSymmetric(t *testing.T) {
	for _, stored := range []string{"true", "صح"} {
		q := Question{Kind: TrueFalse, CorrectAnswer: stored}
		if !Grade(q, "true") {
			t.Errorf("stored %q: submitted true should grade correct", stored)
		}
		if !Grade(q, "صح") {
			t.Errorf("stored %q: submitted صح should grade correct", stored)
		}
		if Grade(q, "false") || Grade(q, "خطأ") {
			t.Errorf("stored %q: false answers graded correct", stored)
		}
	}
	q := Question{Kind: TrueFalse, CorrectAnswer: "false"}
	if !Grade(q, "خطأ") {
		t.Error("stored false: submitted خطأ should grade correct")
	}
}

func TestGradeMultipleChoice(t *testing.T) {
	q := Question{Kind: MultipleChoice, CorrectAnswer: "أ"}
	if !Grade(q, "أ") || !Grade(q, " أ ") {
		t.Error("matching key should grade correct regardless of surrounding space")
	}
	if Grade(q, "ب") {
		t.Error("mismatched key graded correct")
	}

	latin := Question{Kind: MultipleChoice, CorrectAnswer: "a"}
	if !Grade(latin, "A") {
		t.Error("key comparison should be case-insensitive")
	}
}

func TestNewTrueFalseCanonicalizesAtWrite(t *testing.T) {
	q, err := NewTrueFalse("السماء زرقاء", "", "صح")
	if err != nil {
		t.Fatalf("NewTrueFalse: %v", err)
	}
	if q.CorrectAnswer != string(AnswerTrue) {
		t.Errorf("correct answer stored as %q, want canonical %q", q.CorrectAnswer, AnswerTrue)
	}

	if _, err := NewTrueFalse("", "", "true"); err == nil {
		t.Error("question without text or image should be rejected")
	}
	if _, err := NewTrueFalse("سؤال", "", "ربما"); err == nil {
		t.Error("unrecognized correct token should be rejected")
	}
	if _, err := NewTrueFalse("", "photo.jpg", "false"); err != nil {
		t.Errorf("image-only prompt should be accepted: %v", err)
	}
}

func TestNewMultipleChoiceValidation(t *testing.T) {
	opts := []string{"أ) الأول", "ب) الثاني", "", "  "}
	q, err := NewMultipleChoice("اختر", "", opts, " أ ")
	if err != nil {
		t.Fatalf("NewMultipleChoice: %v", err)
	}
	if len(q.Options) != 2 {
		t.Errorf("blank option lines should be dropped, got %d options", len(q.Options))
	}
	if q.CorrectAnswer != "أ" {
		t.Errorf("correct key stored as %q, want trimmed %q", q.CorrectAnswer, "أ")
	}

	if _, err := NewMultipleChoice("اختر", "", nil, "أ"); err == nil {
		t.Error("zero options should be rejected")
	}
	five := []string{"أ) 1", "ب) 2", "ج) 3", "د) 4", "ه) 5"}
	if _, err := NewMultipleChoice("اختر", "", five, "أ"); err == nil {
		t.Error("five options should be rejected")
	}
	if _, err := NewMultipleChoice("اختر", "", opts[:2], "   "); err == nil {
		t.Error("empty correct key should be rejected")
	}
}

func TestOptionKey(t *testing.T) {
	cases := []struct{ in, want string }{
		{"أ) الخيار الأول", "أ"},
		{"b) second", "b"},
		{"  ج ) ثالث", "ج"},
		{"خيار بدون قوس", "خ"},
		{"", ""},
	}
	for _, c := range cases {
		if got := OptionKey(c.in); got != c.want {
			t.Errorf("OptionKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(0, 0); got != 0 {
		t.Errorf("Percentage(0, 0) = %v, want 0", got)
	}
	if got := Percentage(3, 4); got != 75 {
		t.Errorf("Percentage(3, 4) = %v, want 75", got)
	}
	if got := Percentage(5, 5); got != 100 {
		t.Errorf("Percentage(5, 5) = %v, want 100", got)
	}
}
