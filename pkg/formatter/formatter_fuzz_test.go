package formatter_test

import (
	"testing"

	"github.com/thomasrohde/badbasic/pkg/formatter"
	"github.com/thomasrohde/badbasic/pkg/parser"
)

// FuzzFormatRoundTrip checks that formatting any parseable program yields
// source that parses back to the same listing.
func FuzzFormatRoundTrip(f *testing.F) {
	seeds := []string{
		"10 LET X = 5\n20 PRINT(X)",
		"10 LET X = 10 - 2 - 3",
		"10 FOO(BAR(1), X + 1)",
		"10 5\n\n2 Y",
		"10 PRINT ( 1 , 2 )",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		prog, diags := parser.Parse(input, "fuzz.bas")
		if len(diags) > 0 {
			return
		}
		once := formatter.Format(prog)
		again, diags := parser.Parse(once, "fuzz.bas")
		if len(diags) > 0 {
			t.Fatalf("formatted output does not parse: %q from %q: %v", once, input, diags)
		}
		if got := formatter.Format(again); got != once {
			t.Fatalf("format not stable: %q then %q", once, got)
		}
	})
}
