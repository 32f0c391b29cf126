package dates

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		recognized bool
	}{
		{
			name:       "slash with 4-digit year",
			input:      "03/12/2014",
			want:       "2014-03-12",
			recognized: true,
		},
		{
			name:       "slash with 2-digit year",
			input:      "03/12/14",
			want:       "2014-03-12",
			recognized: true,
		},
		{
			name:       "slash single digit month and day",
			input:      "3/5/14",
			want:       "2014-03-05",
			recognized: true,
		},
		{
			name:       "dotted is day-first",
			input:      "12.03.2014",
			want:       "2014-03-12",
			recognized: true,
		},
		{
			name:       "dotted with 2-digit year",
			input:      "12.03.14",
			want:       "2014-03-12",
			recognized: true,
		},
		{
			name:       "iso timestamp truncates",
			input:      "2016-02-28T00:00:00Z",
			want:       "2016-02-28",
			recognized: true,
		},
		{
			name:       "already canonical is unchanged",
			input:      "2014-06-14",
			want:       "2014-06-14",
			recognized: true,
		},
		{
			name:       "bare year pins to january 1st",
			input:      "2016",
			want:       "2016-01-01",
			recognized: true,
		},
		{
			name:       "unrecognized passes through",
			input:      "June 14th 2014",
			want:       "June 14th 2014",
			recognized: false,
		},
		{
			name:       "empty passes through",
			input:      "",
			want:       "",
			recognized: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Canonicalize(tt.input)
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if ok != tt.recognized {
				t.Errorf("Canonicalize(%q) recognized = %v, want %v", tt.input, ok, tt.recognized)
			}
		})
	}
}

// Dotted canonicalization is day-first while slash canonicalization is
// month-first, so the same digits produce different dates when the day
// exceeds 12.
func TestCanonicalizeDayMonthOrderIsFormatDependent(t *testing.T) {
	slash, _ := Canonicalize("5/13/2014")
	dotted, _ := Canonicalize("5.13.2014")

	if slash != "2014-05-13" {
		t.Errorf("slash form = %q, want 2014-05-13", slash)
	}
	if dotted != "2014-13-05" {
		t.Errorf("dotted form = %q, want 2014-13-05", dotted)
	}
	if slash == dotted {
		t.Error("expected slash and dotted forms to disagree")
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	first, _ := Canonicalize("03/12/14")
	second, ok := Canonicalize(first)
	if !ok || second != first {
		t.Errorf("Canonicalize(%q) = %q, want unchanged", first, second)
	}
}

func TestCanonicalizeTwoDigitYearsAreAlwaysThisCentury(t *testing.T) {
	// No 19xx inference: 99 expands to 2099, not 1999.
	got, _ := Canonicalize("01/15/99")
	if got != "2099-01-15" {
		t.Errorf("Canonicalize(01/15/99) = %q, want 2099-01-15", got)
	}
}

func TestExtractFromText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "iso date round trips",
			input: "Dress Code @ The Che Cafe 2014-06-14 [full set]",
			want:  "2014-06-14",
			found: true,
		},
		{
			name:  "dotted 2-digit date in title is month-first",
			input: "Thou @ The Che Cafe on 01.12.12",
			want:  "2012-01-12",
			found: true,
		},
		{
			name:  "slash date with 4-digit year",
			input: "Ceremony on 3/15/2011 at 924 Gilman",
			want:  "2011-03-15",
			found: true,
		},
		{
			name:  "slash date with 2-digit year",
			input: "Punch live 6/3/11",
			want:  "2011-06-03",
			found: true,
		},
		{
			name:  "bare year",
			input: "Tragedy European tour 2009",
			want:  "2009-01-01",
			found: true,
		},
		{
			name:  "iso wins over bare year",
			input: "Best of 2013: Loma Prieta 2013-10-05",
			want:  "2013-10-05",
			found: true,
		},
		{
			name:  "implausible month falls through to year",
			input: "set list 13/45/2012",
			want:  "2012-01-01",
			found: true,
		},
		{
			name:  "no date at all",
			input: "Untitled live recording",
			found: false,
		},
		{
			name:  "empty text",
			input: "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractFromText(tt.input)
			if ok != tt.found {
				t.Fatalf("ExtractFromText(%q) found = %v, want %v", tt.input, ok, tt.found)
			}
			if got != tt.want {
				t.Errorf("ExtractFromText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       string
		found      bool
	}{
		{
			name:       "dotted prefix",
			identifier: "01.20.12_Thou",
			want:       "2012-01-20",
			found:      true,
		},
		{
			name:       "single digit month and day",
			identifier: "1.5.12_Band",
			want:       "2012-01-05",
			found:      true,
		},
		{
			name:       "iso prefix",
			identifier: "2012-01-20-thou",
			want:       "2012-01-20",
			found:      true,
		},
		{
			name:       "no date prefix",
			identifier: "thou-live-che-cafe",
			found:      false,
		},
		{
			name:       "date not at start",
			identifier: "thou_01.20.12",
			found:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromIdentifier(tt.identifier)
			if ok != tt.found {
				t.Fatalf("FromIdentifier(%q) found = %v, want %v", tt.identifier, ok, tt.found)
			}
			if got != tt.want {
				t.Errorf("FromIdentifier(%q) = %q, want %q", tt.identifier, got, tt.want)
			}
		})
	}
}
