package charges

import "strings"

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders a non-negative amount of whole rupees as English
// words using Indian grouping: crore (10^7), lakh (10^5), thousand, then
// hundreds/tens/ones. Callers append "Only". Zero and negative amounts
// render as "Zero".
func AmountInWords(n int64) string {
	if n <= 0 {
		return "Zero"
	}

	var parts []string

	// The crore group is unbounded (a thousand crore is a valid total),
	// so it recurses through the full converter: 2×10^10 reads
	// "Two Thousand Crore", not an out-of-range hundreds digit.
	if crore := n / 10_000_000; crore > 0 {
		parts = append(parts, AmountInWords(crore), "Crore")
		n %= 10_000_000
	}
	if lakh := n / 100_000; lakh > 0 {
		parts = append(parts, belowThousand(lakh), "Lakh")
		n %= 100_000
	}
	if thousand := n / 1_000; thousand > 0 {
		parts = append(parts, belowThousand(thousand), "Thousand")
		n %= 1_000
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}

	return strings.Join(parts, " ")
}

// belowThousand converts 1..999; the lakh and thousand groups never
// exceed 99, the crore group recurses before it gets here.
func belowThousand(n int64) string {
	var parts []string

	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}

	switch {
	case n >= 20:
		if n%10 != 0 {
			parts = append(parts, tens[n/10], ones[n%10])
		} else {
			parts = append(parts, tens[n/10])
		}
	case n > 0:
		parts = append(parts, ones[n])
	}

	return strings.Join(parts, " ")
}
