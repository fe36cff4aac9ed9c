package textx

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	policyNumberPattern = regexp.MustCompile(`\bP\d+\b`)
	claimNumberPattern  = regexp.MustCompile(`\b\d+\b`)
)

// ExtractPolicyNumber returns the first whole-word policy number ("P" followed
// by digits, any case) found in text, upper-cased.
func ExtractPolicyNumber(text string) (string, bool) {
	match := policyNumberPattern.FindString(strings.ToUpper(text))
	if match == "" {
		return "", false
	}
	return match, true
}

// ExtractClaimNumber returns the first whole-word run of digits in text.
func ExtractClaimNumber(text string) (int, bool) {
	match := claimNumberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		// digit runs longer than an int are not claim numbers
		return 0, false
	}
	return n, true
}
