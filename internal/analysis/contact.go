package analysis

import (
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(\+\d{1,3}[- ]?)?\(?\d{3}\)?[- ]?\d{3}[- ]?\d{4}`)
	stateZipPattern = regexp.MustCompile(`\b[A-Z]{2}\s+\d{5}\b`)
	stateNames      = regexp.MustCompile(`(?i)(Alabama|Alaska|Arizona|Arkansas|California|Colorado|Connecticut|Delaware|Florida|Georgia|Hawaii|Idaho|Illinois|Indiana|Iowa|Kansas|Kentucky|Louisiana|Maine|Maryland|Massachusetts|Michigan|Minnesota|Mississippi|Missouri|Montana|Nebraska|Nevada|New Hampshire|New Jersey|New Mexico|New York|North Carolina|North Dakota|Ohio|Oklahoma|Oregon|Pennsylvania|Rhode Island|South Carolina|South Dakota|Tennessee|Texas|Utah|Vermont|Virginia|Washington|West Virginia|Wisconsin|Wyoming)`)
)

// DetectContactInfo reports which contact details appear in the text.
func DetectContactInfo(text string) ContactInfo {
	lower := strings.ToLower(text)
	return ContactInfo{
		HasEmail:    emailPattern.MatchString(text),
		HasPhone:    phonePattern.MatchString(text),
		HasLinkedIn: strings.Contains(lower, "linkedin") || strings.Contains(lower, "linked.in"),
		HasLocation: stateZipPattern.MatchString(text) || stateNames.MatchString(text),
	}
}

// hasReachableContact reports whether the text contains an email or phone number.
func hasReachableContact(text string) bool {
	return emailPattern.MatchString(text) || phonePattern.MatchString(text)
}
