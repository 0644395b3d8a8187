package submission

import (
	"net/mail"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
)

// ValidationError carries one message per invalid field.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid submission: " + strings.Join(keys, ", ")
}

var (
	postalCodeRe = regexp.MustCompile(`^[1-9][0-9]{3}\s?[A-Za-z]{2}$`)
	phoneDigits  = regexp.MustCompile(`^\+?[0-9]{10,13}$`)
)

// ValidateContact checks the required contact fields. It returns nil when
// everything is fine.
func ValidateContact(c domain.Contact) *ValidationError {
	fields := map[string]string{}

	if strings.TrimSpace(c.Name) == "" {
		fields["name"] = "Vul uw naam in"
	}
	if !validEmail(c.Email) {
		fields["email"] = "Vul een geldig e-mailadres in"
	}
	if !validPhone(c.Phone) {
		fields["phone"] = "Vul een geldig telefoonnummer in"
	}
	if strings.TrimSpace(c.Address) == "" {
		fields["address"] = "Vul uw adres in"
	}
	if !postalCodeRe.MatchString(strings.TrimSpace(c.PostalCode)) {
		fields["postalCode"] = "Vul een geldige postcode in (1234 AB)"
	}
	if strings.TrimSpace(c.City) == "" {
		fields["city"] = "Vul uw woonplaats in"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

func validPhone(s string) bool {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	return phoneDigits.MatchString(r.Replace(strings.TrimSpace(s)))
}

// AttachmentTypes maps the accepted attachment extensions (photos and PDF)
// to their content type.
var AttachmentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
	".pdf":  "application/pdf",
}

// AttachmentType returns the content type for an accepted file name.
func AttachmentType(name string) (string, bool) {
	ct, ok := AttachmentTypes[strings.ToLower(filepath.Ext(name))]
	return ct, ok
}

// Validate checks the contact and, when present, the attachment type.
func (r Request) Validate() *ValidationError {
	verr := ValidateContact(r.Config.Contact)
	if r.Attachment == nil {
		return verr
	}
	if _, ok := AttachmentType(r.Attachment.Name); !ok {
		if verr == nil {
			verr = &ValidationError{Fields: map[string]string{}}
		}
		verr.Fields["file"] = "Alleen foto's (jpg, png, webp, heic) of pdf"
	}
	return verr
}
