// Package address converts between the structured address used by forms and
// the single free-text column stored for each client.
//
// The stored layout is the one produced by Format:
//
//	"Rua, Número, Complemento, Bairro, Cidade - UF, CEP: XXXXX-XXX"
//
// Parse is a best-effort inverse of that layout. It has no escaping, so a
// field that itself contains a comma, or a neighborhood ending in " - XX",
// is split incorrectly.
package address

import (
	"regexp"
	"strings"
)

// NotInformed is what FormatForDisplay returns for an empty address.
const NotInformed = "Não informado"

// Data is an address broken into its parts. An empty field is absent.
type Data struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

var (
	cepCapture     = regexp.MustCompile(`(?i)CEP:?\s*(\d{5}-?\d{3})`)
	cepSegment     = regexp.MustCompile(`(?i),?\s*CEP:?\s*\d{5}-?\d{3}`)
	cityState      = regexp.MustCompile(`([^,]+)\s*-\s*([A-Z]{2})\s*$`)
	cityStateTail  = regexp.MustCompile(`,?\s*[^,]+\s*-\s*[A-Z]{2}\s*$`)
	cityStateLoose = regexp.MustCompile(`(?i),?\s*[^,]+\s*-\s*[A-Z]{2}\s*$`)
	trailingComma  = regexp.MustCompile(`,\s*$`)
	leadingDigits  = regexp.MustCompile(`^\d+`)
)

// Format joins the parts of d into the stored single-line form. Parts that
// are empty are left out entirely.
func Format(d Data) string {
	parts := make([]string, 0, 5)

	if d.Street != "" {
		street := d.Street
		if d.Number != "" {
			street += ", " + d.Number
		}
		parts = append(parts, street)
	}
	if d.Complement != "" {
		parts = append(parts, d.Complement)
	}
	if d.Neighborhood != "" {
		parts = append(parts, d.Neighborhood)
	}
	switch {
	case d.City != "" && d.State != "":
		parts = append(parts, d.City+" - "+d.State)
	case d.City != "":
		parts = append(parts, d.City)
	}
	if d.CEP != "" {
		parts = append(parts, "CEP: "+d.CEP)
	}

	return strings.Join(parts, ", ")
}

// Parse recovers the parts of an address previously produced by Format.
// Fields it cannot identify are left empty.
func Parse(s string) Data {
	var d Data
	if s == "" {
		return d
	}

	if m := cepCapture.FindStringSubmatch(s); m != nil {
		if cep, ok := NormalizeCEP(m[1]); ok {
			d.CEP = cep
		}
	}
	rest := strings.TrimSpace(cepSegment.ReplaceAllString(s, ""))

	if m := cityState.FindStringSubmatch(rest); m != nil {
		d.City = strings.TrimSpace(m[1])
		d.State = strings.TrimSpace(m[2])
		rest = strings.TrimSpace(cityStateTail.ReplaceAllString(rest, ""))
	}

	parts := splitSegments(rest)
	if len(parts) == 0 {
		return d
	}

	d.Street = parts[0]
	if len(parts) > 1 && leadingDigits.MatchString(parts[1]) {
		d.Number = parts[1]
		switch {
		case len(parts) >= 4:
			d.Complement = parts[2]
			d.Neighborhood = parts[3]
		case len(parts) == 3:
			d.Neighborhood = parts[2]
		}
		return d
	}

	switch len(parts) {
	case 3:
		d.Complement = parts[1]
		d.Neighborhood = parts[2]
	case 2:
		d.Neighborhood = parts[1]
	}
	return d
}

// FormatForDisplay shortens a stored address for table listings by dropping
// the CEP and the trailing "city - UF" segment.
func FormatForDisplay(s string) string {
	if s == "" {
		return NotInformed
	}

	clean := cepSegment.ReplaceAllString(s, "")
	clean = cityStateLoose.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(trailingComma.ReplaceAllString(clean, ""))

	if clean == "" {
		return s
	}
	return clean
}

// IsValid reports whether d carries the minimum needed to locate it: a street
// or a CEP.
func IsValid(d Data) bool {
	return d.Street != "" || d.CEP != ""
}

func splitSegments(s string) []string {
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
