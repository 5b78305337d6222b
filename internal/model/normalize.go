package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Normalize coerces an untrusted, JSON-decoded value into a complete CV.
//
// Unknown fields are dropped, wrong-typed fields degrade to defaults and
// only a missing profile name or role is rejected. Profile scalars fall back
// to DefaultCV values while links and lists fall back to empty values.
func Normalize(raw interface{}) (CV, error) {
	root, ok := raw.(map[string]interface{})
	if !ok {
		return CV{}, &ValidationError{Msg: msgInvalidPayload}
	}

	def := DefaultCV()
	profileIn := asRecord(root["profile"])
	linksIn := asRecord(profileIn["links"])

	profile := Profile{
		FullName: stringOr(profileIn["fullName"], def.Profile.FullName),
		Role:     stringOr(profileIn["role"], def.Profile.Role),
		Location: stringOr(profileIn["location"], def.Profile.Location),
		Email:    stringOr(profileIn["email"], def.Profile.Email),
		Phone:    stringOr(profileIn["phone"], def.Profile.Phone),
		About:    stringOr(profileIn["about"], def.Profile.About),
		Links: Links{
			LinkedIn: blankString(linksIn["linkedin"]),
			GitHub:   blankString(linksIn["github"]),
			Website:  blankString(linksIn["website"]),
		},
	}
	if photo, ok := profileIn["photo"].(string); ok {
		profile.Photo = photo
	}

	if profile.FullName == "" || profile.Role == "" {
		return CV{}, &ValidationError{Msg: msgMissingRequired}
	}

	out := CV{
		Profile:        profile,
		Experience:     []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Skills:         stringArray(root["skills"]),
		Languages:      stringArray(root["languages"]),
		Certifications: stringArray(root["certifications"]),
		Theme:          def.Theme,
	}

	if items, ok := root["experience"].([]interface{}); ok {
		for _, it := range items {
			out.Experience = append(out.Experience, normalizeExperience(asRecord(it)))
		}
	}
	if items, ok := root["education"].([]interface{}); ok {
		for _, it := range items {
			out.Education = append(out.Education, normalizeEducation(asRecord(it)))
		}
	}
	if items, ok := root["projects"].([]interface{}); ok {
		for _, it := range items {
			out.Projects = append(out.Projects, normalizeProject(asRecord(it)))
		}
	}

	if s, ok := root["theme"].(string); ok && Theme(s).Valid() {
		out.Theme = Theme(s)
	}
	// accepted as-is, not checked as a real colour; length is in characters
	if s, ok := root["accentColor"].(string); ok && utf8.RuneCountInString(s) > 2 {
		out.AccentColor = s
	}

	return out, nil
}

// NormalizeJSON decodes b and runs the result through Normalize.
func NormalizeJSON(b []byte) (CV, error) {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&raw); err != nil {
		return CV{}, &ValidationError{Msg: "Invalid JSON: " + err.Error()}
	}
	return Normalize(raw)
}

// Renormalize passes an already typed CV through Normalize, as done on
// every storage read.
func Renormalize(cv CV) (CV, error) {
	b, err := json.Marshal(cv)
	if err != nil {
		return CV{}, err
	}
	return NormalizeJSON(b)
}

func normalizeExperience(r map[string]interface{}) Experience {
	return Experience{
		Company: blankString(r["company"]),
		Role:    blankString(r["role"]),
		Start:   blankString(r["start"]),
		End:     blankString(r["end"]),
		Bullets: stringArray(r["bullets"]),
	}
}

func normalizeEducation(r map[string]interface{}) Education {
	return Education{
		School:  blankString(r["school"]),
		Degree:  blankString(r["degree"]),
		Start:   blankString(r["start"]),
		End:     blankString(r["end"]),
		Details: blankString(r["details"]),
	}
}

func normalizeProject(r map[string]interface{}) Project {
	return Project{
		Name:        blankString(r["name"]),
		Link:        blankString(r["link"]),
		Description: blankString(r["description"]),
		Highlights:  stringArray(r["highlights"]),
		Tech:        stringArray(r["tech"]),
	}
}

func asRecord(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func blankString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// stringOr treats an empty string the same as a missing one.
func stringOr(v interface{}, fallback string) string {
	if s := blankString(v); s != "" {
		return s
	}
	return fallback
}

func stringArray(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, stringify(it))
	}
	return out
}

// stringify renders a decoded JSON value the way a browser would when
// coercing it to text, so imported lists of numbers or flags keep their
// visible form.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return formatNumber(f)
		}
		return t.String()
	case []interface{}:
		parts := make([]string, len(t))
		for i, el := range t {
			if el != nil {
				parts[i] = stringify(el)
			}
		}
		return strings.Join(parts, ",")
	case map[string]interface{}:
		return "[object Object]"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-7, not 1e-07
		return strings.Replace(s, "e-0", "e-", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
