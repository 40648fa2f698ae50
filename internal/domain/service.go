package domain

import "strings"

type Service struct {
	ID             string   `json:"_id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Fee            float64  `json:"fee"`
	ProcessingTime string   `json:"processingTime"`
	Features       []string `json:"features,omitempty"`
	IsActive       bool     `json:"isActive"`
}

// IsServiceID reports whether s looks like an upstream object id. The API
// rejects anything else, so the check runs before any remote call is made.
func IsServiceID(s string) bool {
	return len(s) == 24
}

// CategoryTag is the finite set of service categories the platform knows how
// to present. Free-text categories from the API are resolved onto it;
// anything unrecognized lands on CategoryOther.
type CategoryTag string

const (
	CategoryVehicle     CategoryTag = "vehicle"
	CategoryPassport    CategoryTag = "passport"
	CategoryCertificate CategoryTag = "certificate"
	CategoryDocument    CategoryTag = "document"
	CategoryIdentity    CategoryTag = "identity"
	CategoryProperty    CategoryTag = "property"
	CategoryBusiness    CategoryTag = "business"
	CategoryOther       CategoryTag = "other"
)

var categoryKeywords = []struct {
	tag      CategoryTag
	keywords []string
}{
	{CategoryVehicle, []string{"vehicle", "rto", "driving", "license"}},
	{CategoryPassport, []string{"passport"}},
	{CategoryCertificate, []string{"certificate", "birth", "marriage", "death"}},
	{CategoryDocument, []string{"document", "verification", "attestation"}},
	{CategoryIdentity, []string{"pan", "aadhaar", "identity", "voter", "ration"}},
	{CategoryProperty, []string{"property", "land", "mutation"}},
	{CategoryBusiness, []string{"business", "gst", "company", "registration"}},
}

var categoryLabels = map[CategoryTag]string{
	CategoryVehicle:     "Vehicle & Transport",
	CategoryPassport:    "Passport Services",
	CategoryCertificate: "Certificates",
	CategoryDocument:    "Document Services",
	CategoryIdentity:    "Identity Documents",
	CategoryProperty:    "Property & Land",
	CategoryBusiness:    "Business & Registration",
	CategoryOther:       "Other Services",
}

func ResolveCategory(s string) CategoryTag {
	name := strings.ToLower(s)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.tag
			}
		}
	}
	return CategoryOther
}

func (t CategoryTag) Label() string {
	if label, ok := categoryLabels[t]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}
