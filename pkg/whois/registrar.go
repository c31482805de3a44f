package whois

import "strings"

// registrarNames maps IANA registrar IDs to display names. It is populated
// once at package initialization and only read through RegistrarName.
var registrarNames = map[string]string{ //nolint: gochecknoglobals
	"2":    "Network Solutions, LLC",
	"9":    "Register.com, Inc.",
	"48":   "eNom, LLC",
	"69":   "Tucows Domains Inc.",
	"83":   "1&1 IONOS SE",
	"146":  "GoDaddy.com, LLC",
	"292":  "MarkMonitor Inc.",
	"433":  "OVH sas",
	"440":  "Wild West Domains, LLC",
	"625":  "Name.com, Inc.",
	"1068": "NameCheap, Inc.",
	"1478": "PT. Daftar Nama Domain Indonesia (DND-ID)",
	"1910": "CloudFlare, Inc.",
}

// RegistrarName resolves an IANA registrar ID to its display name. Unknown IDs
// yield "Registrar ID: <id>".
func RegistrarName(id string) string {
	id = strings.TrimSpace(id)
	if name, ok := registrarNames[id]; ok {
		return name
	}

	return "Registrar ID: " + id
}
