package probe

import (
	"os"
	"strings"
)

// Detect builds a fact table for the local host: certname from the
// hostname and os.family derived from /etc/os-release. Facts that cannot
// be determined are simply absent.
func Detect() StaticFacts {
	facts := StaticFacts{}
	if hostname, err := os.Hostname(); err == nil {
		facts[FactCertname] = hostname
	}
	if family := osFamily("/etc/os-release"); family != "" {
		facts[FactOSFamily] = family
	}
	return facts
}

// osFamily maps os-release ID/ID_LIKE values onto the coarse family names
// the role prober keys on.
func osFamily(releasePath string) string {
	data, err := os.ReadFile(releasePath)
	if err != nil {
		return ""
	}

	ids := ""
	for _, line := range strings.Split(string(data), "\n") {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if k == "ID" || k == "ID_LIKE" {
			ids += " " + strings.Trim(v, `"`)
		}
	}
	ids = strings.ToLower(ids)

	switch {
	case containsWordAny(ids, "rhel", "fedora", "centos", "rocky", "almalinux"):
		return "RedHat"
	case containsWordAny(ids, "debian", "ubuntu"):
		return "Debian"
	case containsWordAny(ids, "suse", "sles", "opensuse"):
		return "Suse"
	}
	return ""
}

func containsWordAny(haystack string, words ...string) bool {
	fields := strings.FieldsFunc(haystack, func(r rune) bool {
		return r == ' ' || r == '-'
	})
	for _, w := range words {
		for _, f := range fields {
			if f == w {
				return true
			}
		}
	}
	return false
}
