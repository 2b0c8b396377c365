package service

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var dashRun = regexp.MustCompile(`\s*-\s*`)

// NormalizeWilayah: "Jakarta   -   Pusat" menjadi "Jakarta-Pusat".
func NormalizeWilayah(s string) string {
	return dashRun.ReplaceAllString(strings.TrimSpace(s), "-")
}

// ParseChannels memecah teks dipisah koma, membuang token kosong lalu
// mengurutkan. Duplikat tetap disimpan.
func ParseChannels(raw string) []string {
	out := []string{}
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	sort.Strings(out)
	return out
}

// decodeSegment membuka percent-encoding dari URL ("MUX%201" → "MUX 1").
func decodeSegment(s string) (string, error) {
	d, err := url.PathUnescape(s)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(d), nil
}
