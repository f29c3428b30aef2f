package wp

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"luna2d-deploy/internal/platform"
)

var (
	displayNameElementRe = regexp.MustCompile(`(<DisplayName>)([^<]*)(</DisplayName>)`)
	visualElementsNameRe = regexp.MustCompile(`(<(?:[A-Za-z0-9]+:)?VisualElements\b[^>]*?\bDisplayName=")([^"]*)(")`)
	identityVersionRe    = regexp.MustCompile(`(<Identity\b[^>]*?\bVersion=")([^"]*)(")`)
)

// manifestFields holds the values written into a manifest. An empty Version
// leaves the package version alone.
type manifestFields struct {
	DisplayName string
	Version     string
}

func manifestFieldsFrom(req platform.Request) (manifestFields, error) {
	f := manifestFields{DisplayName: req.ProjectName}
	if name, ok := req.GameConfig.String("name"); ok && strings.TrimSpace(name) != "" {
		f.DisplayName = name
	}

	if raw, ok := req.GameConfig["version"]; ok {
		v, err := normalizeVersion(raw)
		if err != nil {
			return manifestFields{}, fmt.Errorf("game config version: %w", err)
		}
		f.Version = v
	}
	return f, nil
}

// normalizeVersion turns "1", "1.2" or 1.2 into the four-part appx form.
func normalizeVersion(raw any) (string, error) {
	var s string
	switch v := raw.(type) {
	case string:
		s = strings.TrimSpace(v)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return "", fmt.Errorf("unsupported value %v", raw)
	}

	parts := strings.Split(s, ".")
	if s == "" || len(parts) > 4 {
		return "", fmt.Errorf("%q is not a version of up to four numbers", s)
	}
	for len(parts) < 4 {
		parts = append(parts, "0")
	}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return "", fmt.Errorf("%q is not a version of up to four numbers", s)
		}
		parts[i] = strconv.FormatUint(n, 10)
	}
	return strings.Join(parts, "."), nil
}

func rewriteManifest(content string, f manifestFields) string {
	name := escapeXML(f.DisplayName)
	content = replaceGroup(displayNameElementRe, content, name)
	content = replaceGroup(visualElementsNameRe, content, name)
	if f.Version != "" {
		content = replaceGroup(identityVersionRe, content, f.Version)
	}
	return content
}

// replaceGroup replaces the second capture group of every match of re with
// value, keeping the surrounding text byte for byte.
func replaceGroup(re *regexp.Regexp, s, value string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[4]])
		b.WriteString(value)
		last = m[5]
	}
	b.WriteString(s[last:])
	return b.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s)) //nolint:errcheck
	return buf.String()
}
