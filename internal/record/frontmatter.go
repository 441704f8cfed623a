// Package record maps radicals and characters to and from their on-disk
// markdown form: a YAML frontmatter block followed by a human-readable body.
package record

import (
	"bytes"
	"regexp"

	"gopkg.in/yaml.v3"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
)

// frontmatterPattern matches the first ---delimited block at the very start
// of a record. The payload match is non-greedy so a later --- line in the
// body never extends it. The payload keeps its final line break: a block
// scalar ending the header needs it to keep its trailing newline.
var frontmatterPattern = regexp.MustCompile(`(?s)\A---\r?\n(.*?\r?\n)?---[ \t]*(?:\r?\n|\z)`)

// splitFrontmatter returns the YAML payload and the body that follows it.
func splitFrontmatter(text string) (payload, body string, err error) {
	m := frontmatterPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return "", "", herrors.MalformedRecord("no frontmatter block", nil)
	}
	if m[2] < 0 {
		return "", text[m[1]:], nil
	}
	return text[m[2]:m[3]], text[m[1]:], nil
}

// unmarshalHeader decodes a frontmatter payload into dst.
func unmarshalHeader(payload string, dst any) error {
	if err := yaml.Unmarshal([]byte(payload), dst); err != nil {
		return herrors.MalformedRecord("frontmatter is not valid YAML for this record kind", err)
	}
	return nil
}

// marshalHeader renders a header as a complete frontmatter block, closing
// delimiter included.
func marshalHeader(header any) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(header); err != nil {
		return "", herrors.InternalError("encode frontmatter", err)
	}
	if err := enc.Close(); err != nil {
		return "", herrors.InternalError("encode frontmatter", err)
	}

	buf.WriteString("---\n")
	return buf.String(), nil
}
