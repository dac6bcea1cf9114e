package rules

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/juju/naturalsort"
	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
)

// ruleLine matches `ethN:method="value"` and the implicit `ethN="value"`.
var ruleLine = regexp.MustCompile(`^(eth[0-9]+)\s*(?::\s*([A-Za-z]+)\s*)?=\s*(.+)$`)

const ruleFileHeader = `# Static rules for naming network interfaces.
#
# Lines have the form
#   ethN:method="value"
# where method is one of mac, ppn, pci or label, or
#   ethN="value"
# to guess the method from the value.
`

// ParseRuleFile reads static rules. Malformed lines are logged and skipped;
// for repeated targets the first rule wins. Only read errors are returned.
func ParseRuleFile(r io.Reader, ll logrus.FieldLogger) ([]Rule, error) {
	if ll == nil {
		ll = logrus.StandardLogger()
	}

	var out []Rule
	seen := make(map[string]int)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lll := ll.WithFields(logrus.Fields{"line": lineNo, "text": line})

		rule, err := parseRuleLine(line)
		if err != nil {
			lll.WithError(err).Warn("Skipping invalid static rule")
			continue
		}
		if first, ok := seen[rule.Target]; ok {
			lll.WithField("first_line", first).Warn("Skipping duplicate static rule")
			continue
		}
		seen[rule.Target] = lineNo
		out = append(out, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read static rules: %w", err)
	}
	return out, nil
}

func parseRuleLine(line string) (Rule, error) {
	m := ruleLine.FindStringSubmatch(line)
	if m == nil {
		return Rule{}, fmt.Errorf("unrecognised rule syntax")
	}
	words, err := shellquote.Split(m[3])
	if err != nil {
		return Rule{}, fmt.Errorf("bad quoting: %w", err)
	}
	if len(words) != 1 {
		return Rule{}, fmt.Errorf("expected a single value, got %d", len(words))
	}

	var sel Selector
	if m[2] == "" {
		sel, err = GuessSelector(words[0])
	} else {
		sel, err = ParseSelector(strings.ToLower(m[2]), words[0])
	}
	if err != nil {
		return Rule{}, err
	}
	return Rule{Target: m[1], Selector: sel}, nil
}

// WriteRuleFile writes rules in the format read by ParseRuleFile, ordered by
// target name.
func WriteRuleFile(w io.Writer, rules []Rule) error {
	byTarget := make(map[string]Rule, len(rules))
	targets := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.Selector == nil {
			continue
		}
		if _, ok := byTarget[r.Target]; ok {
			continue
		}
		byTarget[r.Target] = r
		targets = append(targets, r.Target)
	}
	naturalsort.Sort(targets)

	bw := bufio.NewWriter(w)
	bw.WriteString(ruleFileHeader)
	for _, t := range targets {
		r := byTarget[t]
		fmt.Fprintf(bw, "%s:%s=\"%s\"\n", r.Target, r.Selector.Method(), escapeValue(r.Selector.Value()))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write static rules: %w", err)
	}
	return nil
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

func escapeValue(v string) string {
	return valueEscaper.Replace(v)
}
