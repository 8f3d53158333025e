package regex

import "strconv"

func Check(text string, pattern *Pattern) (bool, error) {
	match, err := pattern.Expression.MatchString(text)
	if err != nil {
		return false, err
	}
	return match, nil
}

// Match returns the named groups captured by the first match of pattern in
// text. Groups that did not participate in the match are omitted.
func Match(text string, pattern *Pattern) (map[string]string, bool, error) {
	m, err := pattern.Expression.FindStringMatch(text)
	if err != nil {
		return nil, false, err
	}
	if m == nil {
		return nil, false, nil
	}

	captures := make(map[string]string)
	for _, name := range pattern.Expression.GetGroupNames() {
		if _, err := strconv.Atoi(name); err == nil {
			// numbered group
			continue
		}
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		captures[name] = g.String()
	}

	return captures, true, nil
}
