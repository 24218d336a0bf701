package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseElapsed converts a recorded race time to milliseconds. Accepted forms
// are "M:SS.cc", "SS.cc", "M:SS" and a bare integer of seconds. Centiseconds
// shorter than two digits are right-padded ("1:02.5" == "1:02.50"). Seconds
// of 60 or more are rejected whenever a minute segment is present.
func ParseElapsed(text string) (int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidFormat)
	}

	var minPart, rest string
	if i := strings.IndexByte(s, ':'); i >= 0 {
		minPart, rest = s[:i], s[i+1:]
	} else {
		rest = s
	}

	secPart, csPart := rest, ""
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		secPart, csPart = rest[:i], rest[i+1:]
	}

	minutes := 0
	if minPart != "" {
		m, err := strconv.Atoi(minPart)
		if err != nil || m < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
		}
		minutes = m
	}

	seconds, err := strconv.Atoi(secPart)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}
	if minPart != "" && seconds >= 60 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}

	centis := 0
	if csPart != "" {
		if len(csPart) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
		}
		c, err := strconv.Atoi(csPart)
		if err != nil || c < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
		}
		if len(csPart) == 1 {
			c *= 10
		}
		centis = c
	}

	return int64(minutes)*60_000 + int64(seconds)*1000 + int64(centis)*10, nil
}

// FormatElapsed renders milliseconds as "M:SS.cc", or "S.cc" under a minute.
func FormatElapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60_000
	seconds := (ms % 60_000) / 1000
	centis := (ms % 1000) / 10
	if minutes > 0 {
		return fmt.Sprintf("%d:%02d.%02d", minutes, seconds, centis)
	}
	return fmt.Sprintf("%d.%02d", seconds, centis)
}

// FormatDelta renders a gap to the winner as seconds with two decimals.
// Non-positive gaps render empty: the winner shows no delta.
func FormatDelta(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", float64(ms)/1000)
}

// AutoFormat reshapes a raw digit string as the operator types it, reading
// the last two digits as centiseconds, the next two as seconds and the
// remainder as minutes. Display aid only; stored times always come from
// ParseElapsed.
func AutoFormat(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if d == "" {
		return ""
	}

	cs := d
	if len(d) > 2 {
		cs = d[len(d)-2:]
	}
	for len(cs) < 2 {
		cs = "0" + cs
	}

	sec := "0"
	if len(d) > 2 {
		sec = d[max(0, len(d)-4) : len(d)-2]
	}

	if len(d) > 4 {
		minPart := strings.TrimLeft(d[:len(d)-4], "0")
		if minPart == "" {
			minPart = "0"
		}
		if len(sec) == 1 {
			sec = "0" + sec
		}
		return fmt.Sprintf("%s:%s.%s", minPart, sec, cs)
	}

	sec = strings.TrimLeft(sec, "0")
	if sec == "" {
		sec = "0"
	}
	return fmt.Sprintf("%s.%s", sec, cs)
}
