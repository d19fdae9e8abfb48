package marker

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Timecode splits a duration into minutes, seconds and centiseconds.
type Timecode struct {
	Minutes      int
	Seconds      int
	Centiseconds int
}

// centiEpsilon absorbs binary representation error so that values such as
// 0.29 do not floor to 28 centiseconds.
const centiEpsilon = 1e-6

// MaxSeconds is the largest value a Timecode represents. Larger input is
// clamped to it.
const MaxSeconds = math.MaxInt32

const maxMinutes = MaxSeconds / 60

// TimecodeFromSeconds floors seconds to the centisecond and splits it.
// Values within 1e-6s below a centisecond boundary count as reaching it, so
// 0.28999999999 gives 00:00.29. Negative and NaN input yields the zero
// Timecode; input above MaxSeconds, including +Inf, is clamped.
func TimecodeFromSeconds(seconds float64) Timecode {
	if seconds <= 0 || math.IsNaN(seconds) {
		return Timecode{}
	}
	seconds = min(seconds, MaxSeconds)
	total := int64(math.Floor(seconds*100 + centiEpsilon))
	whole := total / 100
	return Timecode{
		Minutes:      int(whole / 60),
		Seconds:      int(whole % 60),
		Centiseconds: int(total % 100),
	}
}

// TotalSeconds reassembles the timecode into seconds.
func (t Timecode) TotalSeconds() float64 {
	return float64(t.Minutes*60+t.Seconds) + float64(t.Centiseconds)/100.0
}

// Clamp limits centiseconds to 0-99, seconds to 0-59 and minutes to the
// range MaxSeconds allows.
func (t Timecode) Clamp() Timecode {
	return Timecode{
		Minutes:      min(maxMinutes, max(0, t.Minutes)),
		Seconds:      min(59, max(0, t.Seconds)),
		Centiseconds: min(99, max(0, t.Centiseconds)),
	}
}

// String formats the timecode as MM:SS.CC.
func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d.%02d", t.Minutes, t.Seconds, t.Centiseconds)
}

// ParseTimecode parses MM:SS.CC, MM:SS or a plain seconds value such as
// "75.5". Out-of-range components are clamped rather than rejected.
func ParseTimecode(s string) (Timecode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timecode{}, fmt.Errorf("empty timecode")
	}

	minPart, rest, hasColon := strings.Cut(s, ":")
	if !hasColon {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Timecode{}, fmt.Errorf("invalid timecode %q: %w", s, err)
		}
		return TimecodeFromSeconds(v), nil
	}

	minutes, err := strconv.Atoi(minPart)
	if err != nil {
		return Timecode{}, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}

	secPart, centiPart, hasDot := strings.Cut(rest, ".")
	seconds, err := strconv.Atoi(secPart)
	if err != nil {
		return Timecode{}, fmt.Errorf("invalid seconds in %q: %w", s, err)
	}

	centis := 0
	if hasDot {
		// "1:02.5" means 50 centiseconds, not 5
		if len(centiPart) == 1 {
			centiPart += "0"
		}
		if len(centiPart) > 2 {
			centiPart = centiPart[:2]
		}
		centis, err = strconv.Atoi(centiPart)
		if err != nil {
			return Timecode{}, fmt.Errorf("invalid centiseconds in %q: %w", s, err)
		}
	}

	return Timecode{Minutes: minutes, Seconds: seconds, Centiseconds: centis}.Clamp(), nil
}

// FormatSeconds formats a seconds value as MM:SS.CC.
func FormatSeconds(seconds float64) string {
	return TimecodeFromSeconds(seconds).String()
}
