// Package timescale converts between the UTC, TT (Terrestrial Time), UT1,
// and TDB (Barycentric Dynamical Time) time scales used by the ephemeris
// and calendar packages. Leap-second and Delta-T tables are accurate
// through the publication of this package; callers needing post-table
// leap seconds should expect the offset to be held at its latest value.
package timescale

import (
	"math"
	"time"
)

// SecPerDay is the number of SI seconds in a day.
const SecPerDay = 86400.0

const j2000JD = 2451545.0

// leapSecondEntry pairs a UTC Julian Date (at which a leap second took
// effect) with the cumulative TAI-UTC offset in seconds from that date.
type leapSecondEntry struct {
	jdUTC  float64
	offset float64
}

// leapSeconds holds the introduction dates of each leap second since the
// start of the UTC leap-second era (1972-01-01). TAI-UTC was exactly 10s
// at the start of 1972.
var leapSeconds = []leapSecondEntry{
	{2441317.5, 10}, // 1972-01-01
	{2441499.5, 11}, // 1972-07-01
	{2441683.5, 12}, // 1973-01-01
	{2442048.5, 13}, // 1974-01-01
	{2442413.5, 14}, // 1975-01-01
	{2442778.5, 15}, // 1976-01-01
	{2443144.5, 16}, // 1977-01-01
	{2443509.5, 17}, // 1978-01-01
	{2443874.5, 18}, // 1979-01-01
	{2444239.5, 19}, // 1980-01-01
	{2444786.5, 20}, // 1981-07-01
	{2445151.5, 21}, // 1982-07-01
	{2445516.5, 22}, // 1983-07-01
	{2446247.5, 23}, // 1985-07-01
	{2447161.5, 24}, // 1988-01-01
	{2447892.5, 25}, // 1990-01-01
	{2448257.5, 26}, // 1991-01-01
	{2448804.5, 27}, // 1992-07-01
	{2449169.5, 28}, // 1993-07-01
	{2449534.5, 29}, // 1994-07-01
	{2450083.5, 30}, // 1996-01-01
	{2450630.5, 31}, // 1997-07-01
	{2451179.5, 32}, // 1999-01-01
	{2453736.5, 33}, // 2006-01-01
	{2454832.5, 34}, // 2009-01-01
	{2456109.5, 35}, // 2012-07-01
	{2457204.5, 36}, // 2015-07-01
	{2457754.5, 37}, // 2017-01-01
}

// LeapSecondOffset returns the cumulative TAI-UTC offset in seconds in
// effect at the given UTC Julian Date. Dates before the 1972 table start
// return the initial value of 10s; dates past the last known leap second
// hold at the latest value.
func LeapSecondOffset(jdUTC float64) float64 {
	if jdUTC < leapSeconds[0].jdUTC {
		return leapSeconds[0].offset
	}
	offset := leapSeconds[0].offset
	for _, e := range leapSeconds {
		if jdUTC < e.jdUTC {
			break
		}
		offset = e.offset
	}
	return offset
}

// deltaTEntry pairs a decimal year with the historical value of Delta T
// (TT - UT1) in seconds, from IERS/Espenak-Meeus long-term tables.
type deltaTEntry struct {
	year  float64
	value float64
}

var deltaTTable = []deltaTEntry{
	{1800, 18.3670}, {1820, 11.8240}, {1840, 6.6960}, {1860, 7.1640},
	{1880, -5.0400}, {1900, -2.7900}, {1920, 21.1600}, {1940, 24.3490},
	{1960, 33.1500}, {1980, 50.5400}, {1990, 56.8600}, {2000, 63.8290},
	{2010, 66.0700}, {2020, 72.3200}, {2050, 93.0000}, {2100, 202.0000},
	{2150, 320.0000}, {2200, 440.0000},
}

// DeltaT returns an estimate of Delta T = TT - UT1, in seconds, for the
// given decimal year, by linear interpolation of a historical table.
// Years outside the table are clamped to the nearest endpoint.
func DeltaT(year float64) float64 {
	n := len(deltaTTable)
	if year <= deltaTTable[0].year {
		return deltaTTable[0].value
	}
	if year >= deltaTTable[n-1].year {
		return deltaTTable[n-1].value
	}
	idx := 0
	for idx < n-1 && deltaTTable[idx+1].year < year {
		idx++
	}
	if idx >= n-1 {
		idx = n - 2
	}
	lo, hi := deltaTTable[idx], deltaTTable[idx+1]
	frac := (year - lo.year) / (hi.year - lo.year)
	return lo.value + frac*(hi.value-lo.value)
}

// TimeToJDUTC converts a time.Time (interpreted in UTC regardless of its
// stored location) to a UTC Julian Date.
func TimeToJDUTC(t time.Time) float64 {
	t = t.UTC()
	y, m, d := t.Year(), int(t.Month()), t.Day()
	hh, mm, ss := t.Clock()
	ns := t.Nanosecond()

	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4

	jdMidnight := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) + float64(d) + float64(b) - 1524.5

	dayFrac := (float64(hh)*3600 + float64(mm)*60 + float64(ss) + float64(ns)*1e-9) / SecPerDay
	return jdMidnight + dayFrac
}

// UTCToTT converts a UTC Julian Date to TT: TT = UTC + (TAI-UTC) + 32.184s.
func UTCToTT(jdUTC float64) float64 {
	offsetSec := LeapSecondOffset(jdUTC) + 32.184
	return jdUTC + offsetSec/SecPerDay
}

// TTToUT1 converts a TT Julian Date to UT1 using the Delta T table:
// UT1 = TT - DeltaT.
func TTToUT1(jdTT float64) float64 {
	year := 2000.0 + (jdTT-j2000JD)/365.25
	dt := DeltaT(year)
	return jdTT - dt/SecPerDay
}

// TDBMinusTT returns TDB-TT in seconds for a given JD (TT or TDB — the
// distinction is below the precision of the formula). Fairhead &
// Bretagnon approximation, USNO Circular 179 eq. 2.6.
func TDBMinusTT(jd float64) float64 {
	t := (jd - j2000JD) / 36525.0
	return 0.001657*math.Sin(628.3076*t+6.2401) +
		0.000022*math.Sin(575.3385*t+4.2970) +
		0.000014*math.Sin(1256.6152*t+6.1969) +
		0.000005*math.Sin(606.9777*t+4.0212) +
		0.000005*math.Sin(52.9691*t+0.4444) +
		0.000002*math.Sin(21.3299*t+5.5431) +
		0.000010*t*math.Sin(628.3076*t+4.2490)
}
