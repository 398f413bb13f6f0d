// Package calendar converts between calendar dates (Julian and Gregorian,
// with BC/AD eras) and Julian Date, and provides the sidereal-time and
// centuries-past-J2000 helpers the orbital-elements and ephemeris packages
// build on.
package calendar

import (
	"math"

	"github.com/nicokuijpers/solarsystemsim/calendar/timescale"
	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
)

// Era distinguishes BC (Before Christ) from AD (Anno Domini) years; there
// is no year zero — year 1 BC is immediately followed by year 1 AD.
type Era int

const (
	AD Era = iota
	BC
)

// Instant is a calendar date and time of day, always UTC.
type Instant struct {
	Era                          Era
	Year                         int // >= 1
	Month                        int // 1..12
	Day                          int
	Hour, Minute, Second, Millis int
}

// j0JD is the Julian Date of 4713-01-01 12:00 BC (Julian calendar), the
// origin of the Julian Date scale.
const j0JD = 0.0

// gregorianStartJD is the JD of 1582-10-15 00:00 UTC, the earliest instant
// jdToCalendar will resolve (see JDToCalendar's doc comment: unlike
// calendarToJD, the inverse is carried only for the Gregorian era).
const gregorianStartJD = 2299160.5

func astronomicalYear(i Instant) int {
	if i.Era == BC {
		return 1 - i.Year
	}
	return i.Year
}

func fromAstronomicalYear(y int) (Era, int) {
	if y <= 0 {
		return BC, 1 - y
	}
	return AD, y
}

// isLeap reports whether the given astronomical year is a leap year under
// the calendar rule that applies to (year, month, day): Julian strictly
// before 1582-10-15, Gregorian from 1582-10-15 onward.
func isLeap(astroYear, month, day int, era Era, year int) bool {
	if isGregorian(era, year, month, day) {
		return astroYear%4 == 0 && (astroYear%100 != 0 || astroYear%400 == 0)
	}
	return astroYear%4 == 0
}

// isGregorian reports whether (era, year, month, day) falls on or after
// 1582-10-15, the date the Gregorian calendar rule takes effect.
func isGregorian(era Era, year, month, day int) bool {
	if era == BC {
		return false
	}
	if year != 1582 {
		return year > 1582
	}
	if month != 10 {
		return month > 10
	}
	return day >= 15
}

// inGregorianGap reports whether (year, month, day) names one of the ten
// calendar days (1582-10-05 .. 1582-10-14) that do not exist.
func inGregorianGap(era Era, year, month, day int) bool {
	return era == AD && year == 1582 && month == 10 && day >= 5 && day <= 14
}

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func validate(i Instant) error {
	if i.Year < 1 {
		return simerr.Wrapf(simerr.ErrUnsupportedInstant, "year %d must be >= 1", i.Year)
	}
	if i.Month < 1 || i.Month > 12 {
		return simerr.Wrapf(simerr.ErrUnsupportedInstant, "month %d out of range", i.Month)
	}
	if inGregorianGap(i.Era, i.Year, i.Month, i.Day) {
		return simerr.Wrapf(simerr.ErrUnsupportedInstant, "%04d-%02d-%02d does not exist (Julian/Gregorian gap)", i.Year, i.Month, i.Day)
	}
	astroYear := astronomicalYear(i)
	maxDay := daysInMonth[i.Month-1]
	if i.Month == 2 && isLeap(astroYear, i.Month, i.Day, i.Era, i.Year) {
		maxDay = 29
	}
	if i.Day < 1 || i.Day > maxDay {
		return simerr.Wrapf(simerr.ErrUnsupportedInstant, "day %d invalid for %04d-%02d", i.Day, i.Year, i.Month)
	}
	return nil
}

// CalendarToJD converts a calendar instant to a Julian Date. It fails with
// ErrUnsupportedInstant when the instant is invalid, falls in the
// 1582-10-05..14 gap, or precedes JD 0 (4713-01-01 12:00 BC).
func CalendarToJD(i Instant) (float64, error) {
	if err := validate(i); err != nil {
		return 0, err
	}

	astroYear := astronomicalYear(i)
	month := i.Month
	dayFrac := float64(i.Day) + (float64(i.Hour)*3600+float64(i.Minute)*60+float64(i.Second)+float64(i.Millis)/1000.0)/timescale.SecPerDay

	y, m := astroYear, month
	if m <= 2 {
		y--
		m += 12
	}

	var b float64
	if isGregorian(i.Era, i.Year, i.Month, i.Day) {
		a := math.Floor(float64(y) / 100)
		b = 2 - a + math.Floor(a/4)
	}

	jd := math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + dayFrac + b - 1524.5

	if jd < j0JD {
		return 0, simerr.Wrapf(simerr.ErrUnsupportedInstant, "instant precedes JD 0")
	}
	return jd, nil
}

// JDToCalendar converts a Julian Date to a calendar instant, UTC. It fails
// with ErrUnsupportedInstant for jd < 2299160.5 (before 1582-10-15) — the
// inverse transform is only carried for the Gregorian-calendar era.
func JDToCalendar(jd float64) (Instant, error) {
	if jd < gregorianStartJD {
		return Instant{}, simerr.Wrapf(simerr.ErrUnsupportedInstant, "jd %.6f precedes the Gregorian calendar start", jd)
	}

	jd += 0.5
	z := math.Floor(jd)
	f := jd - z

	a := z // Gregorian branch always applies since jd >= gregorianStartJD
	alpha := math.Floor((z - 1867216.25) / 36524.25)
	a = z + 1 + alpha - math.Floor(alpha/4)

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	dayFrac := b - d - math.Floor(30.6001*e) + f
	var month int
	if e < 14 {
		month = int(e) - 1
	} else {
		month = int(e) - 13
	}
	var astroYear int
	if month > 2 {
		astroYear = int(c) - 4716
	} else {
		astroYear = int(c) - 4715
	}

	day := int(math.Floor(dayFrac))
	secondsOfDay := (dayFrac - float64(day)) * timescale.SecPerDay
	// Round to the nearest millisecond to preserve sub-millisecond round trip.
	msOfDay := int(math.Round(secondsOfDay * 1000))
	if msOfDay >= int(timescale.SecPerDay)*1000 {
		msOfDay -= int(timescale.SecPerDay) * 1000
		day++
	}

	hour := msOfDay / 3600000
	msOfDay -= hour * 3600000
	minute := msOfDay / 60000
	msOfDay -= minute * 60000
	second := msOfDay / 1000
	millis := msOfDay - second*1000

	era, year := fromAstronomicalYear(astroYear)
	return Instant{
		Era: era, Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second, Millis: millis,
	}, nil
}

// CenturiesPastJ2000 returns (JD(instant) - 2451545.0) / 36525.
func CenturiesPastJ2000(i Instant) (float64, error) {
	jd, err := CalendarToJD(i)
	if err != nil {
		return 0, err
	}
	return CenturiesPastJ2000JD(jd), nil
}

// CenturiesPastJ2000JD is CenturiesPastJ2000 taking a Julian Date directly.
func CenturiesPastJ2000JD(jd float64) float64 {
	return (jd - 2451545.0) / 36525.0
}

const j2000JD = 2451545.0
const deg2rad = math.Pi / 180.0
const rad2deg = 180.0 / math.Pi

// gmst returns Greenwich Mean Sidereal Time in degrees for a UT1 Julian
// Date, IAU 1982 formula (Meeus, ch. 12).
func gmst(jdUT1 float64) float64 {
	du := jdUT1 - j2000JD
	t := du / 36525.0
	g := 280.46061837 + 360.98564736629*du + 0.000387933*t*t - t*t*t/38710000.0
	g = math.Mod(g, 360.0)
	if g < 0 {
		g += 360.0
	}
	return g
}

// meanNutationLongitude returns a low-precision approximation of nutation
// in longitude (degrees), Meeus ch. 22's abridged series (largest terms
// only — sufficient for sidereal-time accuracy, not arcsecond-level
// apparent position).
func meanNutationLongitude(t float64) float64 {
	omega := 125.04452 - 1934.136261*t
	l := 280.4665 + 36000.7698*t
	lp := 218.3165 + 481267.8813*t
	dpsi := -17.20*math.Sin(omega*deg2rad) - 1.32*math.Sin(2*l*deg2rad) -
		0.23*math.Sin(2*lp*deg2rad) + 0.21*math.Sin(2*omega*deg2rad)
	return dpsi / 3600.0 // arcseconds to degrees
}

func meanObliquityDeg(t float64) float64 {
	return 23.439291 - 0.0130042*t - 1.64e-7*t*t + 5.04e-7*t*t*t
}

// LocalSiderealTime returns the apparent local sidereal time in degrees,
// normalized to [0, 360), for the given east longitude (degrees) and
// instant (treated as UT1).
func LocalSiderealTime(longitudeDeg float64, i Instant) (float64, error) {
	jd, err := CalendarToJD(i)
	if err != nil {
		return 0, err
	}
	t := CenturiesPastJ2000JD(jd)
	dpsi := meanNutationLongitude(t)
	eps := meanObliquityDeg(t)
	eqeq := dpsi * math.Cos(eps*deg2rad)
	gast := gmst(jd) + eqeq
	lst := math.Mod(gast+longitudeDeg, 360.0)
	if lst < 0 {
		lst += 360.0
	}
	return lst, nil
}
