package calendar

import (
	"math"
	"testing"
)

func TestCalendarToJD_J2000Epoch(t *testing.T) {
	jd, err := CalendarToJD(Instant{Era: AD, Year: 2000, Month: 1, Day: 1, Hour: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(jd-2451545.0) > 1e-9 {
		t.Errorf("JD = %.10f, want 2451545.0", jd)
	}
}

func TestCalendarToJD_BCADBoundary(t *testing.T) {
	jd, err := CalendarToJD(Instant{Era: BC, Year: 1, Month: 1, Day: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(jd-1721057.5) > 1e-9 {
		t.Errorf("JD = %.10f, want 1721057.5", jd)
	}
}

func TestCalendarToJD_GregorianGapRejected(t *testing.T) {
	_, err := CalendarToJD(Instant{Era: AD, Year: 1582, Month: 10, Day: 10})
	if err == nil {
		t.Fatal("expected error for nonexistent date in the Julian/Gregorian gap")
	}
}

func TestCalendarToJD_NegativeJDRejected(t *testing.T) {
	_, err := CalendarToJD(Instant{Era: BC, Year: 5000, Month: 1, Day: 1})
	if err == nil {
		t.Fatal("expected error for an instant preceding JD 0")
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []Instant{
		{Era: AD, Year: 1582, Month: 10, Day: 15},
		{Era: AD, Year: 2000, Month: 1, Day: 1, Hour: 12},
		{Era: AD, Year: 2024, Month: 2, Day: 29, Hour: 23, Minute: 59, Second: 59, Millis: 500},
		{Era: AD, Year: 4999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59},
	}
	for _, want := range cases {
		jd, err := CalendarToJD(want)
		if err != nil {
			t.Fatalf("CalendarToJD(%+v): %v", want, err)
		}
		got, err := JDToCalendar(jd)
		if err != nil {
			t.Fatalf("JDToCalendar(%v): %v", jd, err)
		}
		if got.Era != want.Era || got.Year != want.Year || got.Month != want.Month || got.Day != want.Day ||
			got.Hour != want.Hour || got.Minute != want.Minute || got.Second != want.Second {
			t.Errorf("round trip mismatch: got %+v, want %+v (jd=%.8f)", got, want, jd)
		}
	}
}

func TestCenturiesPastJ2000(t *testing.T) {
	c, err := CenturiesPastJ2000(Instant{Era: AD, Year: 2000, Month: 1, Day: 1, Hour: 12})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c) > 1e-14 {
		t.Errorf("centuries = %e, want 0", c)
	}

	c, err = CenturiesPastJ2000(Instant{Era: AD, Year: 2100, Month: 1, Day: 1, Hour: 12})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c-1) > 1e-14 {
		t.Errorf("centuries = %.15f, want 1", c)
	}
}

func TestLocalSiderealTime_Normalized(t *testing.T) {
	lst, err := LocalSiderealTime(0, Instant{Era: AD, Year: 2000, Month: 1, Day: 1, Hour: 12})
	if err != nil {
		t.Fatal(err)
	}
	if lst < 0 || lst >= 360 {
		t.Errorf("LST = %f, want [0,360)", lst)
	}
}

func TestJDToCalendar_BeforeGregorianStart(t *testing.T) {
	_, err := JDToCalendar(2000000.0)
	if err == nil {
		t.Fatal("expected error for jd before the Gregorian calendar start")
	}
}

func TestFebruary29(t *testing.T) {
	if _, err := CalendarToJD(Instant{Era: AD, Year: 2000, Month: 2, Day: 29}); err != nil {
		t.Errorf("2000-02-29 should be valid (Gregorian leap year): %v", err)
	}
	if _, err := CalendarToJD(Instant{Era: AD, Year: 1900, Month: 2, Day: 29}); err == nil {
		t.Error("1900-02-29 should be invalid (not a Gregorian leap year)")
	}
}
