package calendario

import "time"

// mesmoDia compares calendar days, honoring each instant's location.
func mesmoDia(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncarDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CoincideComDia reports whether an item should appear on the given day.
// All-day items match every day of [inicio, fim], both endpoints inclusive.
// Timed items match only their start day; they are not treated as spanning
// multiple days in day-level filtering. A zero-duration item still matches
// its single day.
func CoincideComDia(inicio, fim time.Time, diaInteiro bool, dia time.Time) bool {
	if diaInteiro {
		d := truncarDia(dia)
		return !d.Before(truncarDia(inicio)) && !d.After(truncarDia(fim))
	}
	return mesmoDia(inicio, dia)
}

// FimExclusivo converts an inclusive all-day end into the exclusive-end
// convention calendar renderers expect, so the last day still displays.
func FimExclusivo(fim time.Time) time.Time {
	return truncarDia(fim).AddDate(0, 0, 1)
}
